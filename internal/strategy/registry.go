package strategy

import (
	"sort"
	"sync"

	"github.com/quantfold/sector-backtest/pkg/errors"
)

// Registry manages the available strategies.
type Registry interface {
	Register(strategy Strategy) error
	Get(name string) (Strategy, error)
	List() []string
	Remove(name string) error
}

// RegistryV1 is the default map-backed registry.
type RegistryV1 struct {
	strategies map[string]Strategy
	mu         sync.RWMutex
}

// NewRegistry creates an empty strategy registry.
func NewRegistry() Registry {
	return &RegistryV1{
		strategies: make(map[string]Strategy),
		mu:         sync.RWMutex{},
	}
}

// NewDefaultRegistry creates a registry with every built-in strategy
// registered.
func NewDefaultRegistry() Registry {
	r := NewRegistry()

	for _, s := range []Strategy{
		NewMACDStrategy(),
		NewRSIStrategy(),
		NewBollingerStrategy(),
		NewMovingAverageStrategy(),
		NewTrendTrackingStrategy(),
		NewBreakoutStrategy(),
		NewOversoldReboundStrategy(),
		NewVolumePriceStrategy(),
	} {
		// Built-in names are unique, registration cannot fail here.
		_ = r.Register(s)
	}

	return r
}

// Register adds a strategy to the registry.
func (r *RegistryV1) Register(strategy Strategy) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := strategy.Name()
	if _, exists := r.strategies[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists,
			"Register: strategy with name %s already registered", name)
	}

	r.strategies[name] = strategy

	return nil
}

// Get retrieves a strategy by name.
func (r *RegistryV1) Get(name string) (Strategy, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	strategy, exists := r.strategies[name]
	if !exists {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound,
			"Get: strategy with name %s not found", name)
	}

	return strategy, nil
}

// List returns the registered strategy names in sorted order.
func (r *RegistryV1) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// Remove removes a strategy from the registry.
func (r *RegistryV1) Remove(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.strategies[name]; !exists {
		return errors.Newf(errors.ErrCodeStrategyNotFound,
			"Remove: strategy with name %s not found", name)
	}

	delete(r.strategies, name)

	return nil
}
