package comparator

import (
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/quantfold/sector-backtest/pkg/errors"
)

// WriteArtifact serializes a comparison to YAML at the given path, creating
// parent directories as needed. The artifact carries the run id and
// timestamp so runs remain distinguishable after the fact.
func WriteArtifact(comparison *Comparison, path string) error {
	if comparison == nil {
		return errors.New(errors.ErrCodeStoreFailed, "WriteArtifact: nil comparison")
	}

	data, err := yaml.Marshal(comparison)
	if err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, "WriteArtifact: marshal failed", err)
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrap(errors.ErrCodeStoreFailed, "WriteArtifact: create directory", err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return errors.Wrap(errors.ErrCodeStoreFailed, "WriteArtifact: write file", err)
	}

	return nil
}

// ReadArtifact loads a previously written comparison artifact.
func ReadArtifact(path string) (*Comparison, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeDataNotFound, "ReadArtifact: read file", err)
	}

	var comparison Comparison
	if err := yaml.Unmarshal(data, &comparison); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidType, "ReadArtifact: unmarshal failed", err)
	}

	return &comparison, nil
}
