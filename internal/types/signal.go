package types

import "time"

// SignalType is the discrete per-bar decision a strategy emits. HOLD is
// explicit; every bar carries exactly one signal.
type SignalType string

const (
	// SignalTypeBuy opens a long position.
	SignalTypeBuy SignalType = "BUY"
	// SignalTypeStrongBuy is a buy with all confirmation conditions met
	// (e.g. medium/long golden cross, volume-confirmed breakout). The
	// simulator treats it like a plain buy.
	SignalTypeStrongBuy SignalType = "STRONG_BUY"
	// SignalTypeSell closes the long position.
	SignalTypeSell SignalType = "SELL"
	// SignalTypeStrongSell is a sell with all confirmation conditions met.
	SignalTypeStrongSell SignalType = "STRONG_SELL"
	// SignalTypeHold takes no action.
	SignalTypeHold SignalType = "HOLD"
)

// IsBuy reports whether the signal opens a position.
func (s SignalType) IsBuy() bool {
	return s == SignalTypeBuy || s == SignalTypeStrongBuy
}

// IsSell reports whether the signal closes a position.
func (s SignalType) IsSell() bool {
	return s == SignalTypeSell || s == SignalTypeStrongSell
}

// Signal is one per-bar decision, attached to the bar it was computed on.
type Signal struct {
	// Index is the bar index within the price series.
	Index int
	// Date is the trading date of that bar.
	Date time.Time
	// Type is the decision.
	Type SignalType
	// Reason names the rule that fired, e.g. "golden_cross".
	Reason string
}

// HoldSignal builds the explicit no-action signal for a bar.
func HoldSignal(index int, date time.Time) Signal {
	return Signal{
		Index:  index,
		Date:   date,
		Type:   SignalTypeHold,
		Reason: "",
	}
}
