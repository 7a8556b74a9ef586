package strategy

import "github.com/quantfold/sector-backtest/internal/indicator"

// Crossover predicates. All of them require every referenced value to be
// defined; a warm-up gap on either side means no cross. They read bars i
// and i-1 only, never ahead.

// crossAbove reports whether a crossed above b at bar i.
func crossAbove(a, b indicator.Series, i int) bool {
	if i < 1 {
		return false
	}

	av, aok := a.At(i)
	bv, bok := b.At(i)
	ap, apok := a.At(i - 1)
	bp, bpok := b.At(i - 1)

	return aok && bok && apok && bpok && av > bv && ap <= bp
}

// crossBelow reports whether a crossed below b at bar i.
func crossBelow(a, b indicator.Series, i int) bool {
	if i < 1 {
		return false
	}

	av, aok := a.At(i)
	bv, bok := b.At(i)
	ap, apok := a.At(i - 1)
	bp, bpok := b.At(i - 1)

	return aok && bok && apok && bpok && av < bv && ap >= bp
}

// crossAboveLevel reports whether s crossed above a fixed level at bar i.
func crossAboveLevel(s indicator.Series, level float64, i int) bool {
	if i < 1 {
		return false
	}

	v, ok := s.At(i)
	p, pok := s.At(i - 1)

	return ok && pok && v > level && p <= level
}

// crossBelowLevel reports whether s crossed below a fixed level at bar i.
func crossBelowLevel(s indicator.Series, level float64, i int) bool {
	if i < 1 {
		return false
	}

	v, ok := s.At(i)
	p, pok := s.At(i - 1)

	return ok && pok && v < level && p >= level
}

// firstBarAbove reports whether bar i is the first bar where a and b are
// both defined, with a already above b. A relationship established during
// the warm-up gap surfaces on its first visible bar.
func firstBarAbove(a, b indicator.Series, i int) bool {
	av, aok := a.At(i)
	bv, bok := b.At(i)

	if !aok || !bok || av <= bv {
		return false
	}

	if i == 0 {
		return true
	}

	_, apok := a.At(i - 1)
	_, bpok := b.At(i - 1)

	return !apok || !bpok
}

// firstBarBelow reports whether bar i is the first bar where a and b are
// both defined, with a already below b.
func firstBarBelow(a, b indicator.Series, i int) bool {
	av, aok := a.At(i)
	bv, bok := b.At(i)

	if !aok || !bok || av >= bv {
		return false
	}

	if i == 0 {
		return true
	}

	_, apok := a.At(i - 1)
	_, bpok := b.At(i - 1)

	return !apok || !bpok
}

// above reports whether a is strictly above b at bar i, both defined.
func above(a, b indicator.Series, i int) bool {
	av, aok := a.At(i)
	bv, bok := b.At(i)

	return aok && bok && av > bv
}

// below reports whether a is strictly below b at bar i, both defined.
func below(a, b indicator.Series, i int) bool {
	av, aok := a.At(i)
	bv, bok := b.At(i)

	return aok && bok && av < bv
}

// belowLevel reports whether s is strictly below a level at bar i.
func belowLevel(s indicator.Series, level float64, i int) bool {
	v, ok := s.At(i)

	return ok && v < level
}

// aboveLevel reports whether s is strictly above a level at bar i.
func aboveLevel(s indicator.Series, level float64, i int) bool {
	v, ok := s.At(i)

	return ok && v > level
}

// rising reports whether s increased from bar i-1 to bar i.
func rising(s indicator.Series, i int) bool {
	if i < 1 {
		return false
	}

	v, ok := s.At(i)
	p, pok := s.At(i - 1)

	return ok && pok && v > p
}

// falling reports whether s decreased from bar i-1 to bar i.
func falling(s indicator.Series, i int) bool {
	if i < 1 {
		return false
	}

	v, ok := s.At(i)
	p, pok := s.At(i - 1)

	return ok && pok && v < p
}
