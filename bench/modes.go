package bench

import (
	"fmt"
	"strings"
)

// Strategy selects how the transform loop is executed.
type Strategy int

const (
	// StrategyPlain calls the transform through its function value once per
	// element.
	StrategyPlain Strategy = iota
	// StrategyAccelerated runs a compiled block kernel. Its output is
	// bit-identical to StrategyPlain.
	StrategyAccelerated

	strategyCount
)

var strategyNames = [strategyCount]string{"plain", "accelerated"}

func (s Strategy) String() string {
	if s.Valid() {
		return strategyNames[s]
	}
	return fmt.Sprintf("Strategy(%d)", int(s))
}

// Valid reports whether s is a known strategy.
func (s Strategy) Valid() bool { return s >= 0 && s < strategyCount }

// Layout selects the storage representation of the two sequences.
type Layout int

const (
	// LayoutContiguous stores values in a []float64.
	LayoutContiguous Layout = iota
	// LayoutBoxed stores each value behind an interface, like a dynamic
	// array of objects.
	LayoutBoxed

	layoutCount
)

var layoutNames = [layoutCount]string{"contiguous", "boxed"}

func (l Layout) String() string {
	if l.Valid() {
		return layoutNames[l]
	}
	return fmt.Sprintf("Layout(%d)", int(l))
}

// Valid reports whether l is a known layout.
func (l Layout) Valid() bool { return l >= 0 && l < layoutCount }

// AllocMode selects whether allocating the sequences is timed.
type AllocMode int

const (
	// AllocUntimed allocates both sequences before the start timestamp.
	AllocUntimed AllocMode = iota
	// AllocTimed starts the timer before allocating, so allocation and
	// input fill count towards the duration.
	AllocTimed

	allocModeCount
)

var allocModeNames = [allocModeCount]string{"untimed", "timed"}

func (a AllocMode) String() string {
	if a.Valid() {
		return allocModeNames[a]
	}
	return fmt.Sprintf("AllocMode(%d)", int(a))
}

// Valid reports whether a is a known allocation mode.
func (a AllocMode) Valid() bool { return a >= 0 && a < allocModeCount }

// ParseStrategy parses "plain" or "accelerated" (also "jit").
func ParseStrategy(s string) (Strategy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "plain":
		return StrategyPlain, nil
	case "accelerated", "jit":
		return StrategyAccelerated, nil
	}
	return 0, fmt.Errorf("bench: unknown strategy %q", s)
}

// ParseLayout parses "contiguous" (also "array") or "boxed" (also "list").
func ParseLayout(s string) (Layout, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "contiguous", "array":
		return LayoutContiguous, nil
	case "boxed", "list":
		return LayoutBoxed, nil
	}
	return 0, fmt.Errorf("bench: unknown layout %q", s)
}

// ParseAllocMode parses "untimed" or "timed".
func ParseAllocMode(s string) (AllocMode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "untimed":
		return AllocUntimed, nil
	case "timed":
		return AllocTimed, nil
	}
	return 0, fmt.Errorf("bench: unknown allocation mode %q", s)
}

func (s Strategy) MarshalText() ([]byte, error) { return marshalMode(s.Valid(), s.String()) }
func (l Layout) MarshalText() ([]byte, error)   { return marshalMode(l.Valid(), l.String()) }
func (a AllocMode) MarshalText() ([]byte, error) {
	return marshalMode(a.Valid(), a.String())
}

func (s *Strategy) UnmarshalText(b []byte) (err error) {
	*s, err = ParseStrategy(string(b))
	return err
}

func (l *Layout) UnmarshalText(b []byte) (err error) {
	*l, err = ParseLayout(string(b))
	return err
}

func (a *AllocMode) UnmarshalText(b []byte) (err error) {
	*a, err = ParseAllocMode(string(b))
	return err
}

func marshalMode(valid bool, name string) ([]byte, error) {
	if !valid {
		return nil, fmt.Errorf("bench: cannot marshal %s", name)
	}
	return []byte(name), nil
}
