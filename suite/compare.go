package suite

import (
	"fmt"

	"github.com/cwbudde/algo-bench/bench"
)

// Comparison relates a plain case to an accelerated one over the same
// transform, size and layout.
type Comparison struct {
	Plain       string  `json:"plain" yaml:"plain"`
	Accelerated string  `json:"accelerated" yaml:"accelerated"`
	PlainMedian float64 `json:"plain_median_s" yaml:"plain_median_s"`
	AccelMedian float64 `json:"accelerated_median_s" yaml:"accelerated_median_s"`

	// Speedup is PlainMedian / AccelMedian, 0 if the accelerated median is 0.
	Speedup float64 `json:"speedup" yaml:"speedup"`
}

func (c Comparison) String() string {
	return fmt.Sprintf("%s vs %s: %.2fx", c.Plain, c.Accelerated, c.Speedup)
}

type compareKey struct {
	transform string
	size      int
	layout    string
}

// Compare pairs each accelerated case with the first plain case sharing its
// transform, size and layout. Allocation mode is not part of the key.
func Compare(cases []CaseReport) []Comparison {
	plain := make(map[compareKey]CaseReport)
	for _, cr := range cases {
		if cr.Case.Strategy != bench.StrategyPlain {
			continue
		}
		k := keyOf(cr.Case)
		if _, ok := plain[k]; !ok {
			plain[k] = cr
		}
	}

	var out []Comparison
	for _, cr := range cases {
		if cr.Case.Strategy == bench.StrategyPlain {
			continue
		}
		p, ok := plain[keyOf(cr.Case)]
		if !ok {
			continue
		}
		c := Comparison{
			Plain:       p.Case.Name,
			Accelerated: cr.Case.Name,
			PlainMedian: p.Summary.Median,
			AccelMedian: cr.Summary.Median,
		}
		if c.AccelMedian > 0 {
			c.Speedup = c.PlainMedian / c.AccelMedian
		}
		out = append(out, c)
	}
	return out
}

func keyOf(c Case) compareKey {
	name := c.Transform
	if name == "" {
		if t, err := c.transform(); err == nil {
			name = t.Name
		}
	}
	return compareKey{transform: name, size: c.Size, layout: c.Layout.String()}
}
