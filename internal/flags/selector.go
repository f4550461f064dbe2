// Package flags picks which boolean-like estimator flags are worth plotting.
package flags

// Defaults used when no configuration overrides them.
const (
	DefaultMaxShown = 8
	// DefaultThreshold tolerates floating noise on boolean samples.
	DefaultThreshold = 0.1
)

// Candidate is a labelled sample array considered for a flag chart.
type Candidate struct {
	Label string
	Data  []float64
}

// Active reports whether any sample exceeds threshold.
func (c Candidate) Active(threshold float64) bool {
	for _, v := range c.Data {
		if v > threshold {
			return true
		}
	}
	return false
}

// Select keeps candidates that were active at least once, preserving input
// order and capping the result at maxShown. If none are active the first
// candidate alone is returned, so a logged-but-quiet topic still shows up.
// A non-positive maxShown uses DefaultMaxShown.
func Select(candidates []Candidate, maxShown int, threshold float64) []Candidate {
	if len(candidates) == 0 {
		return nil
	}
	if maxShown <= 0 {
		maxShown = DefaultMaxShown
	}
	out := make([]Candidate, 0, maxShown)
	for _, c := range candidates {
		if len(out) == maxShown {
			break
		}
		if c.Active(threshold) {
			out = append(out, c)
		}
	}
	if len(out) == 0 {
		return []Candidate{candidates[0]}
	}
	return out
}
