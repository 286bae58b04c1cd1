package entity

import "time"

// Result is the stored shape of a prepared frame for one challenge.
type Result struct {
	Challenge string    // Challenge name (e.g., "apple")
	IndexName string    // Label of the row index
	IndexType DType     // Dtype tag of the row index
	Columns   []string  // Data column labels, index excluded
	Rows      int       // Number of rows in the frame
	CreatedAt time.Time // When the result was recorded
}

// CaseResult is the outcome of a single check against a Result.
type CaseResult struct {
	Name    string
	Passed  bool
	Message string
}

// Report collects the outcome of every check run for a challenge.
type Report struct {
	Challenge string
	Cases     []CaseResult
}

// Passed reports whether every case in the report passed.
func (r Report) Passed() bool {
	for _, c := range r.Cases {
		if !c.Passed {
			return false
		}
	}
	return true
}

// Failed returns the number of failing cases.
func (r Report) Failed() int {
	n := 0
	for _, c := range r.Cases {
		if !c.Passed {
			n++
		}
	}
	return n
}
