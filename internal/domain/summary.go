package domain

// Summary counts the outcomes of a set of download tasks. The fold is
// commutative, so completion order never affects the totals.
type Summary struct {
	Downloaded int
	Skipped    int
	Errors     int
}

// Add records one outcome.
func (s *Summary) Add(o Outcome) {
	switch o {
	case OutcomeSuccess:
		s.Downloaded++
	case OutcomeSkipped:
		s.Skipped++
	default:
		s.Errors++
	}
}

// Merge folds another summary into this one.
func (s *Summary) Merge(other Summary) {
	s.Downloaded += other.Downloaded
	s.Skipped += other.Skipped
	s.Errors += other.Errors
}

// Total returns the number of outcomes folded in.
func (s Summary) Total() int {
	return s.Downloaded + s.Skipped + s.Errors
}

// Fold counts a sequence of outcomes into a summary.
func Fold(outcomes []Outcome) Summary {
	var s Summary
	for _, o := range outcomes {
		s.Add(o)
	}
	return s
}
