package view

import "strconv"

// sequenceCounter assigns order labels to the steps of one dynamic view.
//
// Parallel branches share numbering: the first branch of a group records the
// current position as its baseline, every following branch rewinds to that
// baseline, and leaving a branch moves the main line to the highest number any
// branch reached.
type sequenceCounter struct {
	current    int
	maxReached int
	baseline   int
	hasBase    bool
}

// next returns the next order label
func (s *sequenceCounter) next() string {
	s.current++
	if s.current > s.maxReached {
		s.maxReached = s.current
	}
	return strconv.Itoa(s.current)
}

// enterParallel starts a branch. A continued branch with no recorded baseline
// starts a new group instead.
func (s *sequenceCounter) enterParallel(continueBranch bool) {
	if continueBranch && s.hasBase {
		s.current = s.baseline
		return
	}
	s.baseline = s.current
	s.hasBase = true
}

// exitParallel resynchronizes the main line after a branch
func (s *sequenceCounter) exitParallel() {
	s.current = s.maxReached
}
