package view

import "testing"

func TestSequenceCounter_Sequential(t *testing.T) {
	var s sequenceCounter

	for i, want := range []string{"1", "2", "3", "4"} {
		if got := s.next(); got != want {
			t.Errorf("next() #%d = %q, want %q", i+1, got, want)
		}
	}
}

func TestSequenceCounter_Parallel(t *testing.T) {
	var s sequenceCounter
	var got []string

	got = append(got, s.next())

	s.enterParallel(false)
	got = append(got, s.next(), s.next())
	s.exitParallel()

	s.enterParallel(true)
	got = append(got, s.next(), s.next())
	s.exitParallel()

	got = append(got, s.next())

	want := []string{"1", "2", "3", "2", "3", "4"}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("order[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSequenceCounter_UnevenBranches(t *testing.T) {
	var s sequenceCounter
	s.next()

	s.enterParallel(false)
	s.next()
	s.next()
	s.next()
	s.exitParallel()

	s.enterParallel(true)
	if got := s.next(); got != "2" {
		t.Errorf("first step of continued branch = %q, want %q", got, "2")
	}
	s.exitParallel()

	if got := s.next(); got != "5" {
		t.Errorf("step after group = %q, want %q", got, "5")
	}
}

func TestSequenceCounter_ContinueWithoutBaseline(t *testing.T) {
	var s sequenceCounter
	s.next()
	s.next()

	s.enterParallel(true)
	if got := s.next(); got != "3" {
		t.Errorf("continued branch without a group = %q, want %q", got, "3")
	}
	s.exitParallel()

	s.enterParallel(true)
	if got := s.next(); got != "3" {
		t.Errorf("second continued branch = %q, want %q", got, "3")
	}
}

func TestSequenceCounter_NewGroupMovesBaseline(t *testing.T) {
	var s sequenceCounter
	s.next()

	s.enterParallel(false)
	s.next()
	s.exitParallel()

	s.enterParallel(false)
	if got := s.next(); got != "3" {
		t.Errorf("first step of a new group = %q, want %q", got, "3")
	}
	s.exitParallel()

	s.enterParallel(true)
	if got := s.next(); got != "3" {
		t.Errorf("continued branch of the new group = %q, want %q", got, "3")
	}
}
