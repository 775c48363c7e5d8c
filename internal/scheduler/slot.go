package scheduler

// Token identifies one occupancy of a Slot.
type Token uint64

// Slot is a job queue of capacity one that drops offers while full. A job is
// released with the token it was accepted under, so a continuation left over
// from an earlier job cannot free a newer one.
// It is only used from the single frame loop.
type Slot[T any] struct {
	job   T
	busy  bool
	token Token
}

// Offer accepts job when the slot is free. It reports false, and drops the
// job, when the slot is already held.
func (s *Slot[T]) Offer(job T) (Token, bool) {
	if s.busy {
		return 0, false
	}
	s.token++
	s.job = job
	s.busy = true
	return s.token, true
}

// Release frees the slot if tok is the current occupancy. Stale tokens are
// ignored and reported as false.
func (s *Slot[T]) Release(tok Token) bool {
	if !s.busy || tok != s.token {
		return false
	}
	var zero T
	s.job = zero
	s.busy = false
	return true
}

// Current returns the held job.
func (s *Slot[T]) Current() (T, bool) {
	return s.job, s.busy
}

// Busy reports whether a job is held.
func (s *Slot[T]) Busy() bool { return s.busy }

// Reset frees the slot unconditionally. Outstanding tokens become stale.
func (s *Slot[T]) Reset() {
	var zero T
	s.job = zero
	s.busy = false
	s.token++
}
