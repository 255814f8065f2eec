package core

const defaultMaxConcurrency = 10

// Semaphore bounds concurrent provider calls process wide. Acquisition
// never blocks; callers reject the request instead of queueing it behind
// an unknown number of slow upstream calls.
type Semaphore struct {
	permits chan struct{}
}

func NewSemaphore(max int) *Semaphore {
	if max <= 0 {
		max = defaultMaxConcurrency
	}
	return &Semaphore{permits: make(chan struct{}, max)}
}

func (s *Semaphore) TryAcquire() bool {
	select {
	case s.permits <- struct{}{}:
		return true
	default:
		return false
	}
}

func (s *Semaphore) Release() {
	select {
	case <-s.permits:
	default:
	}
}
