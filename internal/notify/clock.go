package notify

import "time"

// Clock abstracts the current time so due checks are testable without
// wall-clock waiting.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// NewClock returns the wall-clock Clock.
func NewClock() Clock { return realClock{} }
