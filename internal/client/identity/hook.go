package identity

import (
	"context"
	"sync"
)

// OneShot is the callback handed to an external identity provider. The
// provider may call Deliver any number of times; only the first assertion
// is kept. Wait blocks until it arrives or ctx ends.
type OneShot struct {
	once sync.Once
	ch   chan string
}

func NewOneShot() *OneShot {
	return &OneShot{ch: make(chan string, 1)}
}

// Deliver hands over the assertion and reports whether it was accepted.
func (o *OneShot) Deliver(assertion string) bool {
	accepted := false
	o.once.Do(func() {
		o.ch <- assertion
		close(o.ch)
		accepted = true
	})
	return accepted
}

// Wait returns the delivered assertion. After the first successful Wait,
// later calls return "" with a nil error.
func (o *OneShot) Wait(ctx context.Context) (string, error) {
	select {
	case a := <-o.ch:
		return a, nil
	case <-ctx.Done():
		return "", ctx.Err()
	}
}
