// Package events is a small typed publish/subscribe hub used to tell the
// application about authentication changes without the auth layer knowing
// who listens.
package events

import (
	"sync"

	"github.com/dmitrijs2005/fileshare/internal/client/models"
)

// LoginSucceeded is published after an interactive sign-in completes.
type LoginSucceeded struct {
	Account models.Account
}

// Dispatcher delivers values of type T to subscribed handlers in
// subscription order.
type Dispatcher[T any] struct {
	mu       sync.RWMutex
	ids      map[string]struct{}
	handlers []func(T)
}

func NewDispatcher[T any]() *Dispatcher[T] {
	return &Dispatcher[T]{ids: make(map[string]struct{})}
}

// Subscribe registers h under id. A second registration with the same id is
// ignored and reported as false.
func (d *Dispatcher[T]) Subscribe(id string, h func(T)) bool {
	d.mu.Lock()
	defer d.mu.Unlock()

	if _, ok := d.ids[id]; ok {
		return false
	}
	d.ids[id] = struct{}{}
	d.handlers = append(d.handlers, h)
	return true
}

// Publish calls every handler synchronously.
func (d *Dispatcher[T]) Publish(v T) {
	d.mu.RLock()
	hs := make([]func(T), len(d.handlers))
	copy(hs, d.handlers)
	d.mu.RUnlock()

	for _, h := range hs {
		h(v)
	}
}

// Len is the number of subscribed handlers.
func (d *Dispatcher[T]) Len() int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.handlers)
}
