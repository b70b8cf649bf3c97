package notify

import (
	"sync"
	"time"

	"sleuth-client/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Notifier is the UI notification surface.
type Notifier interface {
	// Notify shows a one-shot message.
	Notify(msg string)
	// Hold shows a persistent message until the returned dismiss func is called.
	Hold(msg string) (dismiss func())
}

type Kind string

const (
	KindToast      Kind = "toast"
	KindPersistent Kind = "persistent"
)

type Notification struct {
	ID        string    `json:"id"`
	Kind      Kind      `json:"kind"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"createdAt"`
}

const defaultHistory = 50

// Center keeps recent toasts and every active persistent message.
type Center struct {
	mu      sync.Mutex
	limit   int
	toasts  []Notification
	holds   map[string]Notification
	ordered []string
}

func NewCenter(limit int) *Center {
	if limit <= 0 {
		limit = defaultHistory
	}
	return &Center{limit: limit, holds: make(map[string]Notification)}
}

func (c *Center) Notify(msg string) {
	n := Notification{ID: uuid.NewString(), Kind: KindToast, Message: msg, CreatedAt: time.Now()}

	c.mu.Lock()
	c.toasts = append(c.toasts, n)
	if len(c.toasts) > c.limit {
		c.toasts = c.toasts[len(c.toasts)-c.limit:]
	}
	c.mu.Unlock()

	logger.Log.Info("notification", zap.String("message", msg))
}

func (c *Center) Hold(msg string) func() {
	n := Notification{ID: uuid.NewString(), Kind: KindPersistent, Message: msg, CreatedAt: time.Now()}

	c.mu.Lock()
	c.holds[n.ID] = n
	c.ordered = append(c.ordered, n.ID)
	c.mu.Unlock()

	logger.Log.Info("persistent notification", zap.String("id", n.ID), zap.String("message", msg))

	var once sync.Once
	return func() {
		once.Do(func() { c.dismiss(n.ID) })
	}
}

func (c *Center) dismiss(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.holds, id)
	for i, v := range c.ordered {
		if v == id {
			c.ordered = append(c.ordered[:i:i], c.ordered[i+1:]...)
			break
		}
	}
}

// Active returns the persistent messages still shown, oldest first.
func (c *Center) Active() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]Notification, 0, len(c.ordered))
	for _, id := range c.ordered {
		out = append(out, c.holds[id])
	}
	return out
}

// Recent returns the retained toasts, oldest first.
func (c *Center) Recent() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Notification(nil), c.toasts...)
}
