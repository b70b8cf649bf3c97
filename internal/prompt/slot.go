package prompt

import (
	"context"
	"fmt"
	"slices"
	"sync"

	appErr "sleuth-client/pkg/errors"
	"sleuth-client/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type ItemType string

const (
	ItemPlayer    ItemType = "player"
	ItemCard      ItemType = "card"
	ItemSecret    ItemType = "secret"
	ItemSet       ItemType = "set"
	ItemDirection ItemType = "direction"
)

type Item struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

type Prompt struct {
	Title    string   `json:"title"`
	ItemType ItemType `json:"itemType"`
	Items    []Item   `json:"items"`
}

// Gateway asks the user to pick exactly one item. Request blocks until an
// item is chosen or the prompt is cancelled or ctx is done.
type Gateway interface {
	Request(ctx context.Context, p Prompt) (string, error)
}

// Pending is the prompt currently shown to the user.
type Pending struct {
	ID string `json:"id"`
	Prompt
}

type pending struct {
	view     Pending
	result   chan string
	cancel   chan struct{}
	resolved bool
}

// Slot is the single UI prompt slot. At most one prompt is open and other
// requesters block until the slot is free.
type Slot struct {
	sem chan struct{}

	mu      sync.Mutex
	current *pending
	onOpen  []func(Pending)
}

func NewSlot() *Slot {
	return &Slot{sem: make(chan struct{}, 1)}
}

// OnOpen registers fn to be called whenever a prompt becomes current.
func (s *Slot) OnOpen(fn func(Pending)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onOpen = append(s.onOpen, fn)
}

func (s *Slot) Request(ctx context.Context, p Prompt) (string, error) {
	if len(p.Items) == 0 {
		return "", appErr.ErrEmptyPrompt
	}

	select {
	case s.sem <- struct{}{}:
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", appErr.ErrPromptCancelled, ctx.Err())
	}
	defer func() { <-s.sem }()

	pend := &pending{
		view:   Pending{ID: uuid.NewString(), Prompt: p},
		result: make(chan string, 1),
		cancel: make(chan struct{}),
	}

	s.mu.Lock()
	s.current = pend
	hooks := slices.Clone(s.onOpen)
	s.mu.Unlock()
	defer func() {
		s.mu.Lock()
		if s.current == pend {
			s.current = nil
		}
		s.mu.Unlock()
	}()

	logger.Log.Debug("prompt opened",
		zap.String("promptID", pend.view.ID),
		zap.String("title", p.Title),
		zap.String("itemType", string(p.ItemType)),
		zap.Int("items", len(p.Items)),
	)
	for _, fn := range hooks {
		fn(pend.view)
	}

	select {
	case id := <-pend.result:
		return id, nil
	case <-pend.cancel:
		return "", appErr.ErrPromptCancelled
	case <-ctx.Done():
		return "", fmt.Errorf("%w: %v", appErr.ErrPromptCancelled, ctx.Err())
	}
}

func (s *Slot) Current() (Pending, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil || s.current.resolved {
		return Pending{}, false
	}
	return s.current.view, true
}

// Resolve answers the current prompt. An empty promptID matches any prompt.
func (s *Slot) Resolve(promptID, itemID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current
	if cur == nil || cur.resolved || (promptID != "" && promptID != cur.view.ID) {
		return appErr.ErrNoPendingPrompt
	}
	offered := false
	for _, it := range cur.view.Items {
		if it.ID == itemID {
			offered = true
			break
		}
	}
	if !offered {
		return appErr.ErrItemNotOffered
	}
	cur.resolved = true
	cur.result <- itemID
	return nil
}

// Cancel releases the current requester with ErrPromptCancelled.
func (s *Slot) Cancel() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	cur := s.current
	if cur == nil || cur.resolved {
		return appErr.ErrNoPendingPrompt
	}
	cur.resolved = true
	close(cur.cancel)
	return nil
}
