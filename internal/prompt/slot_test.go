package prompt

import (
	"context"
	"errors"
	"testing"
	"time"

	appErr "sleuth-client/pkg/errors"
)

func waitForPrompt(t *testing.T, s *Slot) Pending {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for time.Now().Before(deadline) {
		if p, ok := s.Current(); ok {
			return p
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("no prompt opened")
	return Pending{}
}

func players(ids ...string) []Item {
	items := make([]Item, 0, len(ids))
	for _, id := range ids {
		items = append(items, Item{ID: id, Label: id})
	}
	return items
}

func TestRequestResolves(t *testing.T) {
	s := NewSlot()
	done := make(chan string, 1)
	go func() {
		id, err := s.Request(context.Background(), Prompt{Title: "Choose a player", ItemType: ItemPlayer, Items: players("p2", "p3")})
		if err != nil {
			t.Errorf("request: %v", err)
		}
		done <- id
	}()

	p := waitForPrompt(t, s)
	if err := s.Resolve(p.ID, "p4"); !errors.Is(err, appErr.ErrItemNotOffered) {
		t.Fatalf("expected ErrItemNotOffered, got %v", err)
	}
	if err := s.Resolve(p.ID, "p3"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if err := s.Resolve(p.ID, "p2"); !errors.Is(err, appErr.ErrNoPendingPrompt) {
		t.Fatalf("second resolve must fail, got %v", err)
	}

	select {
	case id := <-done:
		if id != "p3" {
			t.Fatalf("expected p3, got %q", id)
		}
	case <-time.After(time.Second):
		t.Fatalf("request did not return")
	}
}

func TestSecondRequestWaitsForSlot(t *testing.T) {
	s := NewSlot()
	results := make(chan string, 2)
	go func() {
		id, _ := s.Request(context.Background(), Prompt{Title: "first", ItemType: ItemCard, Items: players("c1")})
		results <- id
	}()
	first := waitForPrompt(t, s)

	go func() {
		id, _ := s.Request(context.Background(), Prompt{Title: "second", ItemType: ItemCard, Items: players("c2")})
		results <- id
	}()
	time.Sleep(20 * time.Millisecond)
	if cur, _ := s.Current(); cur.Title != "first" {
		t.Fatalf("second prompt must not replace the open one, got %q", cur.Title)
	}

	if err := s.Resolve(first.ID, "c1"); err != nil {
		t.Fatalf("resolve first: %v", err)
	}
	if got := <-results; got != "c1" {
		t.Fatalf("expected c1, got %q", got)
	}

	second := waitForPrompt(t, s)
	if second.Title != "second" {
		t.Fatalf("expected second prompt, got %q", second.Title)
	}
	if err := s.Resolve("", "c2"); err != nil {
		t.Fatalf("resolve second: %v", err)
	}
	if got := <-results; got != "c2" {
		t.Fatalf("expected c2, got %q", got)
	}
}

func TestCancelReleasesRequester(t *testing.T) {
	s := NewSlot()
	errs := make(chan error, 1)
	go func() {
		_, err := s.Request(context.Background(), Prompt{Title: "x", ItemType: ItemSet, Items: players("s1")})
		errs <- err
	}()
	waitForPrompt(t, s)

	if err := s.Cancel(); err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if err := <-errs; !errors.Is(err, appErr.ErrPromptCancelled) {
		t.Fatalf("expected ErrPromptCancelled, got %v", err)
	}
}

func TestContextCancelReleasesRequester(t *testing.T) {
	s := NewSlot()
	ctx, cancel := context.WithCancel(context.Background())
	errs := make(chan error, 1)
	go func() {
		_, err := s.Request(ctx, Prompt{Title: "x", ItemType: ItemSecret, Items: players("s1")})
		errs <- err
	}()
	waitForPrompt(t, s)
	cancel()

	if err := <-errs; !errors.Is(err, appErr.ErrPromptCancelled) {
		t.Fatalf("expected ErrPromptCancelled, got %v", err)
	}
	if _, ok := s.Current(); ok {
		t.Fatalf("slot must be free after cancellation")
	}
}

func TestEmptyPromptRejected(t *testing.T) {
	s := NewSlot()
	if _, err := s.Request(context.Background(), Prompt{Title: "x", ItemType: ItemCard}); !errors.Is(err, appErr.ErrEmptyPrompt) {
		t.Fatalf("expected ErrEmptyPrompt, got %v", err)
	}
}

func TestOnOpenHooksSeePrompt(t *testing.T) {
	s := NewSlot()
	opened := make(chan Pending, 2)
	s.OnOpen(func(p Pending) { opened <- p })
	s.OnOpen(func(p Pending) { opened <- p })

	go func() {
		if _, err := s.Request(context.Background(), Prompt{Title: "Choose a player", ItemType: ItemPlayer, Items: players("p2")}); err != nil {
			t.Errorf("request: %v", err)
		}
	}()

	first, second := <-opened, <-opened
	if first.ID == "" || first.ID != second.ID || first.Title != "Choose a player" {
		t.Fatalf("hooks must see the same open prompt, got %+v and %+v", first, second)
	}
	if err := s.Resolve(first.ID, "p2"); err != nil {
		t.Fatalf("resolve: %v", err)
	}
}
