package turn

import (
	"context"
	"fmt"
	"sync"

	"sleuth-client/internal/command"
	"sleuth-client/internal/model"
	"sleuth-client/internal/notify"
	"sleuth-client/internal/state"
	"sleuth-client/pkg/logger"

	"go.uber.org/zap"
)

// Source is the slice of the command client the controller polls.
type Source interface {
	TurnInfo(ctx context.Context, sessionID string) (command.TurnInfo, error)
	Players(ctx context.Context, sessionID string) ([]model.Player, error)
}

// SnapshotSink receives the session after every successful refresh.
type SnapshotSink interface {
	Save(ctx context.Context, sess model.Session) error
}

type Option func(*Controller)

func WithSnapshotSink(sink SnapshotSink) Option {
	return func(c *Controller) { c.sink = sink }
}

// Controller keeps the session's turn state in sync with the backend.
// It never infers a transition locally; every phase comes from TurnInfo,
// except the optimistic overlay set through SetTurnState.
type Controller struct {
	source   Source
	store    *state.Store
	notifier notify.Notifier
	sink     SnapshotSink
	trigger  chan struct{}

	refreshMu sync.Mutex

	mu         sync.Mutex
	waitingKey string
	dismiss    func()
}

func NewController(source Source, store *state.Store, notifier notify.Notifier, opts ...Option) *Controller {
	c := &Controller{
		source:   source,
		store:    store,
		notifier: notifier,
		trigger:  make(chan struct{}, 1),
	}
	for _, opt := range opts {
		opt(c)
	}
	store.OnChange(c.onStoreChange)
	return c
}

func (c *Controller) onStoreChange(ch state.Change) {
	switch ch {
	case state.ChangeHand, state.ChangeDraft, state.ChangeSecrets, state.ChangeTurn:
		c.Trigger()
	}
}

// Trigger requests a refresh from Run. Pending requests coalesce.
func (c *Controller) Trigger() {
	select {
	case c.trigger <- struct{}{}:
	default:
	}
}

// Run refreshes on every trigger until ctx is done.
func (c *Controller) Run(ctx context.Context) error {
	defer c.clearWaiting()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-c.trigger:
			if err := c.Refresh(ctx); err != nil {
				logger.Log.Warn("turn refresh failed", zap.String("sessionID", c.store.SessionID()), zap.Error(err))
			}
		}
	}
}

// SetTurnState applies an optimistic phase until the next refresh.
func (c *Controller) SetTurnState(phase model.Phase) {
	c.store.SetOverlay(phase)
}

func (c *Controller) Refresh(ctx context.Context) error {
	c.refreshMu.Lock()
	defer c.refreshMu.Unlock()

	info, err := c.source.TurnInfo(ctx, c.store.SessionID())
	if err != nil {
		return fmt.Errorf("fetch turn info: %w", err)
	}

	sess := model.Session{
		CurrentTurnPlayerID: info.CurrentTurn,
		Phase:               info.TurnState,
		TargetPlayerID:      info.TargetPlayer,
		RemainingTime:       info.RemainingTime,
		TimerPaused:         info.TimerPaused,
	}
	c.store.ApplySession(sess)
	c.updateWaiting(ctx, sess)

	if c.sink != nil {
		if err := c.sink.Save(ctx, c.store.Session()); err != nil {
			logger.Log.Warn("session snapshot not saved", zap.Error(err))
		}
	}
	return nil
}

func (c *Controller) updateWaiting(ctx context.Context, sess model.Session) {
	if !sess.Phase.Waiting() || sess.TargetPlayerID == c.store.LocalID() {
		c.clearWaiting()
		return
	}

	key := string(sess.Phase) + "/" + sess.TargetPlayerID
	c.mu.Lock()
	same := c.waitingKey == key
	c.mu.Unlock()
	if same {
		return
	}

	msg := c.waitingMessage(ctx, sess.Phase, sess.TargetPlayerID)

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dismiss != nil {
		c.dismiss()
	}
	c.dismiss = c.notifier.Hold(msg)
	c.waitingKey = key
}

func (c *Controller) clearWaiting() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.dismiss != nil {
		c.dismiss()
		c.dismiss = nil
	}
	c.waitingKey = ""
}

// Waiting reports whether a waiting notification is currently held.
func (c *Controller) Waiting() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.dismiss != nil
}

func (c *Controller) waitingMessage(ctx context.Context, phase model.Phase, targetID string) string {
	thing := "a secret"
	if phase == model.PhaseCardTradePending {
		thing = "a card to trade"
	}

	name, ok := c.resolveName(ctx, targetID)
	if !ok {
		return fmt.Sprintf("Waiting for another player to choose %s...", thing)
	}
	return fmt.Sprintf("Waiting for %s to choose %s...", name, thing)
}

func (c *Controller) resolveName(ctx context.Context, playerID string) (string, bool) {
	if playerID == "" {
		return "", false
	}
	if p, ok := c.store.Player(playerID); ok && p.DisplayName != "" {
		return p.DisplayName, true
	}

	players, err := c.source.Players(ctx, c.store.SessionID())
	if err != nil {
		logger.Log.Warn("player name lookup failed", zap.String("playerID", playerID), zap.Error(err))
		return "", false
	}
	c.store.AddPlayers(players...)
	if p, ok := c.store.Player(playerID); ok && p.DisplayName != "" {
		return p.DisplayName, true
	}
	return "", false
}
