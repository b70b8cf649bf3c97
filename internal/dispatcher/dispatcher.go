package dispatcher

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"sleuth-client/internal/channel"
	"sleuth-client/internal/model"
	"sleuth-client/internal/notify"
	"sleuth-client/internal/state"
	appErr "sleuth-client/pkg/errors"
	"sleuth-client/pkg/logger"

	"github.com/sourcegraph/conc"
	"go.uber.org/zap"
)

// Bus is the part of the event channel the dispatcher drives.
type Bus interface {
	On(eventType string, fn channel.Handler) func()
	Connect(ctx context.Context, sessionID string) error
	Disconnect()
}

// Fetcher reloads mirrors the events only hint at.
type Fetcher interface {
	Players(ctx context.Context, sessionID string) ([]model.Player, error)
	PlayerCards(ctx context.Context, sessionID, playerID string) ([]model.Card, error)
}

// Responder runs the flows that need the local player's input.
type Responder interface {
	RevealOwnSecret(ctx context.Context, reason string) (bool, error)
	GiveTradeCard(ctx context.Context, initiatorID string) (bool, error)
	PassCard(ctx context.Context, direction model.Direction) (bool, error)
	CastVote(ctx context.Context) (bool, error)
}

// Refresher asks the turn controller for a new server snapshot.
type Refresher interface {
	Trigger()
}

// Navigator leaves the session view once the game is over.
type Navigator interface {
	GameEnded(result model.GameResult)
}

type NavigatorFunc func(result model.GameResult)

func (f NavigatorFunc) GameEnded(result model.GameResult) { f(result) }

type Deps struct {
	Bus       Bus
	Store     *state.Store
	Fetcher   Fetcher
	Responder Responder
	Turns     Refresher
	Notifier  notify.Notifier
	Navigator Navigator
}

// Dispatcher applies the server events of one session to the local mirrors.
// Flows that need the local player run on their own goroutines so that event
// delivery never waits on a prompt.
type Dispatcher struct {
	Deps

	ctx    context.Context
	cancel context.CancelFunc
	flows  conc.WaitGroup

	mu        sync.Mutex
	disposers []func()

	endOnce  sync.Once
	stopOnce sync.Once
}

func New(deps Deps) *Dispatcher {
	return &Dispatcher{Deps: deps}
}

// Start loads the roster, registers one handler per event type and connects
// the bus to the session.
func (d *Dispatcher) Start(ctx context.Context) error {
	d.ctx, d.cancel = context.WithCancel(ctx)
	d.loadRoster(d.ctx)

	handlers := map[string]func(payload, json.RawMessage){
		EventTurnChange:                  d.onTurnChange,
		EventUpdateDraft:                 d.onUpdateDraft,
		EventPlayerDrawCards:             d.onPlayerDrawCards,
		EventPlaySet:                     d.onPlaySet,
		EventPlayEvent:                   d.onPlayEvent,
		EventPlayerCardDiscarded:         d.onPlayerCardDiscarded,
		EventTargetPlayerElection:        d.onTargetPlayerElection,
		EventPassingPhaseStarted:         d.onPassingPhaseStarted,
		EventPassingPhaseExecuted:        d.onPassingPhaseExecuted,
		EventVotingPhaseStarted:          d.onVotingPhaseStarted,
		EventVotingPhaseExecuted:         d.onVotingPhaseExecuted,
		EventPlayerHasVoted:              d.onPlayerHasVoted,
		EventSecretRevealed:              d.onSecretRevealed,
		EventCardTradeResolved:           d.onCardTradeResolved,
		EventEndTimer:                    d.onEndTimer,
		EventWaitingForCancellationEvent: d.onWaitingForCancellation("card"),
		EventWaitingForCancellationSet:   d.onWaitingForCancellation("set"),
		EventWaitFinished:                d.onWaitFinished,
		EventCancellationStopped:         d.onCancellationStopped,
		EventActionRequiredChooseSecret:  d.onActionRequiredChooseSecret,
		EventNotSoFastPlayed:             d.onNotSoFastPlayed,
		EventSfpPending:                  d.onSfpPending,
		EventDisconnect:                  d.onDisconnect,
	}

	d.mu.Lock()
	for _, eventType := range Events {
		var fn channel.Handler = d.onGameEnd
		if eventType != EventGameEnd {
			fn = d.decoded(eventType, handlers[eventType])
		}
		d.disposers = append(d.disposers, d.Bus.On(eventType, fn))
	}
	d.disposers = append(d.disposers, d.Bus.On(channel.EventOpen, func(json.RawMessage) {
		d.Turns.Trigger()
	}))
	d.mu.Unlock()

	if err := d.Bus.Connect(d.ctx, d.Store.SessionID()); err != nil {
		return fmt.Errorf("connect session %s: %w", d.Store.SessionID(), err)
	}
	return nil
}

// Stop cancels running flows, drops every handler, disconnects the bus and
// waits for the flows to return.
func (d *Dispatcher) Stop() {
	d.stopOnce.Do(func() {
		if d.cancel != nil {
			d.cancel()
		}
		d.mu.Lock()
		disposers := d.disposers
		d.disposers = nil
		d.mu.Unlock()
		for _, dispose := range disposers {
			dispose()
		}
		d.Bus.Disconnect()

		if r := d.flows.WaitAndRecover(); r != nil {
			logger.Log.Error("response flow panicked", zap.String("panic", r.String()))
		}
	})
}

func (d *Dispatcher) decoded(eventType string, fn func(payload, json.RawMessage)) channel.Handler {
	return func(raw json.RawMessage) {
		var p payload
		if len(raw) > 0 && string(raw) != "null" {
			if err := json.Unmarshal(raw, &p); err != nil {
				logger.Log.Warn("event payload dropped", zap.String("type", eventType), zap.Error(err))
				return
			}
		}
		logger.Log.Debug("event", zap.String("type", eventType), zap.String("player", p.PlayerID))
		fn(p, raw)
	}
}

func (d *Dispatcher) local() string { return d.Store.LocalID() }

func (d *Dispatcher) isLocal(playerID string) bool {
	return playerID != "" && playerID == d.local()
}

func (d *Dispatcher) name(playerID string) string {
	if playerID == "" {
		return "Another player"
	}
	return d.Store.DisplayName(playerID)
}

// notifyOthers drops messages about the local player's own actions.
func (d *Dispatcher) notifyOthers(actor, msg string) {
	if d.isLocal(actor) {
		return
	}
	d.Notifier.Notify(msg)
}

func (d *Dispatcher) loadRoster(ctx context.Context) {
	players, err := d.Fetcher.Players(ctx, d.Store.SessionID())
	if err != nil {
		logger.Log.Warn("roster load failed", zap.String("sessionID", d.Store.SessionID()), zap.Error(err))
		return
	}
	d.Store.AddPlayers(players...)
}

func (d *Dispatcher) refreshHand() {
	d.flows.Go(func() {
		cards, err := d.Fetcher.PlayerCards(d.ctx, d.Store.SessionID(), d.local())
		if err != nil {
			logger.Log.Warn("hand refresh failed", zap.Error(err))
			return
		}
		d.Store.SetHand(cards)
	})
}

// respond runs a server-initiated flow without blocking event delivery.
func (d *Dispatcher) respond(flow string, fn func(ctx context.Context) (bool, error)) {
	d.flows.Go(func() {
		done, err := fn(d.ctx)
		if err != nil {
			logger.Log.Warn("response rejected", zap.String("flow", flow), zap.Error(err))
			d.Notifier.Notify(appErr.UserMessage(err))
			return
		}
		logger.Log.Debug("response flow finished", zap.String("flow", flow), zap.Bool("sent", done))
		d.Turns.Trigger()
	})
}

func (d *Dispatcher) onTurnChange(p payload, _ json.RawMessage) {
	d.Store.SetCurrentTurn(p.PlayerID)
}

func (d *Dispatcher) onUpdateDraft(p payload, _ json.RawMessage) {
	d.Store.SetDraft(p.Cards)
	d.notifyOthers(p.PlayerID, fmt.Sprintf("%s took a card from the draft", d.name(p.PlayerID)))
}

func (d *Dispatcher) onPlayerDrawCards(p payload, _ json.RawMessage) {
	if d.isLocal(p.PlayerID) {
		d.refreshHand()
		return
	}
	n := p.Count
	if n == 0 {
		n = len(p.Cards)
	}
	d.Notifier.Notify(fmt.Sprintf("%s drew %d card(s)", d.name(p.PlayerID), n))
}

func (d *Dispatcher) onPlaySet(p payload, _ json.RawMessage) {
	if p.Set == nil {
		return
	}
	d.Store.AddSet(*p.Set)
	d.notifyOthers(p.PlayerID, fmt.Sprintf("%s played a %s set", d.name(p.PlayerID), p.Set.Type))
}

func (d *Dispatcher) onPlayEvent(p payload, _ json.RawMessage) {
	if p.Card == nil {
		return
	}
	d.Store.PushDiscard(*p.Card)
	d.notifyOthers(p.PlayerID, fmt.Sprintf("%s played %s", d.name(p.PlayerID), p.Card.Name))
}

func (d *Dispatcher) onPlayerCardDiscarded(p payload, _ json.RawMessage) {
	cards := p.Cards
	if p.Card != nil {
		cards = append(cards, *p.Card)
	}
	if !d.isLocal(p.PlayerID) {
		d.Store.PushDiscard(cards...)
		return
	}
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	moved := d.Store.DiscardFromHand(ids...)
	if len(moved) < len(cards) {
		// hand mirror is stale
		d.refreshHand()
	}
}

func (d *Dispatcher) onTargetPlayerElection(p payload, _ json.RawMessage) {
	initiator, target := p.PlayerID, p.TargetPlayer
	switch {
	case d.isLocal(target):
		d.respond("card-trade", func(ctx context.Context) (bool, error) {
			return d.Responder.GiveTradeCard(ctx, initiator)
		})
	case d.isLocal(initiator):
		d.Turns.Trigger()
	default:
		d.Notifier.Notify(fmt.Sprintf("%s chose %s for a card trade", d.name(initiator), d.name(target)))
	}
}

func (d *Dispatcher) onPassingPhaseStarted(p payload, _ json.RawMessage) {
	dir := p.Direction
	if dir == "" {
		dir = model.DirectionRight
	}
	d.respond("passing", func(ctx context.Context) (bool, error) {
		return d.Responder.PassCard(ctx, dir)
	})
}

func (d *Dispatcher) onPassingPhaseExecuted(p payload, _ json.RawMessage) {
	d.refreshHand()
	if p.Direction != "" {
		d.Notifier.Notify(fmt.Sprintf("Cards were passed to the %s", p.Direction))
	} else {
		d.Notifier.Notify("Cards were passed")
	}
}

func (d *Dispatcher) onVotingPhaseStarted(payload, json.RawMessage) {
	d.respond("voting", d.Responder.CastVote)
}

func (d *Dispatcher) onVotingPhaseExecuted(p payload, _ json.RawMessage) {
	switch {
	case p.MostVoted == "":
		d.Notifier.Notify("The vote ended without a result")
	case d.isLocal(p.MostVoted):
		d.Notifier.Notify("You received the most votes")
	default:
		d.Notifier.Notify(fmt.Sprintf("%s received the most votes", d.name(p.MostVoted)))
	}
	d.Turns.Trigger()
}

func (d *Dispatcher) onPlayerHasVoted(p payload, _ json.RawMessage) {
	d.notifyOthers(p.PlayerID, fmt.Sprintf("%s has voted", d.name(p.PlayerID)))
}

func (d *Dispatcher) onSecretRevealed(p payload, _ json.RawMessage) {
	if p.Secret == nil {
		return
	}
	secret := *p.Secret
	if secret.OwnerID == "" {
		secret.OwnerID = p.PlayerID
	}
	d.Store.UpsertSecret(secret)

	shown := secret.VisibleTo(d.local()).Name
	if d.isLocal(secret.OwnerID) {
		if secret.Revealed {
			d.Notifier.Notify(fmt.Sprintf("Your secret %s was revealed", shown))
		} else {
			d.Notifier.Notify(fmt.Sprintf("Your secret %s is hidden again", shown))
		}
		return
	}
	if secret.Revealed {
		d.Notifier.Notify(fmt.Sprintf("%s's secret was revealed: %s", d.name(secret.OwnerID), shown))
	} else {
		d.Notifier.Notify(fmt.Sprintf("%s's secret was hidden", d.name(secret.OwnerID)))
	}
}

func (d *Dispatcher) onCardTradeResolved(p payload, _ json.RawMessage) {
	a, b := p.PlayerID, p.TargetPlayer
	switch {
	case d.isLocal(a):
		d.Notifier.Notify(fmt.Sprintf("You traded a card with %s", d.name(b)))
	case d.isLocal(b):
		d.Notifier.Notify(fmt.Sprintf("You traded a card with %s", d.name(a)))
	default:
		d.Notifier.Notify(fmt.Sprintf("%s and %s traded cards", d.name(a), d.name(b)))
		d.Turns.Trigger()
		return
	}
	d.refreshHand()
}

func (d *Dispatcher) onEndTimer(p payload, _ json.RawMessage) {
	remaining := 0
	if p.RemainingTime != nil {
		remaining = *p.RemainingTime
	}
	d.Store.SetTimer(remaining, false)
	d.Turns.Trigger()
}

func (d *Dispatcher) onWaitingForCancellation(what string) func(payload, json.RawMessage) {
	return func(p payload, _ json.RawMessage) {
		sess := d.Store.Session()
		d.Store.SetTimer(sess.RemainingTime, true)

		label := what
		if p.Card != nil {
			label = p.Card.Name
		} else if p.Set != nil {
			label = p.Set.Type + " set"
		}
		if d.isLocal(p.PlayerID) {
			d.Notifier.Notify(fmt.Sprintf("Waiting to see if anyone cancels your %s...", label))
			return
		}
		d.Notifier.Notify(fmt.Sprintf("%s played %s. You may answer with Not So Fast", d.name(p.PlayerID), label))
	}
}

func (d *Dispatcher) onWaitFinished(payload, json.RawMessage) {
	sess := d.Store.Session()
	d.Store.SetTimer(sess.RemainingTime, false)
	d.Turns.Trigger()
}

func (d *Dispatcher) onCancellationStopped(p payload, _ json.RawMessage) {
	if d.isLocal(p.PlayerID) {
		d.Notifier.Notify("Your action was cancelled")
	} else {
		d.Notifier.Notify(fmt.Sprintf("%s's action was cancelled", d.name(p.PlayerID)))
	}
	d.Turns.Trigger()
}

func (d *Dispatcher) onActionRequiredChooseSecret(p payload, _ json.RawMessage) {
	target := p.TargetPlayer
	if target == "" {
		target = p.PlayerID
	}
	if d.isLocal(target) {
		reason := p.Reason
		if reason == "" {
			reason = "action"
		}
		d.respond("reveal-secret", func(ctx context.Context) (bool, error) {
			return d.Responder.RevealOwnSecret(ctx, reason)
		})
		return
	}
	d.Notifier.Notify(fmt.Sprintf("%s is choosing a secret to reveal", d.name(target)))
}

func (d *Dispatcher) onNotSoFastPlayed(p payload, _ json.RawMessage) {
	if p.Card != nil {
		d.Store.PushDiscard(*p.Card)
	}
	d.notifyOthers(p.PlayerID, fmt.Sprintf("%s played Not So Fast!", d.name(p.PlayerID)))
}

func (d *Dispatcher) onSfpPending(p payload, _ json.RawMessage) {
	target := p.TargetPlayer
	if target == "" {
		target = p.PlayerID
	}
	if d.isLocal(target) {
		d.Notifier.Notify("Social faux pas! Reveal one of your secrets")
		d.respond("social-faux-pas", func(ctx context.Context) (bool, error) {
			return d.Responder.RevealOwnSecret(ctx, "sfp")
		})
		return
	}
	d.Notifier.Notify(fmt.Sprintf("%s committed a social faux pas and must reveal a secret", d.name(target)))
}

// onGameEnd takes the raw frame. The result has no fixed shape and must
// never be dropped by the shared payload decode.
func (d *Dispatcher) onGameEnd(raw json.RawMessage) {
	d.endOnce.Do(func() {
		result := model.GameResult{SessionID: d.Store.SessionID(), LocalPlayerID: d.local()}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &result.Payload); err != nil {
				logger.Log.Warn("game result payload unreadable", zap.Error(err))
			}
		}
		logger.Log.Info("game ended", zap.String("sessionID", result.SessionID))
		d.Navigator.GameEnded(result)
	})
}

func (d *Dispatcher) onDisconnect(p payload, _ json.RawMessage) {
	d.notifyOthers(p.PlayerID, fmt.Sprintf("%s left the game", d.name(p.PlayerID)))
}
