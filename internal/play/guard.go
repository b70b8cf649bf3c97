package play

import (
	"context"

	"sleuth-client/internal/action"
	"sleuth-client/internal/command"
	"sleuth-client/internal/model"
	"sleuth-client/internal/notify"
	"sleuth-client/internal/state"
	appErr "sleuth-client/pkg/errors"
	"sleuth-client/pkg/logger"

	"go.uber.org/zap"
)

type EventPlayer interface {
	Play(ctx context.Context, card model.Card) (*command.PlayResult, error)
}

type SetPlayer interface {
	PlaySet(ctx context.Context, cards []model.Card) (*command.PlayResult, error)
	AddToSet(ctx context.Context, card model.Card) (*command.PlayResult, error)
}

// PhaseSetter receives the optimistic phase after a successful play.
type PhaseSetter interface {
	SetTurnState(phase model.Phase)
}

var phaseErrors = map[model.Phase]error{
	model.PhaseDrawingCards:     appErr.ErrPhaseDrawing,
	model.PhaseDiscarding:       appErr.ErrPhaseDiscarding,
	model.PhaseChoosingSecret:   appErr.ErrPhaseSecret,
	model.PhaseCardTradePending: appErr.ErrPhaseTrade,
	model.PhasePassingCards:     appErr.ErrPhasePassing,
	model.PhaseEndTurn:          appErr.ErrPhaseEndTurn,
}

// Guard checks that a local play is legal, runs it and reconciles the hand.
type Guard struct {
	store      *state.Store
	events     EventPlayer
	detectives SetPlayer
	phases     PhaseSetter
	notifier   notify.Notifier
}

func NewGuard(store *state.Store, events EventPlayer, detectives SetPlayer, phases PhaseSetter, notifier notify.Notifier) *Guard {
	return &Guard{store: store, events: events, detectives: detectives, phases: phases, notifier: notifier}
}

// CanAct returns nil when the local player may start an action now.
func (g *Guard) CanAct() error {
	if !g.store.IsCurrentTurn() {
		return appErr.ErrNotYourTurn
	}
	phase := g.store.Phase()
	if phase == model.PhaseIdle {
		return nil
	}
	if err, ok := phaseErrors[phase]; ok {
		return err
	}
	return appErr.ErrPhaseUnknownState
}

// Play plays the selected hand cards. Every failure is also reported
// through the notifier as a user-facing message.
func (g *Guard) Play(ctx context.Context, cardIDs []string) (*command.PlayResult, error) {
	res, err := g.play(ctx, cardIDs)
	if err != nil {
		g.notifier.Notify(appErr.UserMessage(err))
		logger.Log.Info("play rejected", zap.Strings("cards", cardIDs), zap.Error(err))
		return nil, err
	}
	return res, nil
}

func (g *Guard) play(ctx context.Context, cardIDs []string) (*command.PlayResult, error) {
	if err := g.CanAct(); err != nil {
		return nil, err
	}
	cardIDs = dedupe(cardIDs)
	if len(cardIDs) == 0 {
		return nil, appErr.ErrNoSelection
	}
	cards, missing := g.store.HandCards(cardIDs)
	if len(missing) > 0 {
		return nil, appErr.ErrCardNotInHand
	}

	if len(cards) > 1 {
		for _, c := range cards {
			if c.Type != model.CardDetective {
				return nil, appErr.ErrMixedSelection
			}
		}
		res, err := g.detectives.PlaySet(ctx, cards)
		if err := accepted(res, err); err != nil {
			return nil, err
		}
		g.commit(res, cardIDs, nil)
		return res, nil
	}

	card := cards[0]
	if card.Type == model.CardDetective {
		res, err := g.detectives.AddToSet(ctx, card)
		if err := accepted(res, err); err != nil {
			return nil, err
		}
		g.commit(res, cardIDs, nil)
		return res, nil
	}

	res, err := g.events.Play(ctx, card)
	if err := accepted(res, err); err != nil {
		return nil, err
	}
	var gained *model.Card
	if action.ReturnsCard(card.Name) {
		gained = res.Card
	}
	g.commit(res, cardIDs, gained)
	return res, nil
}

// accepted turns a nil or not-ok result into ErrActionRejected.
func accepted(res *command.PlayResult, err error) error {
	if err != nil {
		return err
	}
	if res == nil || !res.OK {
		return appErr.ErrActionRejected
	}
	return nil
}

// commit sets the optimistic phase before the hand changes. A hand change
// wakes the refresh loop and that refresh must see the overlay.
func (g *Guard) commit(res *command.PlayResult, played []string, gained *model.Card) {
	g.phases.SetTurnState(model.PhaseDiscarding)
	g.store.RemoveFromHand(played...)
	if gained != nil {
		g.store.AddToHand(*gained)
	}
	if res.Set != nil {
		g.store.AddSet(*res.Set)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]bool, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out
}
