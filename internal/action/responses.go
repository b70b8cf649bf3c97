package action

import (
	"context"
	"fmt"

	"sleuth-client/internal/command"
	"sleuth-client/internal/model"
	"sleuth-client/internal/state"
	"sleuth-client/pkg/logger"

	"go.uber.org/zap"
)

// Responder runs the flows the server asks of the local player.
// Each returns true once its command was accepted. Lookup failures and
// cancelled prompts are logged and return false with a nil error.
type Responder struct {
	client  command.Client
	store   *state.Store
	prompts *Prompter
}

func NewResponder(client command.Client, store *state.Store, prompts *Prompter) *Responder {
	return &Responder{client: client, store: store, prompts: prompts}
}

func (r *Responder) stop(flow, step string, err error) (bool, error) {
	logger.Log.Warn("response flow stopped", zap.String("flow", flow), zap.String("step", step), zap.Error(err))
	return false, nil
}

// RevealOwnSecret asks the local player to reveal one of their hidden secrets.
func (r *Responder) RevealOwnSecret(ctx context.Context, reason string) (bool, error) {
	local := r.store.LocalID()
	secrets, err := filteredSecrets(ctx, r.client, r.store, local, false)
	if err != nil {
		return r.stop("reveal-secret", "fetch secrets", err)
	}
	if len(secrets) == 0 {
		logger.Log.Info("no hidden secret left to reveal")
		return false, nil
	}

	secret, err := r.prompts.ChooseSecret(ctx, "Choose one of your secrets to reveal", secrets)
	if err != nil {
		return r.stop("reveal-secret", "choose secret", err)
	}
	if err := r.client.RevealSecret(ctx, r.store.SessionID(), command.SecretReveal{
		PlayerID: local,
		SecretID: secret,
		Reason:   reason,
	}); err != nil {
		return false, fmt.Errorf("reveal secret: %w", err)
	}
	return true, nil
}

func (r *Responder) ownHand(ctx context.Context) ([]model.Card, error) {
	cards, err := r.client.PlayerCards(ctx, r.store.SessionID(), r.store.LocalID())
	if err != nil {
		return nil, err
	}
	r.store.SetHand(cards)
	return cards, nil
}

// GiveTradeCard answers a card trade in which the local player was elected.
func (r *Responder) GiveTradeCard(ctx context.Context, initiatorID string) (bool, error) {
	hand, err := r.ownHand(ctx)
	if err != nil {
		return r.stop("card-trade", "fetch hand", err)
	}
	if len(hand) == 0 {
		logger.Log.Info("empty hand, nothing to trade")
		return false, nil
	}

	title := fmt.Sprintf("Choose a card to give to %s", r.store.DisplayName(initiatorID))
	card, err := r.prompts.ChooseCard(ctx, title, hand)
	if err != nil {
		return r.stop("card-trade", "choose card", err)
	}
	if err := r.client.ResolveTrade(ctx, r.store.SessionID(), command.TradeResolution{
		PlayerID: r.store.LocalID(),
		CardID:   card,
	}); err != nil {
		return false, fmt.Errorf("resolve trade: %w", err)
	}
	return true, nil
}

// PassCard hands one card to the neighbour in direction.
func (r *Responder) PassCard(ctx context.Context, direction model.Direction) (bool, error) {
	hand, err := r.ownHand(ctx)
	if err != nil {
		return r.stop("passing", "fetch hand", err)
	}
	if len(hand) == 0 {
		logger.Log.Info("empty hand, nothing to pass")
		return false, nil
	}

	card, err := r.prompts.ChooseCard(ctx, fmt.Sprintf("Choose a card to pass %s", direction), hand)
	if err != nil {
		return r.stop("passing", "choose card", err)
	}
	if err := r.client.PassCard(ctx, r.store.SessionID(), command.CardPass{
		PlayerID: r.store.LocalID(),
		CardID:   card,
	}); err != nil {
		return false, fmt.Errorf("pass card: %w", err)
	}
	return true, nil
}

// CastVote votes for the player the local player suspects.
func (r *Responder) CastVote(ctx context.Context) (bool, error) {
	target, err := r.prompts.ChoosePlayer(ctx, "Vote for the player you suspect", r.store.OtherPlayers())
	if err != nil {
		return r.stop("voting", "choose player", err)
	}
	if err := r.client.CastVote(ctx, r.store.SessionID(), command.Vote{
		PlayerID:     r.store.LocalID(),
		TargetPlayer: target,
	}); err != nil {
		return false, fmt.Errorf("cast vote: %w", err)
	}
	return true, nil
}
