package action

import (
	"context"
	"fmt"

	"sleuth-client/internal/command"
	"sleuth-client/internal/model"
	"sleuth-client/internal/state"
	appErr "sleuth-client/pkg/errors"
	"sleuth-client/pkg/logger"

	"go.uber.org/zap"
)

// DetectiveActions plays detective cards.
type DetectiveActions struct {
	client  command.Client
	store   *state.Store
	prompts *Prompter
}

func NewDetectiveActions(client command.Client, store *state.Store, prompts *Prompter) *DetectiveActions {
	return &DetectiveActions{client: client, store: store, prompts: prompts}
}

func cardIDs(cards []model.Card) []string {
	ids := make([]string, 0, len(cards))
	for _, c := range cards {
		ids = append(ids, c.ID)
	}
	return ids
}

// PlaySet verifies cards as a set and runs the effect the backend assigns to
// it. An invalid set or an unknown effect tag is an error.
func (d *DetectiveActions) PlaySet(ctx context.Context, cards []model.Card) (*command.PlayResult, error) {
	ids := cardIDs(cards)
	sessionID := d.store.SessionID()

	tag, err := d.client.VerifySet(ctx, sessionID, ids)
	if err != nil {
		return nil, fmt.Errorf("verify set: %w", err)
	}
	if tag == "" {
		return nil, appErr.ErrInvalidSet
	}
	class, ok := EffectOf(tag)
	if !ok {
		return nil, fmt.Errorf("%w: %q", appErr.ErrUnknownEffect, tag)
	}

	cmd := command.DetectiveCommand{PlayerID: d.store.LocalID(), Cards: ids}
	switch class {
	case EffectChoosePlayer:
		target, err := d.prompts.ChoosePlayer(ctx, "Choose a player to reveal one of their secrets", d.store.OtherPlayers())
		if err != nil {
			return d.abort(tag, "choose player", err)
		}
		cmd.TargetPlayer = target
	case EffectRevealSecret, EffectHideSecret:
		target, secret, ok := d.chooseOtherSecret(ctx, tag, class)
		if !ok {
			return nil, nil
		}
		cmd.TargetPlayer = target
		cmd.SecretID = secret
	}

	res, err := d.client.PlayDetective(ctx, sessionID, cmd)
	if err != nil {
		return nil, fmt.Errorf("play set %s: %w", tag, err)
	}
	return res, nil
}

func (d *DetectiveActions) chooseOtherSecret(ctx context.Context, tag string, class EffectClass) (string, string, bool) {
	title := "Choose a player whose secret to reveal"
	if class == EffectHideSecret {
		title = "Choose a player whose secret to hide"
	}
	target, err := d.prompts.ChoosePlayer(ctx, title, d.store.OtherPlayers())
	if err != nil {
		d.abort(tag, "choose player", err)
		return "", "", false
	}

	secrets, err := filteredSecrets(ctx, d.client, d.store, target, class.wantRevealed())
	if err != nil {
		d.abort(tag, "fetch secrets", err)
		return "", "", false
	}
	if len(secrets) == 0 {
		logger.Log.Info("no eligible secrets", zap.String("set", tag), zap.String("target", target))
		return "", "", false
	}

	secret, err := d.prompts.ChooseSecret(ctx, "Choose a secret", secrets)
	if err != nil {
		d.abort(tag, "choose secret", err)
		return "", "", false
	}
	return target, secret, true
}

// AddToSet plays a single detective card onto one of the local player's sets.
func (d *DetectiveActions) AddToSet(ctx context.Context, card model.Card) (*command.PlayResult, error) {
	sets, err := d.client.PlayerSets(ctx, d.store.SessionID(), d.store.LocalID())
	if err != nil {
		return d.abort(card.Name, "fetch own sets", err)
	}
	if len(sets) == 0 {
		logger.Log.Info("no set to extend", zap.String("card", card.Name))
		return nil, nil
	}

	setID, err := d.prompts.ChooseSet(ctx, "Choose a set to add the card to", sets)
	if err != nil {
		return d.abort(card.Name, "choose set", err)
	}

	res, err := d.client.PlayDetective(ctx, d.store.SessionID(), command.DetectiveCommand{
		PlayerID: d.store.LocalID(),
		Cards:    []string{card.ID},
		SetID:    setID,
	})
	if err != nil {
		return nil, fmt.Errorf("add %s to set: %w", card.Name, err)
	}
	return res, nil
}

func (d *DetectiveActions) abort(what, step string, err error) (*command.PlayResult, error) {
	logger.Log.Warn("detective action stopped", zap.String("set", what), zap.String("step", step), zap.Error(err))
	return nil, nil
}
