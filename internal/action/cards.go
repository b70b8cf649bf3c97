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

// Event card codes.
const (
	CodeEarlyTrain      = "E_ETP"
	CodeDelayEscape     = "E_DME"
	CodePointSuspicions = "E_PYS"
	CodeCardsOffTable   = "E_COT"
	CodeCardTrade       = "E_CT"
	CodeLookIntoAshes   = "E_LIA"
	CodeExpose          = "E_EXP"
	CodeOneMore         = "E_ATWOM"
	CodeAnotherVictim   = "E_AV"
	CodeDeadCardFolly   = "E_DCF"
)

// ReturnsCard reports whether a successful play of code hands a card back.
func ReturnsCard(code string) bool {
	return code == CodeLookIntoAshes
}

type cardFlow func(ctx context.Context, card model.Card) (*command.PlayResult, error)

// CardActions runs the step sequence of each event card.
//
// A nil result with a nil error means the flow stopped before sending a
// command: nothing to choose from, a failed lookup or a cancelled prompt.
type CardActions struct {
	client   command.Client
	store    *state.Store
	prompts  *Prompter
	poolSize int
	flows    map[string]cardFlow
}

func NewCardActions(client command.Client, store *state.Store, prompts *Prompter, poolSize int) *CardActions {
	a := &CardActions{client: client, store: store, prompts: prompts, poolSize: poolSize}
	a.flows = map[string]cardFlow{
		CodeEarlyTrain:      a.direct,
		CodeDelayEscape:     a.direct,
		CodePointSuspicions: a.direct,
		CodeCardsOffTable:   a.singleTarget("Choose a player to discard their Not So Fast cards"),
		CodeCardTrade:       a.singleTarget("Choose a player to trade a card with"),
		CodeLookIntoAshes:   a.cardFromPool,
		CodeExpose:          a.conditionalSecret(false),
		CodeOneMore:         a.stealAndGive,
		CodeAnotherVictim:   a.setDependent,
		CodeDeadCardFolly:   a.directional,
	}
	return a
}

// Supports reports whether code has a known flow.
func (a *CardActions) Supports(code string) bool {
	_, ok := a.flows[code]
	return ok
}

// Play runs the flow for card.Name. Errors from the final command and
// unknown codes are returned; everything else ends the flow with a nil result.
func (a *CardActions) Play(ctx context.Context, card model.Card) (*command.PlayResult, error) {
	flow, ok := a.flows[card.Name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", appErr.ErrUnknownCard, card.Name)
	}
	return flow(ctx, card)
}

func (a *CardActions) send(ctx context.Context, card model.Card, cmd command.EventCommand) (*command.PlayResult, error) {
	cmd.PlayerID = a.store.LocalID()
	cmd.Event = card.ID
	res, err := a.client.PlayEvent(ctx, a.store.SessionID(), cmd)
	if err != nil {
		return nil, fmt.Errorf("play %s: %w", card.Name, err)
	}
	return res, nil
}

func (a *CardActions) abort(card model.Card, step string, err error) (*command.PlayResult, error) {
	logger.Log.Warn("card action stopped",
		zap.String("card", card.Name),
		zap.String("step", step),
		zap.Error(err),
	)
	return nil, nil
}

func (a *CardActions) direct(ctx context.Context, card model.Card) (*command.PlayResult, error) {
	return a.send(ctx, card, command.EventCommand{})
}

func (a *CardActions) singleTarget(title string) cardFlow {
	return func(ctx context.Context, card model.Card) (*command.PlayResult, error) {
		target, err := a.prompts.ChoosePlayer(ctx, title, a.store.OtherPlayers())
		if err != nil {
			return a.abort(card, "choose player", err)
		}
		return a.send(ctx, card, command.EventCommand{TargetPlayer: target})
	}
}

func (a *CardActions) cardFromPool(ctx context.Context, card model.Card) (*command.PlayResult, error) {
	pool, err := a.client.DiscardTop(ctx, a.store.SessionID(), a.poolSize)
	if err != nil {
		return a.abort(card, "fetch discard pool", err)
	}
	if len(pool) == 0 {
		logger.Log.Info("discard pool empty", zap.String("card", card.Name))
		return nil, nil
	}

	chosen, err := a.prompts.ChooseCard(ctx, "Choose a card to take from the discard pile", pool)
	if err != nil {
		return a.abort(card, "choose card", err)
	}
	return a.send(ctx, card, command.EventCommand{CardID: chosen})
}

// secretsOf fetches owner's secrets with the given revealed flag.
func (a *CardActions) secretsOf(ctx context.Context, ownerID string, revealed bool) ([]model.Secret, error) {
	return filteredSecrets(ctx, a.client, a.store, ownerID, revealed)
}

func (a *CardActions) conditionalSecret(revealed bool) cardFlow {
	return func(ctx context.Context, card model.Card) (*command.PlayResult, error) {
		target, err := a.prompts.ChoosePlayer(ctx, "Choose a player", a.store.OtherPlayers())
		if err != nil {
			return a.abort(card, "choose player", err)
		}

		secrets, err := a.secretsOf(ctx, target, revealed)
		if err != nil {
			return a.abort(card, "fetch secrets", err)
		}
		if len(secrets) == 0 {
			logger.Log.Info("no eligible secrets", zap.String("card", card.Name), zap.String("target", target))
			return nil, nil
		}

		secret, err := a.prompts.ChooseSecret(ctx, "Choose a secret", secrets)
		if err != nil {
			return a.abort(card, "choose secret", err)
		}
		return a.send(ctx, card, command.EventCommand{TargetPlayer: target, SecretID: secret})
	}
}

func (a *CardActions) stealAndGive(ctx context.Context, card model.Card) (*command.PlayResult, error) {
	owner, err := a.prompts.ChoosePlayer(ctx, "Choose a player to take a revealed secret from", a.store.OtherPlayers())
	if err != nil {
		return a.abort(card, "choose owner", err)
	}

	secrets, err := a.secretsOf(ctx, owner, true)
	if err != nil {
		return a.abort(card, "fetch secrets", err)
	}
	if len(secrets) == 0 {
		logger.Log.Info("no revealed secrets", zap.String("card", card.Name), zap.String("owner", owner))
		return nil, nil
	}

	secret, err := a.prompts.ChooseSecret(ctx, "Choose the secret to hand over", secrets)
	if err != nil {
		return a.abort(card, "choose secret", err)
	}

	recipient, err := a.prompts.ChoosePlayer(ctx, "Choose who receives the secret", a.store.Players())
	if err != nil {
		return a.abort(card, "choose recipient", err)
	}
	return a.send(ctx, card, command.EventCommand{TargetPlayer: recipient, SecretID: secret})
}

func (a *CardActions) setDependent(ctx context.Context, card model.Card) (*command.PlayResult, error) {
	all, err := a.client.Sets(ctx, a.store.SessionID())
	if err != nil {
		return a.abort(card, "fetch sets", err)
	}
	sets := make([]model.Set, 0, len(all))
	for _, s := range all {
		if s.OwnerID != a.store.LocalID() {
			sets = append(sets, s)
		}
	}
	if len(sets) == 0 {
		logger.Log.Info("no sets to take", zap.String("card", card.Name))
		return nil, nil
	}

	setID, err := a.prompts.ChooseSet(ctx, "Choose a set to take", sets)
	if err != nil {
		return a.abort(card, "choose set", err)
	}
	var chosen model.Set
	for _, s := range sets {
		if s.ID == setID {
			chosen = s
			break
		}
	}

	target, err := a.prompts.ChoosePlayer(ctx, "Choose a player to use the set on", a.store.OtherPlayers())
	if err != nil {
		return a.abort(card, "choose player", err)
	}
	cmd := command.EventCommand{SetID: setID, TargetPlayer: target}

	class, ok := EffectOf(chosen.Type)
	if ok && class != EffectChoosePlayer {
		secrets, err := a.secretsOf(ctx, target, class.wantRevealed())
		if err != nil {
			return a.abort(card, "fetch secrets", err)
		}
		if len(secrets) == 0 {
			logger.Log.Info("no eligible secrets", zap.String("card", card.Name), zap.String("target", target))
			return nil, nil
		}
		secret, err := a.prompts.ChooseSecret(ctx, "Choose a secret", secrets)
		if err != nil {
			return a.abort(card, "choose secret", err)
		}
		cmd.SecretID = secret
	}
	return a.send(ctx, card, cmd)
}

func (a *CardActions) directional(ctx context.Context, card model.Card) (*command.PlayResult, error) {
	neighbors, err := a.client.Neighbors(ctx, a.store.SessionID(), a.store.LocalID())
	if err != nil {
		return a.abort(card, "fetch neighbors", err)
	}

	dir, err := a.prompts.ChooseDirection(ctx, "Choose the direction to pass cards", neighbors)
	if err != nil {
		return a.abort(card, "choose direction", err)
	}
	return a.send(ctx, card, command.EventCommand{Direction: dir})
}

func filteredSecrets(ctx context.Context, client command.Client, store *state.Store, ownerID string, revealed bool) ([]model.Secret, error) {
	all, err := client.PlayerSecrets(ctx, store.SessionID(), ownerID)
	if err != nil {
		return nil, err
	}
	store.SetSecrets(ownerID, all)

	out := make([]model.Secret, 0, len(all))
	for _, s := range all {
		if s.Revealed == revealed {
			out = append(out, s)
		}
	}
	return out, nil
}
