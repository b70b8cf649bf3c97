package action

import (
	"context"
	"fmt"

	"sleuth-client/internal/model"
	"sleuth-client/internal/prompt"
	"sleuth-client/internal/state"
)

// Prompter turns domain lists into single-choice prompts.
type Prompter struct {
	gateway prompt.Gateway
	store   *state.Store
}

func NewPrompter(gateway prompt.Gateway, store *state.Store) *Prompter {
	return &Prompter{gateway: gateway, store: store}
}

func (p *Prompter) ask(ctx context.Context, title string, kind prompt.ItemType, items []prompt.Item) (string, error) {
	return p.gateway.Request(ctx, prompt.Prompt{Title: title, ItemType: kind, Items: items})
}

func (p *Prompter) ChoosePlayer(ctx context.Context, title string, players []model.Player) (string, error) {
	items := make([]prompt.Item, 0, len(players))
	for _, pl := range players {
		label := pl.DisplayName
		if label == "" {
			label = pl.ID
		}
		if pl.ID == p.store.LocalID() {
			label += " (you)"
		}
		items = append(items, prompt.Item{ID: pl.ID, Label: label})
	}
	return p.ask(ctx, title, prompt.ItemPlayer, items)
}

func (p *Prompter) ChooseCard(ctx context.Context, title string, cards []model.Card) (string, error) {
	items := make([]prompt.Item, 0, len(cards))
	for _, c := range cards {
		items = append(items, prompt.Item{ID: c.ID, Label: c.Name})
	}
	return p.ask(ctx, title, prompt.ItemCard, items)
}

func (p *Prompter) ChooseSecret(ctx context.Context, title string, secrets []model.Secret) (string, error) {
	items := make([]prompt.Item, 0, len(secrets))
	for _, s := range secrets {
		items = append(items, prompt.Item{ID: s.ID, Label: s.VisibleTo(p.store.LocalID()).Name})
	}
	return p.ask(ctx, title, prompt.ItemSecret, items)
}

func (p *Prompter) ChooseSet(ctx context.Context, title string, sets []model.Set) (string, error) {
	items := make([]prompt.Item, 0, len(sets))
	for _, s := range sets {
		items = append(items, prompt.Item{ID: s.ID, Label: fmt.Sprintf("%s (%s)", s.Type, p.store.DisplayName(s.OwnerID))})
	}
	return p.ask(ctx, title, prompt.ItemSet, items)
}

// ChooseDirection answers right without prompting when both neighbours are
// the same player.
func (p *Prompter) ChooseDirection(ctx context.Context, title string, n model.Neighbors) (model.Direction, error) {
	if n.Left.ID == n.Right.ID {
		return model.DirectionRight, nil
	}
	items := []prompt.Item{
		{ID: string(model.DirectionLeft), Label: "Left: " + nameOf(n.Left)},
		{ID: string(model.DirectionRight), Label: "Right: " + nameOf(n.Right)},
	}
	id, err := p.ask(ctx, title, prompt.ItemDirection, items)
	if err != nil {
		return "", err
	}
	return model.Direction(id), nil
}

func nameOf(pl model.Player) string {
	if pl.DisplayName != "" {
		return pl.DisplayName
	}
	return pl.ID
}
