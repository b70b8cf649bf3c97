package action_test

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"sleuth-client/internal/action"
	"sleuth-client/internal/command"
	"sleuth-client/internal/command/mock"
	"sleuth-client/internal/model"
	"sleuth-client/internal/prompt"
	"sleuth-client/internal/state"
	appErr "sleuth-client/pkg/errors"

	"go.uber.org/mock/gomock"
)

// scriptedGateway answers prompts from a fixed list and records them.
type scriptedGateway struct {
	answers []string
	prompts []prompt.Prompt
}

func (g *scriptedGateway) Request(ctx context.Context, p prompt.Prompt) (string, error) {
	g.prompts = append(g.prompts, p)
	if len(g.answers) == 0 {
		return "", appErr.ErrPromptCancelled
	}
	answer := g.answers[0]
	g.answers = g.answers[1:]
	return answer, nil
}

type fixture struct {
	client     *mock.MockClient
	store      *state.Store
	gateway    *scriptedGateway
	cards      *action.CardActions
	detectives *action.DetectiveActions
	responder  *action.Responder
}

func newFixture(t *testing.T, answers ...string) *fixture {
	t.Helper()
	ctrl := gomock.NewController(t)
	client := mock.NewMockClient(ctrl)
	store := state.NewStore("g1", "p1")
	store.AddPlayers(
		model.Player{ID: "p1", DisplayName: "Ana"},
		model.Player{ID: "p2", DisplayName: "Bo"},
		model.Player{ID: "p3", DisplayName: "Cy"},
	)
	gw := &scriptedGateway{answers: answers}
	prompts := action.NewPrompter(gw, store)
	return &fixture{
		client:     client,
		store:      store,
		gateway:    gw,
		cards:      action.NewCardActions(client, store, prompts, 5),
		detectives: action.NewDetectiveActions(client, store, prompts),
		responder:  action.NewResponder(client, store, prompts),
	}
}

func card(id, code string, kind model.CardType) model.Card {
	return model.Card{ID: id, Name: code, Type: kind}
}

func itemIDs(p prompt.Prompt) []string {
	ids := make([]string, 0, len(p.Items))
	for _, it := range p.Items {
		ids = append(ids, it.ID)
	}
	return ids
}

func TestLookIntoAshesEmptyPoolSendsNothing(t *testing.T) {
	f := newFixture(t)
	f.client.EXPECT().DiscardTop(gomock.Any(), "g1", 5).Return(nil, nil)

	res, err := f.cards.Play(context.Background(), card("c1", action.CodeLookIntoAshes, model.CardEvent))
	if err != nil || res != nil {
		t.Fatalf("expected nil result and error, got %+v, %v", res, err)
	}
	if len(f.gateway.prompts) != 0 {
		t.Fatalf("expected no prompt, got %d", len(f.gateway.prompts))
	}
}

func TestLookIntoAshesTakesChosenCard(t *testing.T) {
	f := newFixture(t, "c8")
	taken := model.Card{ID: "c8", Name: "E_COT", Type: model.CardEvent}
	f.client.EXPECT().DiscardTop(gomock.Any(), "g1", 5).Return([]model.Card{{ID: "c7", Name: "E_CT"}, taken}, nil)
	f.client.EXPECT().PlayEvent(gomock.Any(), "g1", command.EventCommand{
		PlayerID: "p1", Event: "c1", CardID: "c8",
	}).Return(&command.PlayResult{OK: true, Card: &taken}, nil)

	res, err := f.cards.Play(context.Background(), card("c1", action.CodeLookIntoAshes, model.CardEvent))
	if err != nil {
		t.Fatalf("play: %v", err)
	}
	if res == nil || res.Card == nil || res.Card.ID != "c8" {
		t.Fatalf("expected returned card c8, got %+v", res)
	}
	if f.gateway.prompts[0].ItemType != prompt.ItemCard {
		t.Fatalf("expected a card prompt, got %s", f.gateway.prompts[0].ItemType)
	}
}

func TestDiscardFetchFailureIsSwallowed(t *testing.T) {
	f := newFixture(t)
	f.client.EXPECT().DiscardTop(gomock.Any(), "g1", 5).Return(nil, errors.New("timeout"))

	res, err := f.cards.Play(context.Background(), card("c1", action.CodeLookIntoAshes, model.CardEvent))
	if err != nil || res != nil {
		t.Fatalf("expected silent abort, got %+v, %v", res, err)
	}
}

func TestDirectCardSendsImmediately(t *testing.T) {
	f := newFixture(t)
	f.client.EXPECT().PlayEvent(gomock.Any(), "g1", command.EventCommand{PlayerID: "p1", Event: "c2"}).
		Return(&command.PlayResult{OK: true}, nil)

	if _, err := f.cards.Play(context.Background(), card("c2", action.CodeEarlyTrain, model.CardEvent)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if len(f.gateway.prompts) != 0 {
		t.Fatalf("direct cards must not prompt")
	}
}

func TestSingleTargetOffersOtherPlayers(t *testing.T) {
	f := newFixture(t, "p3")
	f.client.EXPECT().PlayEvent(gomock.Any(), "g1", command.EventCommand{PlayerID: "p1", Event: "c3", TargetPlayer: "p3"}).
		Return(&command.PlayResult{OK: true}, nil)

	if _, err := f.cards.Play(context.Background(), card("c3", action.CodeCardsOffTable, model.CardEvent)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if got := strings.Join(itemIDs(f.gateway.prompts[0]), ","); got != "p2,p3" {
		t.Fatalf("expected other players only, got %s", got)
	}
}

func TestConditionalSecretWithoutCandidatesAborts(t *testing.T) {
	f := newFixture(t, "p2")
	f.client.EXPECT().PlayerSecrets(gomock.Any(), "g1", "p2").Return([]model.Secret{
		{ID: "s1", OwnerID: "p2", Revealed: true},
	}, nil)

	res, err := f.cards.Play(context.Background(), card("c4", action.CodeExpose, model.CardEvent))
	if err != nil || res != nil {
		t.Fatalf("expected nil result, got %+v, %v", res, err)
	}
	if len(f.gateway.prompts) != 1 {
		t.Fatalf("expected only the player prompt, got %d", len(f.gateway.prompts))
	}
}

func TestStealAndGiveOffersEveryoneAsRecipient(t *testing.T) {
	f := newFixture(t, "p2", "s2", "p1")
	f.client.EXPECT().PlayerSecrets(gomock.Any(), "g1", "p2").Return([]model.Secret{
		{ID: "s1", OwnerID: "p2", Revealed: false},
		{ID: "s2", OwnerID: "p2", Name: "Murderer", Revealed: true},
	}, nil)
	f.client.EXPECT().PlayEvent(gomock.Any(), "g1", command.EventCommand{
		PlayerID: "p1", Event: "c5", TargetPlayer: "p1", SecretID: "s2",
	}).Return(&command.PlayResult{OK: true}, nil)

	if _, err := f.cards.Play(context.Background(), card("c5", action.CodeOneMore, model.CardEvent)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if got := strings.Join(itemIDs(f.gateway.prompts[1]), ","); got != "s2" {
		t.Fatalf("expected revealed secrets only, got %s", got)
	}
	if got := strings.Join(itemIDs(f.gateway.prompts[2]), ","); got != "p1,p2,p3" {
		t.Fatalf("expected all players as recipients, got %s", got)
	}
}

func TestSetDependentHideSetNeedsRevealedSecret(t *testing.T) {
	f := newFixture(t, "set2", "p3", "s9")
	f.client.EXPECT().Sets(gomock.Any(), "g1").Return([]model.Set{
		{ID: "set1", Type: "HP", OwnerID: "p1"},
		{ID: "set2", Type: "PP", OwnerID: "p2"},
	}, nil)
	f.client.EXPECT().PlayerSecrets(gomock.Any(), "g1", "p3").Return([]model.Secret{
		{ID: "s8", OwnerID: "p3"},
		{ID: "s9", OwnerID: "p3", Revealed: true},
	}, nil)
	f.client.EXPECT().PlayEvent(gomock.Any(), "g1", command.EventCommand{
		PlayerID: "p1", Event: "c6", SetID: "set2", TargetPlayer: "p3", SecretID: "s9",
	}).Return(&command.PlayResult{OK: true}, nil)

	if _, err := f.cards.Play(context.Background(), card("c6", action.CodeAnotherVictim, model.CardEvent)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if got := strings.Join(itemIDs(f.gateway.prompts[0]), ","); got != "set2" {
		t.Fatalf("own sets must not be offered, got %s", got)
	}
}

func TestSetDependentPlayerSetSkipsSecret(t *testing.T) {
	f := newFixture(t, "set3", "p2")
	f.client.EXPECT().Sets(gomock.Any(), "g1").Return([]model.Set{{ID: "set3", Type: "TB", OwnerID: "p3"}}, nil)
	f.client.EXPECT().PlayEvent(gomock.Any(), "g1", command.EventCommand{
		PlayerID: "p1", Event: "c6", SetID: "set3", TargetPlayer: "p2",
	}).Return(&command.PlayResult{OK: true}, nil)

	if _, err := f.cards.Play(context.Background(), card("c6", action.CodeAnotherVictim, model.CardEvent)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if len(f.gateway.prompts) != 2 {
		t.Fatalf("expected set and player prompts, got %d", len(f.gateway.prompts))
	}
}

func TestDirectionAutoResolvesForTwoPlayers(t *testing.T) {
	f := newFixture(t)
	bo := model.Player{ID: "p2", DisplayName: "Bo"}
	f.client.EXPECT().Neighbors(gomock.Any(), "g1", "p1").Return(model.Neighbors{Left: bo, Right: bo}, nil)
	f.client.EXPECT().PlayEvent(gomock.Any(), "g1", command.EventCommand{
		PlayerID: "p1", Event: "c7", Direction: model.DirectionRight,
	}).Return(&command.PlayResult{OK: true}, nil)

	if _, err := f.cards.Play(context.Background(), card("c7", action.CodeDeadCardFolly, model.CardEvent)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if len(f.gateway.prompts) != 0 {
		t.Fatalf("expected zero prompts, got %d", len(f.gateway.prompts))
	}
}

func TestDirectionPromptsWithDistinctNeighbors(t *testing.T) {
	f := newFixture(t, "left")
	f.client.EXPECT().Neighbors(gomock.Any(), "g1", "p1").Return(model.Neighbors{
		Left:  model.Player{ID: "p3", DisplayName: "Cy"},
		Right: model.Player{ID: "p2", DisplayName: "Bo"},
	}, nil)
	f.client.EXPECT().PlayEvent(gomock.Any(), "g1", command.EventCommand{
		PlayerID: "p1", Event: "c7", Direction: model.DirectionLeft,
	}).Return(&command.PlayResult{OK: true}, nil)

	if _, err := f.cards.Play(context.Background(), card("c7", action.CodeDeadCardFolly, model.CardEvent)); err != nil {
		t.Fatalf("play: %v", err)
	}
	if f.gateway.prompts[0].ItemType != prompt.ItemDirection {
		t.Fatalf("expected a direction prompt")
	}
}

func TestUnknownCardCode(t *testing.T) {
	f := newFixture(t)
	_, err := f.cards.Play(context.Background(), card("c0", "E_NOPE", model.CardEvent))
	if !errors.Is(err, appErr.ErrUnknownCard) {
		t.Fatalf("expected ErrUnknownCard, got %v", err)
	}
}

func TestCommandRejectionPropagates(t *testing.T) {
	f := newFixture(t)
	f.client.EXPECT().PlayEvent(gomock.Any(), "g1", gomock.Any()).
		Return(nil, &appErr.CommandError{Status: http.StatusConflict, Detail: "limit"})

	_, err := f.cards.Play(context.Background(), card("c2", action.CodeDelayEscape, model.CardEvent))
	var cmdErr *appErr.CommandError
	if !errors.As(err, &cmdErr) || cmdErr.Status != http.StatusConflict {
		t.Fatalf("expected conflict CommandError, got %v", err)
	}
}

func TestPlaySetRevealEffectPromptsPlayerThenSecret(t *testing.T) {
	f := newFixture(t, "p2", "s5")
	f.client.EXPECT().VerifySet(gomock.Any(), "g1", []string{"d1", "d2"}).Return("MM", nil)
	f.client.EXPECT().PlayerSecrets(gomock.Any(), "g1", "p2").Return([]model.Secret{
		{ID: "s4", OwnerID: "p2", Revealed: true},
		{ID: "s5", OwnerID: "p2"},
	}, nil)
	f.client.EXPECT().PlayDetective(gomock.Any(), "g1", command.DetectiveCommand{
		PlayerID: "p1", Cards: []string{"d1", "d2"}, TargetPlayer: "p2", SecretID: "s5",
	}).Return(&command.PlayResult{OK: true}, nil)

	cards := []model.Card{card("d1", "D_MM", model.CardDetective), card("d2", "D_MM", model.CardDetective)}
	if _, err := f.detectives.PlaySet(context.Background(), cards); err != nil {
		t.Fatalf("play set: %v", err)
	}
	if len(f.gateway.prompts) != 2 {
		t.Fatalf("expected exactly two prompts, got %d", len(f.gateway.prompts))
	}
	if f.gateway.prompts[0].ItemType != prompt.ItemPlayer || f.gateway.prompts[1].ItemType != prompt.ItemSecret {
		t.Fatalf("expected player then secret prompts")
	}
	if got := strings.Join(itemIDs(f.gateway.prompts[1]), ","); got != "s5" {
		t.Fatalf("reveal effect must offer hidden secrets only, got %s", got)
	}
	if label := f.gateway.prompts[1].Items[0].Label; label != model.SecretBackFace {
		t.Fatalf("hidden secret of another player must show its back, got %q", label)
	}
}

func TestPlaySetPlayerEffectSendsTargetOnly(t *testing.T) {
	f := newFixture(t, "p2")
	f.client.EXPECT().VerifySet(gomock.Any(), "g1", []string{"d1", "d2"}).Return("TB", nil)
	f.client.EXPECT().PlayDetective(gomock.Any(), "g1", command.DetectiveCommand{
		PlayerID: "p1", Cards: []string{"d1", "d2"}, TargetPlayer: "p2",
	}).Return(&command.PlayResult{OK: true}, nil)

	cards := []model.Card{card("d1", "D_TB", model.CardDetective), card("d2", "D_TUB", model.CardDetective)}
	if _, err := f.detectives.PlaySet(context.Background(), cards); err != nil {
		t.Fatalf("play set: %v", err)
	}
	if len(f.gateway.prompts) != 1 {
		t.Fatalf("expected a single prompt, got %d", len(f.gateway.prompts))
	}
}

func TestPlaySetInvalid(t *testing.T) {
	f := newFixture(t)
	f.client.EXPECT().VerifySet(gomock.Any(), "g1", []string{"d1", "d2"}).Return("", nil)

	cards := []model.Card{card("d1", "D_HP", model.CardDetective), card("d2", "D_MS", model.CardDetective)}
	_, err := f.detectives.PlaySet(context.Background(), cards)
	if !errors.Is(err, appErr.ErrInvalidSet) {
		t.Fatalf("expected ErrInvalidSet, got %v", err)
	}
}

func TestPlaySetUnknownEffectNamesTag(t *testing.T) {
	f := newFixture(t)
	f.client.EXPECT().VerifySet(gomock.Any(), "g1", gomock.Any()).Return("XYZ", nil)

	_, err := f.detectives.PlaySet(context.Background(), []model.Card{card("d1", "D_X", model.CardDetective)})
	if !errors.Is(err, appErr.ErrUnknownEffect) || !strings.Contains(err.Error(), "XYZ") {
		t.Fatalf("expected unknown effect error naming XYZ, got %v", err)
	}
}

func TestAddToSetUsesOwnSets(t *testing.T) {
	f := newFixture(t, "set1")
	f.client.EXPECT().PlayerSets(gomock.Any(), "g1", "p1").Return([]model.Set{{ID: "set1", Type: "HP", OwnerID: "p1"}}, nil)
	f.client.EXPECT().PlayDetective(gomock.Any(), "g1", command.DetectiveCommand{
		PlayerID: "p1", Cards: []string{"d3"}, SetID: "set1",
	}).Return(&command.PlayResult{OK: true}, nil)

	if _, err := f.detectives.AddToSet(context.Background(), card("d3", "D_HP", model.CardDetective)); err != nil {
		t.Fatalf("add to set: %v", err)
	}
}

func TestRevealOwnSecret(t *testing.T) {
	f := newFixture(t, "s1")
	f.client.EXPECT().PlayerSecrets(gomock.Any(), "g1", "p1").Return([]model.Secret{
		{ID: "s1", OwnerID: "p1", Name: "Accomplice"},
		{ID: "s2", OwnerID: "p1", Name: "Murderer", Revealed: true},
	}, nil)
	f.client.EXPECT().RevealSecret(gomock.Any(), "g1", command.SecretReveal{PlayerID: "p1", SecretID: "s1", Reason: "sfp"}).Return(nil)

	done, err := f.responder.RevealOwnSecret(context.Background(), "sfp")
	if err != nil || !done {
		t.Fatalf("expected reveal, got %v, %v", done, err)
	}
	if label := f.gateway.prompts[0].Items[0].Label; label != "Accomplice" {
		t.Fatalf("own secrets show their face, got %q", label)
	}
}

func TestCancelledVoteIsSwallowed(t *testing.T) {
	f := newFixture(t)
	done, err := f.responder.CastVote(context.Background())
	if done || err != nil {
		t.Fatalf("expected silent stop, got %v, %v", done, err)
	}
}

func TestPassCardUsesFreshHand(t *testing.T) {
	f := newFixture(t, "c2")
	f.client.EXPECT().PlayerCards(gomock.Any(), "g1", "p1").Return([]model.Card{
		card("c1", action.CodeEarlyTrain, model.CardEvent),
		card("c2", action.CodeCardTrade, model.CardEvent),
	}, nil)
	f.client.EXPECT().PassCard(gomock.Any(), "g1", command.CardPass{PlayerID: "p1", CardID: "c2"}).Return(nil)

	done, err := f.responder.PassCard(context.Background(), model.DirectionLeft)
	if err != nil || !done {
		t.Fatalf("expected pass, got %v, %v", done, err)
	}
	if len(f.store.Hand()) != 2 {
		t.Fatalf("hand mirror must be refreshed")
	}
}
