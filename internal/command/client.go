package command

//go:generate mockgen -source=client.go -destination=mock/client_mock.go -package=mock

import (
	"context"

	"sleuth-client/internal/model"
)

// TurnInfo is the backend's view of the current turn.
type TurnInfo struct {
	CurrentTurn   string      `json:"current_turn"`
	TurnState     model.Phase `json:"turn_state"`
	RemainingTime int         `json:"remaining_time"`
	TimerPaused   bool        `json:"timer_paused"`
	TargetPlayer  string      `json:"target_player,omitempty"`
}

// EventCommand plays one event card. Unused selections are omitted on the wire.
type EventCommand struct {
	PlayerID     string          `json:"player_id"`
	Event        string          `json:"event"`
	TargetPlayer string          `json:"target_player,omitempty"`
	SecretID     string          `json:"secret_id,omitempty"`
	SetID        string          `json:"set_id,omitempty"`
	Direction    model.Direction `json:"direction,omitempty"`
	CardID       string          `json:"card_id,omitempty"`
}

// DetectiveCommand plays detective cards as a new set or onto an existing one.
type DetectiveCommand struct {
	PlayerID     string   `json:"player_id"`
	Cards        []string `json:"cards"`
	TargetPlayer string   `json:"target_player,omitempty"`
	SecretID     string   `json:"secret_id,omitempty"`
	SetID        string   `json:"set_id,omitempty"`
}

type PlayResult struct {
	OK   bool        `json:"ok"`
	Card *model.Card `json:"card,omitempty"`
	Set  *model.Set  `json:"set,omitempty"`
}

type TradeResolution struct {
	PlayerID string `json:"player_id"`
	CardID   string `json:"card_id"`
}

type SecretReveal struct {
	PlayerID string `json:"player_id"`
	SecretID string `json:"secret_id"`
	Reason   string `json:"reason,omitempty"`
}

type CardPass struct {
	PlayerID string `json:"player_id"`
	CardID   string `json:"card_id"`
}

type Vote struct {
	PlayerID     string `json:"player_id"`
	TargetPlayer string `json:"target_player"`
}

// Client is the request/response boundary to the game backend.
// Failures are returned as *errors.CommandError when the backend answered.
type Client interface {
	TurnInfo(ctx context.Context, sessionID string) (TurnInfo, error)
	Players(ctx context.Context, sessionID string) ([]model.Player, error)
	PlayerCards(ctx context.Context, sessionID, playerID string) ([]model.Card, error)
	PlayerSecrets(ctx context.Context, sessionID, playerID string) ([]model.Secret, error)
	PlayerSets(ctx context.Context, sessionID, playerID string) ([]model.Set, error)
	Sets(ctx context.Context, sessionID string) ([]model.Set, error)
	DiscardTop(ctx context.Context, sessionID string, count int) ([]model.Card, error)
	Neighbors(ctx context.Context, sessionID, playerID string) (model.Neighbors, error)

	PlayEvent(ctx context.Context, sessionID string, cmd EventCommand) (*PlayResult, error)
	PlayDetective(ctx context.Context, sessionID string, cmd DetectiveCommand) (*PlayResult, error)
	// VerifySet returns the effect class tag, or "" when the cards are not a set.
	VerifySet(ctx context.Context, sessionID string, cardIDs []string) (string, error)
	ResolveTrade(ctx context.Context, sessionID string, res TradeResolution) error
	RevealSecret(ctx context.Context, sessionID string, rev SecretReveal) error
	PassCard(ctx context.Context, sessionID string, pass CardPass) error
	CastVote(ctx context.Context, sessionID string, vote Vote) error
}
