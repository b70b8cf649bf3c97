package model

// Phase is the server-canonical stage of the active player's turn.
type Phase string

const (
	PhaseIdle             Phase = "IDLE"
	PhaseDrawingCards     Phase = "DRAWING_CARDS"
	PhaseDiscarding       Phase = "DISCARDING"
	PhaseChoosingSecret   Phase = "CHOOSING_SECRET"
	PhaseCardTradePending Phase = "CARD_TRADE_PENDING"
	PhasePassingCards     Phase = "PASSING_CARDS"
	PhaseEndTurn          Phase = "END_TURN"
)

// Waiting reports whether the phase blocks on a choice by a designated player.
func (p Phase) Waiting() bool {
	return p == PhaseChoosingSecret || p == PhaseCardTradePending
}

type CardType string

const (
	CardEvent     CardType = "EVENT"
	CardDetective CardType = "DETECTIVE"
)

type Session struct {
	ID                  string `json:"id"`
	CurrentTurnPlayerID string `json:"currentTurnPlayerId"`
	Phase               Phase  `json:"turnPhase"`
	TargetPlayerID      string `json:"targetPlayerId,omitempty"`
	RemainingTime       int    `json:"remainingTime"`
	TimerPaused         bool   `json:"timerPaused"`
}

type Player struct {
	ID          string `json:"id"`
	DisplayName string `json:"name"`
}

type Card struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Type        CardType `json:"type"`
	Description string   `json:"description,omitempty"`
}

const SecretBackFace = "BACK"

type Secret struct {
	ID       string `json:"id"`
	OwnerID  string `json:"owner_id"`
	Name     string `json:"name"`
	Revealed bool   `json:"revealed"`
}

// VisibleTo returns the face shown to viewerID. Hidden secrets of other
// players keep their id but show the back face.
func (s Secret) VisibleTo(viewerID string) Secret {
	if s.Revealed || s.OwnerID == viewerID {
		return s
	}
	return Secret{ID: s.ID, OwnerID: s.OwnerID, Name: SecretBackFace}
}

type Set struct {
	ID      string `json:"id"`
	Type    string `json:"type"`
	OwnerID string `json:"owner_id"`
}

type Neighbors struct {
	Left  Player `json:"left"`
	Right Player `json:"right"`
}

type Direction string

const (
	DirectionLeft  Direction = "left"
	DirectionRight Direction = "right"
)

// GameResult is handed to the navigator when the session ends.
type GameResult struct {
	SessionID     string                 `json:"sessionId"`
	LocalPlayerID string                 `json:"localPlayerId"`
	Payload       map[string]interface{} `json:"payload"`
}
