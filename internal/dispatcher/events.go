package dispatcher

import "sleuth-client/internal/model"

// Server event types handled for a session.
const (
	EventTurnChange                  = "turnChange"
	EventUpdateDraft                 = "updateDraft"
	EventPlayerDrawCards             = "playerDrawCards"
	EventPlaySet                     = "playSet"
	EventPlayEvent                   = "playEvent"
	EventPlayerCardDiscarded         = "playerCardDiscarded"
	EventTargetPlayerElection        = "targetPlayerElection"
	EventPassingPhaseStarted         = "passingPhaseStarted"
	EventPassingPhaseExecuted        = "passingPhaseExecuted"
	EventVotingPhaseStarted          = "votingPhaseStarted"
	EventVotingPhaseExecuted         = "votingPhaseExecuted"
	EventPlayerHasVoted              = "playerHasVoted"
	EventSecretRevealed              = "secretRevealed"
	EventCardTradeResolved           = "cardTradeResolved"
	EventEndTimer                    = "endTimer"
	EventWaitingForCancellationEvent = "waitingForCancellationEvent"
	EventWaitingForCancellationSet   = "waitingForCancellationSet"
	EventWaitFinished                = "waitFinished"
	EventCancellationStopped         = "cancellationStopped"
	EventActionRequiredChooseSecret  = "actionRequiredChooseSecret"
	EventNotSoFastPlayed             = "notSoFastPlayed"
	EventSfpPending                  = "sfpPending"
	EventGameEnd                     = "gameEnd"
	EventDisconnect                  = "disconnect"
)

// Events is the full vocabulary the dispatcher subscribes to.
var Events = []string{
	EventTurnChange,
	EventUpdateDraft,
	EventPlayerDrawCards,
	EventPlaySet,
	EventPlayEvent,
	EventPlayerCardDiscarded,
	EventTargetPlayerElection,
	EventPassingPhaseStarted,
	EventPassingPhaseExecuted,
	EventVotingPhaseStarted,
	EventVotingPhaseExecuted,
	EventPlayerHasVoted,
	EventSecretRevealed,
	EventCardTradeResolved,
	EventEndTimer,
	EventWaitingForCancellationEvent,
	EventWaitingForCancellationSet,
	EventWaitFinished,
	EventCancellationStopped,
	EventActionRequiredChooseSecret,
	EventNotSoFastPlayed,
	EventSfpPending,
	EventGameEnd,
	EventDisconnect,
}

// payload carries the union of fields used across event types.
type payload struct {
	PlayerID      string          `json:"player_id"`
	TargetPlayer  string          `json:"target_player"`
	Count         int             `json:"count"`
	Cards         []model.Card    `json:"cards"`
	Card          *model.Card     `json:"card"`
	Set           *model.Set      `json:"set"`
	Secret        *model.Secret   `json:"secret"`
	Direction     model.Direction `json:"direction"`
	RemainingTime *int            `json:"remaining_time"`
	MostVoted     string          `json:"most_voted"`
	Reason        string          `json:"reason"`
}
