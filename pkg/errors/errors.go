package errors

import (
	"errors"
	"fmt"
	"net/http"
)

var (
	ErrNotYourTurn    = errors.New("not your turn")
	ErrNoSelection    = errors.New("no card selected")
	ErrMixedSelection = errors.New("selected cards cannot be played together")
	ErrActionRejected = errors.New("action was not completed")
	ErrUnknownCard    = errors.New("unknown card code")
	ErrCardNotInHand  = errors.New("card not in hand")

	ErrInvalidSet    = errors.New("invalid detective set")
	ErrUnknownEffect = errors.New("unknown set effect")

	ErrPromptCancelled = errors.New("prompt cancelled")
	ErrNoPendingPrompt = errors.New("no pending prompt")
	ErrItemNotOffered  = errors.New("item not offered by prompt")
	ErrEmptyPrompt     = errors.New("prompt has no items")

	// Turn phases that block a new action.
	ErrPhaseDrawing      = errors.New("drawing cards")
	ErrPhaseDiscarding   = errors.New("discarding")
	ErrPhaseSecret       = errors.New("secret choice pending")
	ErrPhaseTrade        = errors.New("card trade pending")
	ErrPhasePassing      = errors.New("passing cards")
	ErrPhaseEndTurn      = errors.New("turn ending")
	ErrPhaseUnknownState = errors.New("turn state unknown")

	ErrUnauthorized = errors.New("unauthorized")
)

// CommandError is a rejection reported by the game backend.
type CommandError struct {
	Status int
	Detail string
}

func (e *CommandError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("command failed with status %d", e.Status)
	}
	return fmt.Sprintf("command failed with status %d: %s", e.Status, e.Detail)
}

const genericFailure = "Something went wrong, please try again."

var messages = map[error]string{
	ErrNotYourTurn:       "It's not your turn.",
	ErrNoSelection:       "Select a card first.",
	ErrMixedSelection:    "Only detective cards can be played together.",
	ErrActionRejected:    "The action could not be completed.",
	ErrUnknownCard:       "This card cannot be played.",
	ErrCardNotInHand:     "That card is no longer in your hand.",
	ErrInvalidSet:        "Those cards do not form a valid detective set.",
	ErrPromptCancelled:   "The action was cancelled.",
	ErrNoPendingPrompt:   "There is nothing to choose right now.",
	ErrItemNotOffered:    "That option is not available.",
	ErrEmptyPrompt:       "There is nothing to choose from.",
	ErrPhaseDrawing:      "You must draw cards to finish your turn.",
	ErrPhaseDiscarding:   "You already acted this turn, discard to continue.",
	ErrPhaseSecret:       "Wait until the secret has been chosen.",
	ErrPhaseTrade:        "Wait until the card trade is resolved.",
	ErrPhasePassing:      "Pass a card before playing.",
	ErrPhaseEndTurn:      "Your turn is ending.",
	ErrPhaseUnknownState: "Your turn has not started yet.",
	ErrUnauthorized:      "You are not allowed to do that.",
}

// UserMessage converts any error into text suitable for a notification.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}

	var cmdErr *CommandError
	if errors.As(err, &cmdErr) {
		switch cmdErr.Status {
		case http.StatusConflict:
			return "Limit reached for this action."
		case http.StatusBadRequest:
			if cmdErr.Detail != "" {
				return "Invalid action: " + cmdErr.Detail
			}
			return "Invalid action."
		case http.StatusForbidden:
			return "You are not allowed to do that."
		case http.StatusNotFound:
			return "The game or card no longer exists."
		default:
			return genericFailure
		}
	}

	if errors.Is(err, ErrUnknownEffect) {
		return "Unsupported set effect: " + err.Error()
	}

	for sentinel, msg := range messages {
		if errors.Is(err, sentinel) {
			return msg
		}
	}
	return genericFailure
}
