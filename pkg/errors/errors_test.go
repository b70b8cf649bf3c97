package errors_test

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	appErr "sleuth-client/pkg/errors"
)

func TestUserMessageMapsCommandStatus(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want string
	}{
		{"conflict", &appErr.CommandError{Status: http.StatusConflict, Detail: "max"}, "Limit reached for this action."},
		{"bad request with detail", &appErr.CommandError{Status: http.StatusBadRequest, Detail: "no target"}, "Invalid action: no target"},
		{"wrapped forbidden", fmt.Errorf("play: %w", &appErr.CommandError{Status: http.StatusForbidden}), "You are not allowed to do that."},
		{"unmapped status", &appErr.CommandError{Status: http.StatusTeapot}, "Something went wrong, please try again."},
		{"sentinel", fmt.Errorf("guard: %w", appErr.ErrNotYourTurn), "It's not your turn."},
		{"unknown error", errors.New("boom"), "Something went wrong, please try again."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := appErr.UserMessage(tc.err); got != tc.want {
				t.Fatalf("UserMessage: got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestUserMessageNamesUnknownEffect(t *testing.T) {
	err := fmt.Errorf("%w: %q", appErr.ErrUnknownEffect, "ZZ")
	got := appErr.UserMessage(err)
	if got != `Unsupported set effect: unknown set effect: "ZZ"` {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestUserMessageNil(t *testing.T) {
	if got := appErr.UserMessage(nil); got != "" {
		t.Fatalf("expected empty message, got %q", got)
	}
}
