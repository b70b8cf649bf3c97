package middleware

import (
	"crypto/subtle"
	"errors"
	"net/http"
	"strings"

	appErr "sleuth-client/pkg/errors"
	"sleuth-client/pkg/response"

	"github.com/gin-gonic/gin"
)

// ControlTokenRequired guards the local API. An empty token disables the check.
func ControlTokenRequired(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token == "" {
			c.Next()
			return
		}

		got, err := extractBearerToken(c.GetHeader("Authorization"))
		if err != nil {
			response.Abort(c, http.StatusUnauthorized, err.Error())
			return
		}
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			response.Abort(c, http.StatusUnauthorized, appErr.ErrUnauthorized.Error())
			return
		}
		c.Next()
	}
}

func extractBearerToken(authHeader string) (string, error) {
	if strings.TrimSpace(authHeader) == "" {
		return "", errors.New("missing authorization header")
	}
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", errors.New("invalid authorization header")
	}
	return strings.TrimSpace(parts[1]), nil
}
