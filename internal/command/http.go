package command

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"sleuth-client/internal/model"
	appErr "sleuth-client/pkg/errors"
	"sleuth-client/pkg/logger"
	"sleuth-client/pkg/response"

	"go.uber.org/zap"
)

// HTTPClient talks to the backend REST API. Every response body is a
// response.Body envelope.
type HTTPClient struct {
	base  string
	token string
	http  *http.Client
}

func NewHTTPClient(base, token string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		base:  strings.TrimRight(base, "/"),
		token: token,
		http:  &http.Client{Timeout: timeout},
	}
}

func gamePath(sessionID string, parts ...string) string {
	segs := append([]string{"games", url.PathEscape(sessionID)}, parts...)
	return "/" + strings.Join(segs, "/")
}

func (c *HTTPClient) do(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("encode %s %s: %w", method, path, err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.base+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s %s: %w", method, path, err)
	}

	var env response.Body
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &env); err != nil && resp.StatusCode < 300 {
			return fmt.Errorf("decode %s %s: %w", method, path, err)
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		detail := env.Msg
		if detail == "" {
			detail = strings.TrimSpace(string(raw))
		}
		logger.Log.Debug("command rejected",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", resp.StatusCode),
			zap.String("detail", detail),
		)
		return &appErr.CommandError{Status: resp.StatusCode, Detail: detail}
	}

	if err := env.Decode(out); err != nil {
		return fmt.Errorf("decode %s %s data: %w", method, path, err)
	}
	return nil
}

func (c *HTTPClient) TurnInfo(ctx context.Context, sessionID string) (TurnInfo, error) {
	var info TurnInfo
	err := c.do(ctx, http.MethodGet, gamePath(sessionID, "turn"), nil, &info)
	return info, err
}

func (c *HTTPClient) Players(ctx context.Context, sessionID string) ([]model.Player, error) {
	var players []model.Player
	err := c.do(ctx, http.MethodGet, gamePath(sessionID, "players"), nil, &players)
	return players, err
}

func (c *HTTPClient) PlayerCards(ctx context.Context, sessionID, playerID string) ([]model.Card, error) {
	var cards []model.Card
	err := c.do(ctx, http.MethodGet, gamePath(sessionID, "players", url.PathEscape(playerID), "cards"), nil, &cards)
	return cards, err
}

func (c *HTTPClient) PlayerSecrets(ctx context.Context, sessionID, playerID string) ([]model.Secret, error) {
	var secrets []model.Secret
	err := c.do(ctx, http.MethodGet, gamePath(sessionID, "players", url.PathEscape(playerID), "secrets"), nil, &secrets)
	return secrets, err
}

func (c *HTTPClient) PlayerSets(ctx context.Context, sessionID, playerID string) ([]model.Set, error) {
	var sets []model.Set
	err := c.do(ctx, http.MethodGet, gamePath(sessionID, "players", url.PathEscape(playerID), "sets"), nil, &sets)
	return sets, err
}

func (c *HTTPClient) Sets(ctx context.Context, sessionID string) ([]model.Set, error) {
	var sets []model.Set
	err := c.do(ctx, http.MethodGet, gamePath(sessionID, "sets"), nil, &sets)
	return sets, err
}

func (c *HTTPClient) DiscardTop(ctx context.Context, sessionID string, count int) ([]model.Card, error) {
	var cards []model.Card
	path := gamePath(sessionID, "discard") + "?count=" + strconv.Itoa(count)
	err := c.do(ctx, http.MethodGet, path, nil, &cards)
	return cards, err
}

func (c *HTTPClient) Neighbors(ctx context.Context, sessionID, playerID string) (model.Neighbors, error) {
	var n model.Neighbors
	err := c.do(ctx, http.MethodGet, gamePath(sessionID, "players", url.PathEscape(playerID), "neighbors"), nil, &n)
	return n, err
}

func (c *HTTPClient) PlayEvent(ctx context.Context, sessionID string, cmd EventCommand) (*PlayResult, error) {
	var res PlayResult
	if err := c.do(ctx, http.MethodPost, gamePath(sessionID, "event"), cmd, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) PlayDetective(ctx context.Context, sessionID string, cmd DetectiveCommand) (*PlayResult, error) {
	var res PlayResult
	if err := c.do(ctx, http.MethodPost, gamePath(sessionID, "detective"), cmd, &res); err != nil {
		return nil, err
	}
	return &res, nil
}

func (c *HTTPClient) VerifySet(ctx context.Context, sessionID string, cardIDs []string) (string, error) {
	var out struct {
		Effect *string `json:"effect"`
	}
	in := struct {
		Cards []string `json:"cards"`
	}{Cards: cardIDs}
	if err := c.do(ctx, http.MethodPost, gamePath(sessionID, "detective", "verify"), in, &out); err != nil {
		return "", err
	}
	if out.Effect == nil {
		return "", nil
	}
	return *out.Effect, nil
}

func (c *HTTPClient) ResolveTrade(ctx context.Context, sessionID string, res TradeResolution) error {
	return c.do(ctx, http.MethodPost, gamePath(sessionID, "trade", "resolve"), res, nil)
}

func (c *HTTPClient) RevealSecret(ctx context.Context, sessionID string, rev SecretReveal) error {
	return c.do(ctx, http.MethodPost, gamePath(sessionID, "secrets", "reveal"), rev, nil)
}

func (c *HTTPClient) PassCard(ctx context.Context, sessionID string, pass CardPass) error {
	return c.do(ctx, http.MethodPost, gamePath(sessionID, "passing"), pass, nil)
}

func (c *HTTPClient) CastVote(ctx context.Context, sessionID string, vote Vote) error {
	return c.do(ctx, http.MethodPost, gamePath(sessionID, "vote"), vote, nil)
}
