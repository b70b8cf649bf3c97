package channel

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"
	"time"

	"sleuth-client/pkg/logger"

	"github.com/cenkalti/backoff/v5"
	"go.uber.org/zap"
)

// EventOpen is emitted locally after every successful (re)connection.
const EventOpen = "open"

const (
	defaultReconnectDelay = 3 * time.Second
	defaultDialTimeout    = 10 * time.Second
)

// Envelope is the wire shape of every server frame.
type Envelope struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

type Timer interface {
	Stop() bool
}

// Clock schedules the reconnect attempt.
type Clock interface {
	AfterFunc(d time.Duration, f func()) Timer
}

type realClock struct{}

func (realClock) AfterFunc(d time.Duration, f func()) Timer { return time.AfterFunc(d, f) }

// ConstantPolicy is the reconnect policy: the same delay before every attempt.
func ConstantPolicy(delay time.Duration) backoff.BackOff {
	return backoff.NewConstantBackOff(delay)
}

type Option func(*Channel)

func WithDialer(d Dialer) Option { return func(c *Channel) { c.dialer = d } }

func WithPolicy(p backoff.BackOff) Option { return func(c *Channel) { c.policy = p } }

func WithClock(clk Clock) Option { return func(c *Channel) { c.clock = clk } }

func WithDialTimeout(d time.Duration) Option { return func(c *Channel) { c.dialTimeout = d } }

// WithFrameObserver sees every well-formed envelope before it is dispatched.
func WithFrameObserver(fn func(Envelope)) Option { return func(c *Channel) { c.observer = fn } }

// Channel is a reconnecting typed pub/sub transport over a websocket.
type Channel struct {
	baseURL     string
	dialer      Dialer
	policy      backoff.BackOff
	clock       Clock
	dialTimeout time.Duration
	observer    func(Envelope)
	emitter     *Emitter

	mu      sync.Mutex
	target  string
	conn    Conn
	stopped bool
	timer   Timer
}

func New(baseURL string, opts ...Option) *Channel {
	c := &Channel{
		baseURL:     strings.TrimRight(baseURL, "/"),
		dialer:      WSDialer{Timeout: defaultDialTimeout},
		policy:      ConstantPolicy(defaultReconnectDelay),
		clock:       realClock{},
		dialTimeout: defaultDialTimeout,
		emitter:     NewEmitter(),
		stopped:     true,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// On registers fn for eventType. The registry survives reconnects.
func (c *Channel) On(eventType string, fn Handler) func() {
	return c.emitter.Subscribe(eventType, fn)
}

func (c *Channel) Subscribers(eventType string) int {
	return c.emitter.Count(eventType)
}

func (c *Channel) Target() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.target
}

// Connect opens <baseURL>[/sessionID]. Dial failures are logged and retried
// through the reconnect policy, they are not returned.
func (c *Channel) Connect(ctx context.Context, sessionID string) error {
	target := c.baseURL
	if sessionID != "" {
		target += "/" + url.PathEscape(sessionID)
	}
	if _, err := url.Parse(target); err != nil {
		return fmt.Errorf("invalid channel url %q: %w", target, err)
	}

	c.mu.Lock()
	old := c.conn
	c.conn = nil
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	c.target = target
	c.stopped = false
	c.policy.Reset()
	c.mu.Unlock()

	if old != nil {
		old.Close()
	}
	c.open(ctx, target)
	return nil
}

func (c *Channel) open(ctx context.Context, target string) {
	conn, err := c.dialer.Dial(ctx, target)
	if err != nil {
		logger.Log.Warn("channel dial failed", zap.String("url", target), zap.Error(err))
		c.mu.Lock()
		if !c.stopped && c.target == target && c.conn == nil {
			c.scheduleLocked()
		}
		c.mu.Unlock()
		return
	}

	c.mu.Lock()
	if c.stopped || c.target != target {
		c.mu.Unlock()
		conn.Close()
		return
	}
	c.conn = conn
	c.mu.Unlock()

	logger.Log.Info("channel connected", zap.String("url", target))
	c.emitter.Emit(EventOpen, nil)
	go c.readLoop(conn)
}

func (c *Channel) readLoop(conn Conn) {
	for {
		_, message, err := conn.ReadMessage()
		if err != nil {
			logger.Log.Info("channel read ended", zap.Error(err))
			c.handleClose(conn)
			return
		}

		var env Envelope
		if err := json.Unmarshal(message, &env); err != nil {
			logger.Log.Warn("dropping malformed frame", zap.Error(err), zap.ByteString("frame", message))
			continue
		}
		if env.Type == "" {
			logger.Log.Warn("dropping frame without type", zap.ByteString("frame", message))
			continue
		}
		if c.observer != nil {
			c.observer(env)
		}
		c.emitter.Emit(env.Type, env.Data)
	}
}

func (c *Channel) handleClose(conn Conn) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.conn != conn {
		return
	}
	c.conn = nil
	if c.stopped {
		return
	}
	c.scheduleLocked()
}

func (c *Channel) scheduleLocked() {
	delay := c.policy.NextBackOff()
	if delay == backoff.Stop {
		logger.Log.Warn("reconnect policy gave up", zap.String("url", c.target))
		return
	}
	target := c.target
	logger.Log.Info("scheduling reconnect", zap.String("url", target), zap.Duration("delay", delay))
	c.timer = c.clock.AfterFunc(delay, func() { c.reconnect(target) })
}

func (c *Channel) reconnect(target string) {
	c.mu.Lock()
	if c.stopped || c.target != target || c.conn != nil {
		c.mu.Unlock()
		return
	}
	c.timer = nil
	c.mu.Unlock()

	ctx, cancel := context.WithTimeout(context.Background(), c.dialTimeout)
	defer cancel()
	c.open(ctx, target)
}

// Disconnect stops reconnecting and closes the socket. Handlers stay registered.
func (c *Channel) Disconnect() {
	c.mu.Lock()
	c.stopped = true
	if c.timer != nil {
		c.timer.Stop()
		c.timer = nil
	}
	conn := c.conn
	c.conn = nil
	c.mu.Unlock()

	if conn != nil {
		if err := conn.Close(); err != nil {
			logger.Log.Debug("channel close", zap.Error(err))
		}
	}
}

// Close disconnects and clears the handler registry.
func (c *Channel) Close() {
	c.Disconnect()
	c.emitter.Clear()
}
