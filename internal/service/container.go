package service

import (
	"context"
	"net/http"

	"sleuth-client/internal/action"
	"sleuth-client/internal/channel"
	"sleuth-client/internal/command"
	"sleuth-client/internal/config"
	"sleuth-client/internal/dispatcher"
	"sleuth-client/internal/journal"
	"sleuth-client/internal/model"
	"sleuth-client/internal/notify"
	"sleuth-client/internal/play"
	"sleuth-client/internal/prompt"
	"sleuth-client/internal/state"
	"sleuth-client/internal/turn"
	"sleuth-client/pkg/logger"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Container holds every component of one game session.
type Container struct {
	Config     *config.Config
	Store      *state.Store
	Client     command.Client
	Prompts    *prompt.Slot
	Notices    *notify.Center
	Turns      *turn.Controller
	Guard      *play.Guard
	Channel    *channel.Channel
	Dispatcher *dispatcher.Dispatcher
	Journal    *journal.Journal // nil when the journal is disabled

	ended chan model.GameResult

	// ctx outlives every local play and is cancelled by Stop.
	ctx    context.Context
	cancel context.CancelFunc
}

// NewContainer wires a session for playerID. db and rdb may be nil.
func NewContainer(cfg *config.Config, playerID string, db *gorm.DB, rdb *redis.Client) *Container {
	return NewContainerWithClient(cfg, playerID, command.NewHTTPClient(cfg.Server.HTTPBase, cfg.Auth.Token, cfg.Server.Timeout), db, rdb)
}

// NewContainerWithClient wires a session around an existing command client.
func NewContainerWithClient(cfg *config.Config, playerID string, client command.Client, db *gorm.DB, rdb *redis.Client) *Container {
	c := &Container{
		Config:  cfg,
		Store:   state.NewStore(cfg.Session.ID, playerID),
		Client:  client,
		Prompts: prompt.NewSlot(),
		Notices: notify.NewCenter(0),
		ended:   make(chan model.GameResult, 1),
	}
	c.ctx, c.cancel = context.WithCancel(context.Background())

	var turnOpts []turn.Option
	if rdb != nil {
		turnOpts = append(turnOpts, turn.WithSnapshotSink(journal.NewRedisSnapshots(rdb, cfg.Redis.SnapshotTTL)))
	}
	c.Turns = turn.NewController(client, c.Store, c.Notices, turnOpts...)

	prompter := action.NewPrompter(c.Prompts, c.Store)
	cards := action.NewCardActions(client, c.Store, prompter, cfg.Session.DiscardPoolSize)
	detectives := action.NewDetectiveActions(client, c.Store, prompter)
	c.Guard = play.NewGuard(c.Store, cards, detectives, c.Turns, c.Notices)

	header := http.Header{}
	if cfg.Auth.Token != "" {
		header.Set("Authorization", "Bearer "+cfg.Auth.Token)
	}
	chOpts := []channel.Option{
		channel.WithDialer(channel.WSDialer{
			Header:    header,
			ReadLimit: cfg.Channel.ReadLimit,
			Timeout:   cfg.Channel.DialTimeout,
		}),
		channel.WithPolicy(channel.ConstantPolicy(cfg.Channel.ReconnectDelay)),
		channel.WithDialTimeout(cfg.Channel.DialTimeout),
	}
	if db != nil {
		c.Journal = journal.New(db, cfg.Session.ID)
		chOpts = append(chOpts, channel.WithFrameObserver(c.Journal.Observer()))
	}
	c.Channel = channel.New(cfg.Server.WSBase, chOpts...)

	c.Dispatcher = dispatcher.New(dispatcher.Deps{
		Bus:       c.Channel,
		Store:     c.Store,
		Fetcher:   client,
		Responder: action.NewResponder(client, c.Store, prompter),
		Turns:     c.Turns,
		Notifier:  c.Notices,
		Navigator: dispatcher.NavigatorFunc(c.gameEnded),
	})
	return c
}

func (c *Container) gameEnded(result model.GameResult) {
	select {
	case c.ended <- result:
	default:
	}
}

// Ended delivers the final result once the game is over.
func (c *Container) Ended() <-chan model.GameResult {
	return c.ended
}

// Start connects the session and requests the first turn refresh.
func (c *Container) Start(ctx context.Context) error {
	if err := c.Dispatcher.Start(ctx); err != nil {
		return err
	}
	c.Turns.Trigger()
	logger.Log.Info("session started",
		zap.String("sessionID", c.Store.SessionID()),
		zap.String("playerID", c.Store.LocalID()),
	)
	return nil
}

// RunTurns blocks in the turn controller loop until ctx is done.
func (c *Container) RunTurns(ctx context.Context) error {
	return c.Turns.Run(ctx)
}

// Play runs a local play. It ends when ctx is done or the session stops.
func (c *Container) Play(ctx context.Context, cardIDs []string) (*command.PlayResult, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	release := context.AfterFunc(c.ctx, cancel)
	defer release()
	return c.Guard.Play(ctx, cardIDs)
}

func (c *Container) Stop() {
	c.cancel()
	if err := c.Prompts.Cancel(); err != nil {
		logger.Log.Debug("no prompt open at stop", zap.Error(err))
	}
	c.Dispatcher.Stop()
	c.Channel.Close()
}
