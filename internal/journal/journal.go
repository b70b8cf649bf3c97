package journal

import (
	"context"
	"fmt"
	"time"

	"sleuth-client/internal/channel"
	"sleuth-client/internal/model"
	"sleuth-client/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Journal appends every inbound envelope of a session to the database.
type Journal struct {
	db        *gorm.DB
	sessionID string
	now       func() time.Time
}

func New(db *gorm.DB, sessionID string) *Journal {
	return &Journal{db: db, sessionID: sessionID, now: time.Now}
}

type ListResult struct {
	Items []model.EventRecord
	Total int64
}

func (j *Journal) Record(ctx context.Context, env channel.Envelope) error {
	payload := datatypes.JSON(env.Data)
	if len(payload) == 0 {
		payload = datatypes.JSON("null")
	}
	rec := model.EventRecord{
		ID:         uuid.NewString(),
		SessionID:  j.sessionID,
		Type:       env.Type,
		Payload:    payload,
		ReceivedAt: j.now(),
	}
	if err := j.db.WithContext(ctx).Create(&rec).Error; err != nil {
		return fmt.Errorf("journal %s: %w", env.Type, err)
	}
	return nil
}

// Observer adapts Record to the channel frame hook. Failures are logged only.
func (j *Journal) Observer() func(channel.Envelope) {
	return func(env channel.Envelope) {
		if err := j.Record(context.Background(), env); err != nil {
			logger.Log.Warn("event not journaled", zap.String("type", env.Type), zap.Error(err))
		}
	}
}

// List pages through the session's events, newest first. An empty eventType
// matches every type.
func (j *Journal) List(ctx context.Context, eventType string, page, size int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if size <= 0 {
		size = 20
	}
	if size > 100 {
		size = 100
	}

	query := j.db.WithContext(ctx).Model(&model.EventRecord{}).Where("session_id = ?", j.sessionID)
	if eventType != "" {
		query = query.Where("type = ?", eventType)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, err
	}

	var items []model.EventRecord
	if total > 0 {
		if err := query.
			Order("received_at DESC").
			Limit(size).
			Offset((page - 1) * size).
			Find(&items).Error; err != nil {
			return nil, err
		}
	}
	return &ListResult{Items: items, Total: total}, nil
}
