package service

import (
	"context"
	"sync"
	"time"

	gevent "github.com/gookit/event"
	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.lumeweb.com/queuemailer/core"
	"go.lumeweb.com/queuemailer/db"
	"go.lumeweb.com/queuemailer/db/models"
	"go.lumeweb.com/queuemailer/event"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var _ core.MailerStager = (*Outbox)(nil)

// Outbox holds staged emails in memory until Flush commits them in one transaction.
type Outbox struct {
	db     *gorm.DB
	logger *core.Logger
	events *gevent.Manager

	mu      sync.Mutex
	pending []*core.Email
	staged  map[uuid.UUID]struct{}
}

func NewOutbox(db *gorm.DB, logger *core.Logger, events *gevent.Manager) *Outbox {
	return &Outbox{
		db:     db,
		logger: lo.Ternary(logger != nil, logger, core.NewNopLogger()),
		events: events,
		staged: make(map[uuid.UUID]struct{}),
	}
}

// StageEmail accepts the email for the next Flush. Staging the same email twice is a no-op,
// including after it has been flushed.
func (o *Outbox) StageEmail(ctx context.Context, email *core.Email) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if _, ok := o.staged[email.ID()]; ok {
		return nil
	}

	o.staged[email.ID()] = struct{}{}
	o.pending = append(o.pending, email)

	return nil
}

func (o *Outbox) Pending() []*core.Email {
	o.mu.Lock()
	defer o.mu.Unlock()

	return append([]*core.Email(nil), o.pending...)
}

func (o *Outbox) Discard() {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.pending = nil
	o.staged = make(map[uuid.UUID]struct{})
}

// Flush commits every staged email and clears the buffer. On failure nothing is cleared,
// so a later Flush retries the same batch.
func (o *Outbox) Flush(ctx context.Context) (int, error) {
	flushed, err := o.commit(ctx)
	if err != nil {
		o.logger.Error("failed to flush outbox", zap.Error(err))
		return 0, err
	}

	if len(flushed) == 0 {
		return 0, nil
	}

	o.logger.Info("outbox flushed", zap.Int("count", len(flushed)))

	if err := event.FireOutboxFlushedEvent(o.events, flushed); err != nil {
		o.logger.Error("outbox flushed listener failed", zap.Error(err))
	}

	return len(flushed), nil
}

func (o *Outbox) commit(ctx context.Context) ([]*core.Email, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	if len(o.pending) == 0 {
		return nil, nil
	}

	now := time.Now()
	rows := lo.Map(o.pending, func(email *core.Email, _ int) *models.Email {
		return &models.Email{
			MessageID: email.ID().String(),
			Sender:    email.Sender(),
			Recipient: email.To(),
			Subject:   email.Subject(),
			Body:      email.Body(),
			StagedAt:  now,
		}
	})

	err := db.RetryableTransaction(ctx, o.db, func(tx *gorm.DB) *gorm.DB {
		// an email staged again after an earlier flush is already committed
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "message_id"}},
			DoNothing: true,
		}).Create(&rows)
	})
	if err != nil {
		return nil, err
	}

	flushed := o.pending
	o.pending = nil
	o.staged = make(map[uuid.UUID]struct{})

	return flushed, nil
}
