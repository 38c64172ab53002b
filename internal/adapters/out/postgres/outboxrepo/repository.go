package outboxrepo

import (
	"context"
	"time"
	"unicode/utf8"

	"fooddelivery/internal/core/domain/model/kernel"
	"fooddelivery/internal/core/ports"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// maxErrorLength caps the stored last_error.
const maxErrorLength = 1000

// GormOutboxRepository implements ports.OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

// NewGormOutboxRepository creates a repository bound to db, usually a transaction.
func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

// Add writes one row per event.
func (r *GormOutboxRepository) Add(ctx context.Context, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]OutboxDTO, 0, len(events))
	for _, event := range events {
		dto, err := fromDomain(event)
		if err != nil {
			return err
		}
		dtos = append(dtos, dto)
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// FetchPending locks the oldest unprocessed rows, skipping rows another relay holds.
func (r *GormOutboxRepository) FetchPending(ctx context.Context, limit, maxAttempts int) ([]ports.OutboxMessage, error) {
	var dtos []OutboxDTO
	if err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("processed_at IS NULL AND attempts < ?", maxAttempts).
		Order("occurred_at ASC, id ASC").
		Limit(limit).
		Find(&dtos).Error; err != nil {
		return nil, err
	}

	messages := make([]ports.OutboxMessage, 0, len(dtos))
	for _, dto := range dtos {
		msg, err := toMessage(dto)
		if err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// MarkProcessed records a successful publish.
func (r *GormOutboxRepository) MarkProcessed(ctx context.Context, id kernel.UUID, at time.Time) error {
	return r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{"processed_at": at, "last_error": ""}).Error
}

// MarkFailed counts a failed attempt and keeps the error for inspection.
func (r *GormOutboxRepository) MarkFailed(ctx context.Context, id kernel.UUID, cause error) error {
	message := ""
	if cause != nil {
		message = cause.Error()
	}
	message = truncateUTF8(message, maxErrorLength)
	return r.db.WithContext(ctx).
		Model(&OutboxDTO{}).
		Where("id = ?", id.Bytes()).
		Updates(map[string]any{"attempts": gorm.Expr("attempts + 1"), "last_error": message}).Error
}

// GormOutboxTx runs relay batches in their own transaction so the row locks
// taken by FetchPending hold until the batch is marked.
type GormOutboxTx struct {
	db *gorm.DB
}

func NewGormOutboxTx(db *gorm.DB) *GormOutboxTx {
	return &GormOutboxTx{db: db}
}

// WithinTx commits when fn returns nil and rolls back otherwise.
func (t *GormOutboxTx) WithinTx(
	ctx context.Context,
	fn func(ctx context.Context, repo ports.OutboxRepository) error,
) error {
	return t.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(ctx, NewGormOutboxRepository(tx))
	})
}

// truncateUTF8 cuts s to at most limit bytes without splitting a rune.
func truncateUTF8(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	cut := limit
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
