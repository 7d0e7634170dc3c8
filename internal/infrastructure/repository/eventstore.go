package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"iprights/internal/domain/shared/events"
	"iprights/internal/infrastructure/persistence/models"
	"iprights/internal/shared/db"
	"iprights/internal/shared/logger"
)

// EventStore is the durable side of the audit trail. Appends join the
// caller's transaction so a rolled-back operation leaves no trace; replay
// reads straight from the table in sequence order.
type EventStore struct {
	db     *gorm.DB
	logger logger.Interface
}

// NewEventStore creates a new durable event store
func NewEventStore(db *gorm.DB, logger logger.Interface) *EventStore {
	return &EventStore{
		db:     db,
		logger: logger,
	}
}

// Append stores one audit record
func (s *EventStore) Append(ctx context.Context, rec events.Record) error {
	details, err := json.Marshal(rec.Details)
	if err != nil {
		return fmt.Errorf("failed to encode event details: %w", err)
	}

	model := &models.EventModel{
		Type:       rec.Type,
		EntityID:   rec.EntityID,
		Actors:     strings.Join(rec.Actors, ","),
		OccurredAt: rec.OccurredAt,
		Details:    details,
	}

	tx := db.GetTxFromContext(ctx, s.db)
	if err := tx.Create(model).Error; err != nil {
		s.logger.Errorw("failed to append event", "type", rec.Type, "entity_id", rec.EntityID, "error", err)
		return fmt.Errorf("failed to append event: %w", err)
	}
	return nil
}

// ReplayAfter returns up to limit records with sequence greater than seq, in
// sequence order. A zero limit means no cap.
func (s *EventStore) ReplayAfter(ctx context.Context, seq uint64, limit int) ([]events.Record, error) {
	var rows []models.EventModel

	query := s.db.WithContext(ctx).
		Where("sequence > ?", seq).
		Order("sequence ASC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if err := query.Find(&rows).Error; err != nil {
		s.logger.Errorw("failed to replay events", "after", seq, "error", err)
		return nil, fmt.Errorf("failed to replay events: %w", err)
	}

	records := make([]events.Record, 0, len(rows))
	for i := range rows {
		rec, err := toEventRecord(&rows[i])
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}
	return records, nil
}

func toEventRecord(m *models.EventModel) (events.Record, error) {
	rec := events.Record{
		Sequence:   m.Sequence,
		Type:       m.Type,
		EntityID:   m.EntityID,
		OccurredAt: m.OccurredAt,
	}
	if m.Actors != "" {
		rec.Actors = strings.Split(m.Actors, ",")
	}
	if len(m.Details) > 0 {
		if err := json.Unmarshal(m.Details, &rec.Details); err != nil {
			return events.Record{}, fmt.Errorf("failed to decode event details: %w", err)
		}
	}
	return rec, nil
}
