package repository

import (
	"sprout/internal/models"

	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type EventLogRepository struct {
	db *gorm.DB
}

func NewEventLogRepository(db *gorm.DB) *EventLogRepository {
	return &EventLogRepository{db: db}
}

// WithTx returns a copy bound to tx.
func (r *EventLogRepository) WithTx(tx *gorm.DB) *EventLogRepository {
	return &EventLogRepository{db: tx}
}

// Record is fire-and-forget: a failed audit write is logged and
// swallowed so it can never fail the business operation it shadows.
func (r *EventLogRepository) Record(parentID uint, action, resource, resourceID, metadata string) {
	e := models.EventLog{
		ParentID:   parentID,
		Action:     action,
		Resource:   resource,
		ResourceID: resourceID,
		Metadata:   metadata,
	}
	if err := r.db.Create(&e).Error; err != nil {
		log.Warn().Err(err).Str("action", action).Msg("event log write failed")
	}
}
