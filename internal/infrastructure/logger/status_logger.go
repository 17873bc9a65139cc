package logger

import (
	"context"

	"github.com/LavaJover/shvark-commission-service/internal/domain"
	"github.com/LavaJover/shvark-commission-service/internal/infrastructure/postgres/mappers"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PGStatusLogger writes tier upgrades to the status_logs audit table.
type PGStatusLogger struct {
	db *gorm.DB
}

func NewPGStatusLogger(db *gorm.DB) *PGStatusLogger {
	return &PGStatusLogger{db: db}
}

func (l *PGStatusLogger) LogStatusChange(ctx context.Context, entry domain.StatusLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	return l.db.WithContext(ctx).Create(mappers.ToGORMStatusLog(entry)).Error
}
