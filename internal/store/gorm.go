package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// StateEntry is one persisted (session, key) value.
type StateEntry struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Session   string `gorm:"size:255;not null;uniqueIndex:idx_session_key"`
	Key       string `gorm:"size:100;not null;uniqueIndex:idx_session_key"`
	Value     string `gorm:"type:text;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

type GormStore struct {
	db *gorm.DB
}

func NewGormStore(db *gorm.DB) (*GormStore, error) {
	if err := db.AutoMigrate(&StateEntry{}); err != nil {
		return nil, err
	}
	return &GormStore{db: db}, nil
}

// NewConnection opens the Postgres state database with the pool settings
// used across our services.
func NewConnection(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}

	sqlDB.SetMaxOpenConns(20)
	sqlDB.SetMaxIdleConns(5)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := sqlDB.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping DB: %w", err)
	}

	return db, nil
}

func (s *GormStore) Get(ctx context.Context, session, key string) (string, error) {
	var entry StateEntry
	err := s.db.WithContext(ctx).
		Where("session = ? AND key = ?", session, key).
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return entry.Value, nil
}

func (s *GormStore) Set(ctx context.Context, session, key, value string) error {
	entry := StateEntry{Session: session, Key: key, Value: value}
	return s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "session"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
		}).
		Create(&entry).Error
}

func (s *GormStore) Delete(ctx context.Context, session, key string) error {
	return s.db.WithContext(ctx).
		Where("session = ? AND key = ?", session, key).
		Delete(&StateEntry{}).Error
}
