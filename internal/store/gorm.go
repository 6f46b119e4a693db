package store

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CollectionRow 一行存一个集合的完整 JSON
type CollectionRow struct {
	Name      string    `gorm:"primaryKey;size:64"`
	Payload   string    `gorm:"type:text;not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}

func (CollectionRow) TableName() string { return "collections" }

type GormBackend struct{ db *gorm.DB }

// NewGormBackend 会自动建表
func NewGormBackend(db *gorm.DB) (*GormBackend, error) {
	if err := db.AutoMigrate(&CollectionRow{}); err != nil {
		return nil, err
	}
	return &GormBackend{db: db}, nil
}

func (b *GormBackend) Read(ctx context.Context, name Name) ([]byte, error) {
	var row CollectionRow
	err := b.db.WithContext(ctx).First(&row, "name = ?", string(name)).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotExist
	}
	if err != nil {
		return nil, err
	}
	return []byte(row.Payload), nil
}

// Write upsert：主键冲突时覆盖 payload
func (b *GormBackend) Write(ctx context.Context, name Name, data []byte) error {
	row := CollectionRow{Name: string(name), Payload: string(data), UpdatedAt: time.Now()}
	return b.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "name"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&row).Error
}
