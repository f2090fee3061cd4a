package storage

import (
	"errors"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SlotRow is the gorm model behind GormKV: one row per slot, the whole JSON
// blob in a single column.
type SlotRow struct {
	Key       string         `gorm:"primaryKey;column:key"`
	Value     datatypes.JSON `gorm:"column:value"`
	UpdatedAt int64          `gorm:"autoUpdateTime:milli"`
}

func (SlotRow) TableName() string {
	return "slots"
}

// GormKV stores slots in an embedded sqlite database through gorm.
type GormKV struct {
	db     *gorm.DB
	logger *zap.Logger
}

// Open opens (or creates) the sqlite database at path and migrates the slot
// table. Use ":memory:" for a throwaway database.
func Open(path string, log *zap.Logger) (*GormKV, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("open database %q: %w", path, err)
	}
	if err := db.AutoMigrate(&SlotRow{}); err != nil {
		return nil, fmt.Errorf("migrate slot table: %w", err)
	}
	log.Info("Slot database opened", zap.String("path", path))
	return &GormKV{db: db, logger: log}, nil
}

// DB exposes the underlying gorm handle.
func (g *GormKV) DB() *gorm.DB {
	return g.db
}

func (g *GormKV) Get(key string) ([]byte, bool, error) {
	var row SlotRow
	err := g.db.First(&row, "key = ?", key).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("read slot %q: %w", key, err)
	}
	return []byte(row.Value), true, nil
}

func (g *GormKV) Put(key string, value []byte) error {
	row := SlotRow{Key: key, Value: datatypes.JSON(value)}
	if err := g.db.Save(&row).Error; err != nil {
		g.logger.Error("Failed to write slot", zap.String("key", key), zap.Error(err))
		return fmt.Errorf("write slot %q: %w", key, err)
	}
	return nil
}

func (g *GormKV) Delete(key string) error {
	if err := g.db.Delete(&SlotRow{}, "key = ?", key).Error; err != nil {
		return fmt.Errorf("delete slot %q: %w", key, err)
	}
	return nil
}
