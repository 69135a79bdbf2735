package storage

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/frahmantamala/marketplace-storefront/internal"
	kvDatamodel "github.com/frahmantamala/marketplace-storefront/internal/core/datamodel/kv"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormKV stores slices as rows of storefront_slices in sqlite or postgres.
type GormKV struct {
	db        *gorm.DB
	opTimeout time.Duration
}

func NewGormKV(db *gorm.DB, opTimeout time.Duration) *GormKV {
	return &GormKV{db: db, opTimeout: opTimeout}
}

// Migrate creates the slices table when goose migrations have not been run.
func (r *GormKV) Migrate() error {
	return r.db.AutoMigrate(&kvDatamodel.Entry{})
}

func (r *GormKV) Get(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := internal.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	var entry kvDatamodel.Entry
	err := r.db.WithContext(ctx).Where("slice_key = ?", key).First(&entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get slice %s: %w", key, err)
	}
	return []byte(entry.Value), nil
}

func (r *GormKV) Set(ctx context.Context, key string, value []byte) error {
	ctx, cancel := internal.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	entry := kvDatamodel.Entry{Key: key, Value: string(value), UpdatedAt: time.Now()}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "slice_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&entry).Error
	if err != nil {
		return fmt.Errorf("set slice %s: %w", key, err)
	}
	return nil
}

func (r *GormKV) Delete(ctx context.Context, key string) error {
	ctx, cancel := internal.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Where("slice_key = ?", key).Delete(&kvDatamodel.Entry{}).Error
}

func (r *GormKV) Clear(ctx context.Context) error {
	ctx, cancel := internal.WithTimeout(ctx, r.opTimeout)
	defer cancel()

	return r.db.WithContext(ctx).Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(&kvDatamodel.Entry{}).Error
}

func (r *GormKV) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
