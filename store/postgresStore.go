package store

import (
	"SolidarityHospital/cache"
	"SolidarityHospital/models"
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

const (
	CollectionCacheExpiry = 7 * 24 * time.Hour
)

// PostgresStore keeps one row per collection in the collections table. When a cache is
// given, reads go through it and writes invalidate it.
type PostgresStore struct {
	db    *gorm.DB
	cache cache.Cache
}

func NewPostgresStore(db *gorm.DB, c cache.Cache) *PostgresStore {
	return &PostgresStore{db: db, cache: c}
}

func (s *PostgresStore) Load(ctx context.Context, collection Collection) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	cacheKey := s.getCacheKey(collection)
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, cacheKey)
		if err != nil {
			log.Warn().Err(err).Str("collection", string(collection)).Msg("Failed to get collection from cache")
		} else if cached != "" {
			return []byte(cached), nil
		}
	}

	var record models.CollectionRecord
	err := s.db.WithContext(ctx).First(&record, "key = ?", string(collection)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, errors.Wrapf(err, "failed to load %s", collection)
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, cacheKey, record.Payload, CollectionCacheExpiry); err != nil {
			log.Warn().Err(err).Str("collection", string(collection)).Msg("Failed to set collection in cache")
		}
	}
	return []byte(record.Payload), nil
}

func (s *PostgresStore) Save(ctx context.Context, collection Collection, payload []byte) error {
	record := models.CollectionRecord{Key: string(collection), Payload: string(payload)}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "updated_at"}),
	}).Create(&record).Error
	if err != nil {
		return errors.Wrapf(err, "failed to save %s", collection)
	}
	return s.invalidate(ctx, collection)
}

func (s *PostgresStore) Remove(ctx context.Context, collection Collection) error {
	err := s.db.WithContext(ctx).Delete(&models.CollectionRecord{}, "key = ?", string(collection)).Error
	if err != nil {
		return errors.Wrapf(err, "failed to remove %s", collection)
	}
	return s.invalidate(ctx, collection)
}

func (s *PostgresStore) invalidate(ctx context.Context, collection Collection) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.Delete(ctx, s.getCacheKey(collection)); err != nil {
		return fmt.Errorf("failed to delete collection cache: %w", err)
	}
	return nil
}

// FlushCache drops every cached collection so reads go back to the table. Run it after
// migrations, when rows may have changed behind the cache.
func (s *PostgresStore) FlushCache(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	if err := s.cache.DeleteAll(ctx, s.getCacheKey("*")); err != nil {
		return fmt.Errorf("failed to flush collection cache: %w", err)
	}
	return nil
}

func (s *PostgresStore) getCacheKey(collection Collection) string {
	return fmt.Sprintf("collection_cache:%s", collection)
}
