package repository

import (
	"context"
	"errors"
	"time"

	"github.com/aperture-dining/web-service/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrStateNotFound = errors.New("state not found")

// StateRepository stores per-session client state as string values under fixed keys.
type StateRepository interface {
	Get(ctx context.Context, namespace, key string) (string, error)
	Set(ctx context.Context, namespace, key, value string) error
	Delete(ctx context.Context, namespace string, keys ...string) error
	// Incr atomically adds one to the integer stored under key, starting from zero, and returns the new value.
	Incr(ctx context.Context, namespace, key string) (int64, error)
}

type stateRepository struct {
	db  *gorm.DB
	ttl time.Duration
}

// NewStateRepository returns the Postgres-backed state store.
func NewStateRepository(db *gorm.DB, ttl time.Duration) StateRepository {
	return &stateRepository{db: db, ttl: ttl}
}

func (r *stateRepository) Get(ctx context.Context, namespace, key string) (string, error) {
	var sv models.StoredValue
	err := r.db.WithContext(ctx).
		Where("namespace = ? AND state_key = ? AND expires_at > ?", namespace, key, time.Now()).
		First(&sv).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return "", ErrStateNotFound
	}
	if err != nil {
		return "", err
	}
	return sv.Value, nil
}

func (r *stateRepository) Set(ctx context.Context, namespace, key, value string) error {
	sv := models.StoredValue{
		Namespace: namespace,
		Key:       key,
		Value:     value,
		ExpiresAt: time.Now().Add(r.ttl),
	}
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "namespace"}, {Name: "state_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "expires_at", "updated_at"}),
	}).Create(&sv).Error
}

func (r *stateRepository) Delete(ctx context.Context, namespace string, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return r.db.WithContext(ctx).
		Where("namespace = ? AND state_key IN ?", namespace, keys).
		Delete(&models.StoredValue{}).Error
}

// Incr keeps counting across expiry; the counter only has to grow.
func (r *stateRepository) Incr(ctx context.Context, namespace, key string) (int64, error) {
	now := time.Now()
	var n int64
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO client_states (namespace, state_key, value, expires_at, created_at, updated_at)
		VALUES (?, ?, '1', ?, ?, ?)
		ON CONFLICT (namespace, state_key) DO UPDATE
		SET value = (client_states.value::bigint + 1)::text,
		    expires_at = EXCLUDED.expires_at,
		    updated_at = EXCLUDED.updated_at
		RETURNING value::bigint`,
		namespace, key, now.Add(r.ttl), now, now,
	).Scan(&n).Error
	return n, err
}

// PurgeExpired removes rows past their expiry and reports how many were deleted.
func PurgeExpired(ctx context.Context, db *gorm.DB) (int64, error) {
	res := db.WithContext(ctx).Where("expires_at <= ?", time.Now()).Delete(&models.StoredValue{})
	return res.RowsAffected, res.Error
}
