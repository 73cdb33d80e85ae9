package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/internal/domain/wizard"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

const (
	sessionKeyPrefix = "wizard:session:"
	// maxUpdateRetries bounds optimistic retries when a watched key changes.
	maxUpdateRetries = 10
)

// redisSessionRepo keeps each wizard session as one JSON value. Every save
// refreshes the TTL, so an idle session disappears after ttl.
type redisSessionRepo struct {
	rdb    *redis.Client
	ttl    time.Duration
	logger logger.Logger
}

func NewRedisSessionRepo(rdb *redis.Client, ttl time.Duration, log logger.Logger) wizard.Repository {
	return &redisSessionRepo{rdb: rdb, ttl: ttl, logger: log}
}

func sessionKey(id uuid.UUID) string {
	return sessionKeyPrefix + id.String()
}

func (r *redisSessionRepo) Save(ctx context.Context, s *wizard.Session) error {
	b, err := json.Marshal(s)
	if err != nil {
		return apperror.NewInternal("failed to marshal wizard session", err)
	}
	if err := r.rdb.Set(ctx, sessionKey(s.ID), b, r.ttl).Err(); err != nil {
		return apperror.NewInternal("failed to save wizard session", err)
	}
	return nil
}

func (r *redisSessionRepo) FindByID(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	b, err := r.rdb.Get(ctx, sessionKey(id)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, apperror.NewAppError(apperror.ErrNotFound, "session not found", id.String(), wizard.ErrSessionNotFound)
		}
		return nil, apperror.NewInternal("failed to load wizard session", err)
	}

	s := &wizard.Session{}
	if err := json.Unmarshal(b, s); err != nil {
		r.logger.Warn("Dropping unreadable wizard session", zap.String("session_id", id.String()), zap.Error(err))
		_ = r.rdb.Del(ctx, sessionKey(id)).Err()
		return nil, apperror.NewAppError(apperror.ErrNotFound, "session not found", id.String(), wizard.ErrSessionNotFound)
	}
	return s, nil
}

// Update runs fn inside WATCH/MULTI so a concurrent writer never loses its
// change. A conflicting write restarts the read-modify-write.
func (r *redisSessionRepo) Update(ctx context.Context, id uuid.UUID, fn func(*wizard.Session) error) (*wizard.Session, error) {
	key := sessionKey(id)
	var updated *wizard.Session

	txf := func(tx *redis.Tx) error {
		b, err := tx.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return apperror.NewAppError(apperror.ErrNotFound, "session not found", id.String(), wizard.ErrSessionNotFound)
			}
			return apperror.NewInternal("failed to load wizard session", err)
		}
		s := &wizard.Session{}
		if err := json.Unmarshal(b, s); err != nil {
			return apperror.NewAppError(apperror.ErrNotFound, "session not found", id.String(), wizard.ErrSessionNotFound)
		}
		if err := fn(s); err != nil {
			return err
		}
		nb, err := json.Marshal(s)
		if err != nil {
			return apperror.NewInternal("failed to marshal wizard session", err)
		}
		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, nb, r.ttl)
			return nil
		})
		if err != nil && !errors.Is(err, redis.TxFailedErr) {
			return apperror.NewInternal("failed to save wizard session", err)
		}
		if err == nil {
			updated = s
		}
		return err
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.rdb.Watch(ctx, txf, key)
		switch {
		case err == nil:
			return updated, nil
		case errors.Is(err, redis.TxFailedErr):
			r.logger.Debug("Wizard session changed during update, retrying", zap.String("session_id", id.String()), zap.Int("attempt", i+1))
		default:
			return nil, err
		}
	}
	return nil, apperror.NewConflict("wizard session", "id", id.String())
}

func (r *redisSessionRepo) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.rdb.Del(ctx, sessionKey(id)).Err(); err != nil {
		return apperror.NewInternal("failed to delete wizard session", err)
	}
	return nil
}
