package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/internal/domain/preference"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

// preferencePoolSize caps connections; the table is one row per browser.
const preferencePoolSize = 4

// OpenPreferencePool connects to the preferences database and pings it.
func OpenPreferencePool(ctx context.Context, dsn string, log logger.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("parse preferences DSN: %w", err)
	}
	poolCfg.MaxConns = preferencePoolSize

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create preferences pool: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping preferences database: %w", err)
	}

	log.Info("Preferences database connected", zap.Int32("max_conns", poolCfg.MaxConns))
	return pool, nil
}

type postgresPreferenceRepo struct {
	db     *pgxpool.Pool
	logger logger.Logger
}

func NewPostgresPreferenceRepo(db *pgxpool.Pool, logger logger.Logger) preference.Repository {
	return &postgresPreferenceRepo{db: db, logger: logger}
}

var psqlPreference = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

func (r *postgresPreferenceRepo) Get(ctx context.Context, clientID uuid.UUID) (*preference.Preference, error) {
	query, args, err := psqlPreference.Select("client_id", "color_scheme", "updated_at").
		From("preferences").
		Where(sq.Eq{"client_id": clientID}).
		ToSql()
	if err != nil {
		return nil, apperror.NewInternal("failed to build preference query", err)
	}

	p := &preference.Preference{}
	var scheme string
	err = r.db.QueryRow(ctx, query, args...).Scan(&p.ClientID, &scheme, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperror.NewAppError(apperror.ErrNotFound, "preference not found", clientID.String(), preference.ErrNotFound)
		}
		return nil, apperror.NewInternal("failed to query preference", err)
	}

	p.ColorScheme, err = preference.ParseScheme(scheme)
	if err != nil {
		r.logger.Warn("Stored color scheme is invalid, fallback to light",
			zap.String("client_id", clientID.String()), zap.String("color_scheme", scheme))
		p.ColorScheme = preference.SchemeLight
	}
	return p, nil
}

func (r *postgresPreferenceRepo) Upsert(ctx context.Context, p *preference.Preference) error {
	query, args, err := psqlPreference.Insert("preferences").
		Columns("client_id", "color_scheme", "updated_at").
		Values(p.ClientID, string(p.ColorScheme), p.UpdatedAt).
		Suffix("ON CONFLICT (client_id) DO UPDATE SET color_scheme = EXCLUDED.color_scheme, updated_at = EXCLUDED.updated_at").
		ToSql()
	if err != nil {
		return apperror.NewInternal("failed to build preference upsert", err)
	}

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return apperror.NewInternal("failed to upsert preference", err)
	}
	return nil
}
