package preference

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/internal/domain/preference"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

type PreferenceUseCase struct {
	repo   preference.Repository
	logger logger.Logger
	now    func() time.Time
}

func NewPreferenceUseCase(repo preference.Repository, log logger.Logger) *PreferenceUseCase {
	return &PreferenceUseCase{repo: repo, logger: log, now: func() time.Time { return time.Now().UTC() }}
}

type Output struct {
	ColorScheme preference.ColorScheme `json:"color_scheme"`
}

// ExecuteGet falls back to light for clients that never chose.
func (uc *PreferenceUseCase) ExecuteGet(ctx context.Context, clientID uuid.UUID) (*Output, error) {
	scheme, err := uc.current(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return &Output{ColorScheme: scheme}, nil
}

func (uc *PreferenceUseCase) ExecuteSet(ctx context.Context, clientID uuid.UUID, scheme string) (*Output, error) {
	cs, err := preference.ParseScheme(scheme)
	if err != nil {
		return nil, apperror.NewInvalidInput(err.Error(), err)
	}
	return uc.save(ctx, clientID, cs)
}

func (uc *PreferenceUseCase) ExecuteToggle(ctx context.Context, clientID uuid.UUID) (*Output, error) {
	scheme, err := uc.current(ctx, clientID)
	if err != nil {
		return nil, err
	}
	return uc.save(ctx, clientID, scheme.Toggle())
}

func (uc *PreferenceUseCase) current(ctx context.Context, clientID uuid.UUID) (preference.ColorScheme, error) {
	p, err := uc.repo.Get(ctx, clientID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			return preference.SchemeLight, nil
		}
		return "", err
	}
	return p.ColorScheme, nil
}

func (uc *PreferenceUseCase) save(ctx context.Context, clientID uuid.UUID, cs preference.ColorScheme) (*Output, error) {
	p := &preference.Preference{ClientID: clientID, ColorScheme: cs, UpdatedAt: uc.now()}
	if err := uc.repo.Upsert(ctx, p); err != nil {
		return nil, err
	}
	uc.logger.Debug("Color scheme saved", zap.String("client_id", clientID.String()), zap.String("scheme", string(cs)))
	return &Output{ColorScheme: cs}, nil
}
