package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/internal/application/service"
	"github.com/khoahotran/portfolio-generator/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-generator/internal/domain/wizard"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
	"github.com/khoahotran/portfolio-generator/pkg/metrics"
)

var tracer = otel.Tracer("wizard_usecase")

type WizardUseCase struct {
	sessionRepo   wizard.Repository
	maxImageBytes int64
	logger        logger.Logger
	now           func() time.Time
}

func NewWizardUseCase(repo wizard.Repository, maxImageBytes int64, log logger.Logger) *WizardUseCase {
	return &WizardUseCase{
		sessionRepo:   repo,
		maxImageBytes: maxImageBytes,
		logger:        log,
		now:           func() time.Time { return time.Now().UTC() },
	}
}

type SessionOutput struct {
	Session      *wizard.Session
	Notification *service.Notification
}

// toAppError maps wizard and portfolio sentinels onto apperror kinds.
func toAppError(err error) error {
	var missing *wizard.MissingFieldsError
	var appErr *apperror.AppError
	switch {
	case err == nil:
		return nil
	case errors.As(err, &appErr):
		return err
	case errors.As(err, &missing):
		return apperror.NewMissingFields(missing.Fields, err)
	case errors.Is(err, wizard.ErrPremiumTemplate):
		return apperror.NewPremiumRequired(err.Error(), err)
	case errors.Is(err, wizard.ErrInvalidStep),
		errors.Is(err, wizard.ErrUnknownTemplate),
		errors.Is(err, wizard.ErrTemplateRequired),
		errors.Is(err, portfolio.ErrInvalidTheme),
		errors.Is(err, portfolio.ErrInvalidImage):
		return apperror.NewInvalidInput(err.Error(), err)
	}
	return apperror.NewInternal("wizard operation failed", err)
}

func (uc *WizardUseCase) load(ctx context.Context, id uuid.UUID) (*wizard.Session, error) {
	s, err := uc.sessionRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return s, nil
}

func (uc *WizardUseCase) ExecuteCreateSession(ctx context.Context) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "CreateSession")
	defer span.End()

	s := wizard.NewSession(uc.now())
	if err := uc.sessionRepo.Save(ctx, s); err != nil {
		span.RecordError(err)
		return nil, fmt.Errorf("create session failed: %w", err)
	}
	span.SetAttributes(attribute.String("session_id", s.ID.String()))
	uc.logger.Info("Wizard session created", zap.String("session_id", s.ID.String()))
	return &SessionOutput{Session: s}, nil
}

type GetSessionInput struct {
	SessionID uuid.UUID
}

func (uc *WizardUseCase) ExecuteGetSession(ctx context.Context, input GetSessionInput) (*SessionOutput, error) {
	s, err := uc.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Session: s}, nil
}

type SelectTemplateInput struct {
	SessionID uuid.UUID
	Template  string
}

// ExecuteSelectTemplate stores the choice even for premium templates, then
// reports the premium error so the caller can offer the upgrade.
func (uc *WizardUseCase) ExecuteSelectTemplate(ctx context.Context, input SelectTemplateInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "SelectTemplate")
	defer span.End()

	var premiumErr error
	s, err := uc.sessionRepo.Update(ctx, input.SessionID, func(s *wizard.Session) error {
		premiumErr = nil
		err := s.SelectTemplate(input.Template, uc.now())
		if errors.Is(err, wizard.ErrPremiumTemplate) {
			premiumErr = err
			return nil
		}
		return err
	})
	if err != nil {
		return nil, toAppError(err)
	}
	if premiumErr != nil {
		span.SetAttributes(attribute.Bool("premium", true))
		return nil, toAppError(premiumErr)
	}
	return &SessionOutput{Session: s, Notification: service.Success("Template selected")}, nil
}

type UpdateDetailsInput struct {
	SessionID uuid.UUID
	Details   wizard.Details
}

func (uc *WizardUseCase) ExecuteUpdateDetails(ctx context.Context, input UpdateDetailsInput) (*SessionOutput, error) {
	s, err := uc.sessionRepo.Update(ctx, input.SessionID, func(s *wizard.Session) error {
		s.UpdateDetails(input.Details, uc.now())
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &SessionOutput{Session: s, Notification: service.Success("Details saved")}, nil
}

type CustomizeInput struct {
	SessionID       uuid.UUID
	Theme           string
	IncludeProjects bool
	IncludeResume   bool
	Projects        []portfolio.Project
}

// ExecuteCustomize keeps the current theme when input.Theme is empty.
func (uc *WizardUseCase) ExecuteCustomize(ctx context.Context, input CustomizeInput) (*SessionOutput, error) {
	var theme portfolio.Theme
	if input.Theme != "" {
		t, err := portfolio.ParseTheme(input.Theme)
		if err != nil {
			return nil, toAppError(err)
		}
		theme = t
	}

	s, err := uc.sessionRepo.Update(ctx, input.SessionID, func(s *wizard.Session) error {
		next := theme
		if next == "" {
			next = s.Theme
		}
		return s.Customize(next, input.IncludeProjects, input.IncludeResume, input.Projects, uc.now())
	})
	if err != nil {
		return nil, toAppError(err)
	}
	return &SessionOutput{Session: s, Notification: service.Success("Customization saved")}, nil
}

type GoToStepInput struct {
	SessionID uuid.UUID
	Step      int
}

// stepLabel keeps the step metric to the four wizard steps.
func stepLabel(step wizard.Step) string {
	if !step.Valid() {
		return "invalid"
	}
	return strconv.Itoa(int(step))
}

func (uc *WizardUseCase) ExecuteGoToStep(ctx context.Context, input GoToStepInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "GoToStep")
	defer span.End()
	span.SetAttributes(attribute.Int("step", input.Step))

	step := wizard.Step(input.Step)
	label := stepLabel(step)

	s, err := uc.sessionRepo.Update(ctx, input.SessionID, func(s *wizard.Session) error {
		return s.GoToStep(step, uc.now())
	})
	if err != nil {
		var appErr *apperror.AppError
		if errors.As(err, &appErr) {
			return nil, err
		}
		metrics.WizardSteps.WithLabelValues(label, "rejected").Inc()
		span.RecordError(err)
		return nil, toAppError(err)
	}
	metrics.WizardSteps.WithLabelValues(label, "ok").Inc()
	return &SessionOutput{Session: s, Notification: service.Info(fmt.Sprintf("Step %d of %d", step, wizard.StepPublish))}, nil
}
