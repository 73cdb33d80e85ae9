package wizard

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/internal/application/service"
	"github.com/khoahotran/portfolio-generator/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-generator/internal/render"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/metrics"
)

type RenderInput struct {
	Variant  render.Variant
	Profile  portfolio.UserProfile
	Projects []portfolio.Project
	Theme    portfolio.Theme
}

type RenderOutput struct {
	HTML string
}

// ExecuteRender renders a profile that is not tied to any session.
func (uc *WizardUseCase) ExecuteRender(ctx context.Context, input RenderInput) (*RenderOutput, error) {
	_, span := tracer.Start(ctx, "Render")
	defer span.End()
	span.SetAttributes(
		attribute.String("variant", string(input.Variant)),
		attribute.String("theme", string(input.Theme)),
	)

	html, err := renderProfile(input.Variant, input.Profile, input.Projects, input.Theme)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &RenderOutput{HTML: html}, nil
}

func renderProfile(variant render.Variant, p portfolio.UserProfile, projects []portfolio.Project, theme portfolio.Theme) (string, error) {
	html, err := render.Render(variant, p, projects, theme)
	if err != nil {
		switch {
		case errors.Is(err, portfolio.ErrInvalidTheme), errors.Is(err, render.ErrInvalidVariant):
			return "", apperror.NewInvalidInput(err.Error(), err)
		}
		return "", apperror.NewInternal("failed to render portfolio", err)
	}
	metrics.PortfoliosRendered.WithLabelValues(string(variant), string(theme)).Inc()
	metrics.RenderBytes.WithLabelValues(string(variant)).Observe(float64(len(html)))
	return html, nil
}

type PreviewInput struct {
	SessionID uuid.UUID
}

type PreviewOutput struct {
	HTML         string
	Notification *service.Notification
}

func (uc *WizardUseCase) ExecutePreview(ctx context.Context, input PreviewInput) (*PreviewOutput, error) {
	ctx, span := tracer.Start(ctx, "Preview")
	defer span.End()

	s, err := uc.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	html, err := renderProfile(render.VariantPreview, s.Profile(), s.ProjectList(), s.Theme)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	return &PreviewOutput{
		HTML:         html,
		Notification: service.Success("Preview generated successfully!"),
	}, nil
}

type DownloadInput struct {
	SessionID uuid.UUID
}

type DownloadOutput struct {
	Filename     string
	HTML         string
	Notification *service.Notification
}

// ExecuteDownload renders the standalone document. Required details must be
// filled in first.
func (uc *WizardUseCase) ExecuteDownload(ctx context.Context, input DownloadInput) (*DownloadOutput, error) {
	ctx, span := tracer.Start(ctx, "Download")
	defer span.End()

	s, err := uc.load(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, toAppError(err)
	}

	html, err := renderProfile(render.VariantDocument, s.Profile(), s.ProjectList(), s.Theme)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}

	uc.logger.Info("Portfolio document generated",
		zap.String("session_id", s.ID.String()),
		zap.Int("bytes", len(html)),
	)
	return &DownloadOutput{
		Filename:     DownloadFilename(s.Details.FullName),
		HTML:         html,
		Notification: service.Success("Portfolio downloaded successfully!"),
	}, nil
}

// DownloadFilename is "<slug>-portfolio.html", or "portfolio.html" when the
// name has no usable characters.
func DownloadFilename(fullName string) string {
	slug := portfolio.Slug(fullName)
	if slug == "" {
		return "portfolio.html"
	}
	return slug + "-portfolio.html"
}
