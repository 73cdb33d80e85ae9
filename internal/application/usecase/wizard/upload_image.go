package wizard

import (
	"context"
	"encoding/base64"
	"fmt"
	"io"

	"github.com/gabriel-vasile/mimetype"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/internal/application/service"
	"github.com/khoahotran/portfolio-generator/internal/domain/wizard"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
)

var allowedImageTypes = []string{"image/png", "image/jpeg", "image/gif", "image/webp", "image/svg+xml"}

type UploadImageInput struct {
	SessionID uuid.UUID
	File      io.Reader
}

// ExecuteUploadImage sniffs the upload, inlines it as a base64 data URI and
// stores it on the session. Nothing is written outside the session.
func (uc *WizardUseCase) ExecuteUploadImage(ctx context.Context, input UploadImageInput) (*SessionOutput, error) {
	ctx, span := tracer.Start(ctx, "UploadImage")
	defer span.End()

	if _, err := uc.load(ctx, input.SessionID); err != nil {
		return nil, err
	}

	data, err := io.ReadAll(io.LimitReader(input.File, uc.maxImageBytes+1))
	if err != nil {
		return nil, apperror.NewInvalidInput("failed to read uploaded image", err)
	}
	if int64(len(data)) > uc.maxImageBytes {
		return nil, apperror.NewTooLarge(fmt.Sprintf("image exceeds %d bytes", uc.maxImageBytes))
	}
	if len(data) == 0 {
		return nil, apperror.NewInvalidInput("uploaded image is empty", nil)
	}

	mtype := mimetype.Detect(data)
	span.SetAttributes(attribute.String("mime", mtype.String()), attribute.Int("bytes", len(data)))
	if !mimetype.EqualsAny(mtype.String(), allowedImageTypes...) {
		return nil, apperror.NewInvalidInput(fmt.Sprintf("unsupported image type %s", mtype.String()), nil)
	}

	// Detected types can carry parameters (e.g. charset), keep only the media type.
	media := allowedMediaType(mtype)
	uri := "data:" + media + ";base64," + base64.StdEncoding.EncodeToString(data)
	s, err := uc.sessionRepo.Update(ctx, input.SessionID, func(s *wizard.Session) error {
		return s.SetProfileImage(uri, uc.now())
	})
	if err != nil {
		return nil, toAppError(err)
	}

	uc.logger.Debug("Profile image stored", zap.String("session_id", s.ID.String()), zap.String("mime", media))
	return &SessionOutput{Session: s, Notification: service.Success("Profile image uploaded")}, nil
}

func allowedMediaType(m *mimetype.MIME) string {
	for _, t := range allowedImageTypes {
		if m.Is(t) {
			return t
		}
	}
	return m.String()
}
