package deploy

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/internal/application/service"
	"github.com/khoahotran/portfolio-generator/internal/domain/wizard"
	"github.com/khoahotran/portfolio-generator/internal/render"
	"github.com/khoahotran/portfolio-generator/pkg/apperror"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
	"github.com/khoahotran/portfolio-generator/pkg/metrics"
)

var tracer = otel.Tracer("deploy_usecase")

type DeployUseCase struct {
	sessionRepo wizard.Repository
	queue       service.DeployQueue
	deployer    service.Deployer
	timeout     time.Duration
	logger      logger.Logger
	now         func() time.Time
}

func NewDeployUseCase(
	repo wizard.Repository,
	queue service.DeployQueue,
	deployer service.Deployer,
	timeout time.Duration,
	log logger.Logger,
) *DeployUseCase {
	return &DeployUseCase{
		sessionRepo: repo,
		queue:       queue,
		deployer:    deployer,
		timeout:     timeout,
		logger:      log,
		now:         func() time.Time { return time.Now().UTC() },
	}
}

// SetQueue lets the in-process queue be built after the use case, since its
// workers call back into ExecuteProcess.
func (uc *DeployUseCase) SetQueue(q service.DeployQueue) {
	uc.queue = q
}

type RequestInput struct {
	SessionID uuid.UUID
}

type StatusOutput struct {
	Deployment   wizard.Deployment
	Notification *service.Notification
}

const (
	// pendingGrace is added to the deploy timeout before a pending
	// deployment counts as lost.
	pendingGrace = 30 * time.Second
	// resultWriteTimeout bounds the final session write of a finished job.
	resultWriteTimeout = 5 * time.Second
)

var (
	errDeployInProgress = errors.New("deployment already in progress")
	errJobSuperseded    = errors.New("deploy job superseded")
)

func (uc *DeployUseCase) staleAfter() time.Duration {
	return uc.timeout + pendingGrace
}

// ExecuteRequest marks the session pending and queues the job. A session
// already pending is returned as is, unless the pending request is older than
// the deploy timeout plus a grace period, in which case it is queued again.
func (uc *DeployUseCase) ExecuteRequest(ctx context.Context, input RequestInput) (*StatusOutput, error) {
	ctx, span := tracer.Start(ctx, "RequestDeploy")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", input.SessionID.String()))

	now := uc.now()
	var current wizard.Deployment
	s, err := uc.sessionRepo.Update(ctx, input.SessionID, func(s *wizard.Session) error {
		if s.Deployment.InProgress(now, uc.staleAfter()) {
			current = s.Deployment
			return errDeployInProgress
		}
		if s.Deployment.State == wizard.DeployPending {
			uc.logger.Warn("Pending deployment went stale, requeueing", zap.String("session_id", s.ID.String()))
			metrics.Deploys.WithLabelValues("stale").Inc()
		}
		if err := s.Validate(); err != nil {
			return err
		}
		s.MarkDeployPending(now)
		return nil
	})
	if err != nil {
		var missing *wizard.MissingFieldsError
		switch {
		case errors.Is(err, errDeployInProgress):
			return &StatusOutput{Deployment: current, Notification: service.Info("Deployment already in progress")}, nil
		case errors.As(err, &missing):
			return nil, apperror.NewMissingFields(missing.Fields, err)
		}
		return nil, err
	}

	job := service.DeployJob{SessionID: s.ID, RequestedAt: now}
	if err := uc.queue.Enqueue(ctx, job); err != nil {
		span.RecordError(err)
		_ = uc.finish(ctx, job, func(s *wizard.Session) {
			s.MarkDeployFailed(err, uc.now())
		})
		metrics.Deploys.WithLabelValues("enqueue_failed").Inc()
		return nil, apperror.NewInternal("failed to queue deployment", err)
	}

	metrics.Deploys.WithLabelValues("requested").Inc()
	uc.logger.Info("Deployment requested", zap.String("session_id", s.ID.String()))
	return &StatusOutput{Deployment: s.Deployment, Notification: service.Info("Deploying your portfolio...")}, nil
}

// ExecuteProcess runs one queued job. Jobs for expired sessions, and jobs
// replaced by a newer request, are dropped. The result is applied to the
// session as stored when the deploy finishes, so edits made meanwhile stay.
func (uc *DeployUseCase) ExecuteProcess(ctx context.Context, job service.DeployJob) error {
	ctx, span := tracer.Start(ctx, "ProcessDeploy")
	defer span.End()
	span.SetAttributes(attribute.String("session_id", job.SessionID.String()))

	log := uc.logger.With(zap.String("session_id", job.SessionID.String()))

	s, err := uc.sessionRepo.FindByID(ctx, job.SessionID)
	if err != nil {
		if errors.Is(err, apperror.ErrNotFound) {
			log.Warn("Session gone before deploy, skipping")
			metrics.Deploys.WithLabelValues("skipped").Inc()
			return nil
		}
		return err
	}
	if !s.Deployment.Awaits(job.RequestedAt) {
		log.Info("Deploy job superseded, skipping")
		metrics.Deploys.WithLabelValues("skipped").Inc()
		return nil
	}

	url, deployErr := uc.deploy(ctx, s)
	result := "ready"
	if deployErr != nil {
		span.RecordError(deployErr)
		log.Error("Deployment failed", deployErr)
		result = "failed"
	}

	err = uc.finish(ctx, job, func(s *wizard.Session) {
		if deployErr != nil {
			s.MarkDeployFailed(deployErr, uc.now())
			return
		}
		s.MarkDeployed(url, uc.now())
	})
	switch {
	case errors.Is(err, errJobSuperseded), errors.Is(err, apperror.ErrNotFound):
		log.Info("Session changed hands during deploy, result dropped", zap.String("result", result))
		metrics.Deploys.WithLabelValues("skipped").Inc()
		return nil
	case err != nil:
		return err
	}

	if deployErr == nil {
		log.Info("Deployment ready", zap.String("url", url))
	}
	metrics.Deploys.WithLabelValues(result).Inc()
	return nil
}

// finish records a job outcome on the fresh session. It outlives a cancelled
// ctx so a job that did run is not left pending.
func (uc *DeployUseCase) finish(ctx context.Context, job service.DeployJob, apply func(*wizard.Session)) error {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), resultWriteTimeout)
	defer cancel()

	_, err := uc.sessionRepo.Update(ctx, job.SessionID, func(s *wizard.Session) error {
		if !s.Deployment.Awaits(job.RequestedAt) {
			return errJobSuperseded
		}
		apply(s)
		return nil
	})
	if err != nil && !errors.Is(err, errJobSuperseded) {
		uc.logger.Warn("Failed to record deploy result", zap.String("session_id", job.SessionID.String()), zap.Error(err))
	}
	return err
}

func (uc *DeployUseCase) deploy(ctx context.Context, s *wizard.Session) (string, error) {
	doc, err := render.Document(s.Profile(), s.ProjectList(), s.Theme)
	if err != nil {
		return "", err
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}
	return uc.deployer.Deploy(ctx, s.Details.FullName, []byte(doc))
}

type StatusInput struct {
	SessionID uuid.UUID
}

func (uc *DeployUseCase) ExecuteStatus(ctx context.Context, input StatusInput) (*StatusOutput, error) {
	s, err := uc.sessionRepo.FindByID(ctx, input.SessionID)
	if err != nil {
		return nil, err
	}

	out := &StatusOutput{Deployment: s.Deployment}
	switch s.Deployment.State {
	case wizard.DeployReady:
		out.Notification = service.Success("Portfolio deployed successfully! Your site is live at: " + s.Deployment.URL)
	case wizard.DeployFailed:
		out.Notification = &service.Notification{Level: service.LevelError, Message: "Deployment failed: " + s.Deployment.Error}
	}
	return out, nil
}
