package deploy

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/portfolio-generator/internal/application/service"
	"github.com/khoahotran/portfolio-generator/internal/config"
	"github.com/khoahotran/portfolio-generator/internal/domain/portfolio"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

var ErrEmptySubdomain = errors.New("name does not produce a usable subdomain")

// simulatedDeployer pretends to publish: it waits, then hands back a
// subdomain URL derived from the owner's name. Nothing leaves the process.
type simulatedDeployer struct {
	delay      time.Duration
	baseDomain string
	logger     logger.Logger
}

func NewSimulatedDeployer(cfg config.Config, log logger.Logger) service.Deployer {
	return &simulatedDeployer{
		delay:      cfg.Deploy.Delay,
		baseDomain: cfg.Deploy.BaseDomain,
		logger:     log,
	}
}

func (d *simulatedDeployer) Deploy(ctx context.Context, fullName string, document []byte) (string, error) {
	subdomain := portfolio.Slug(fullName)
	if subdomain == "" {
		return "", fmt.Errorf("%w: %q", ErrEmptySubdomain, fullName)
	}

	if d.delay > 0 {
		timer := time.NewTimer(d.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", fmt.Errorf("deploy cancelled: %w", ctx.Err())
		case <-timer.C:
		}
	}

	url := fmt.Sprintf("https://%s.%s", subdomain, d.baseDomain)
	d.logger.Info("Simulated deployment finished",
		zap.String("url", url),
		zap.Int("document_bytes", len(document)),
	)
	return url, nil
}
