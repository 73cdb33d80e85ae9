package deploy

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/portfolio-generator/internal/config"
	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

func testConfig(delay time.Duration) config.Config {
	var cfg config.Config
	cfg.Deploy.Delay = delay
	cfg.Deploy.BaseDomain = "replit.app"
	return cfg
}

func TestSimulatedDeployer_URL(t *testing.T) {
	d := NewSimulatedDeployer(testConfig(time.Millisecond), logger.NewNop())

	url, err := d.Deploy(context.Background(), "  Jane  Q. Doe", []byte("<html></html>"))
	require.NoError(t, err)
	assert.Equal(t, "https://jane-q-doe.replit.app", url)
}

func TestSimulatedDeployer_EmptySubdomain(t *testing.T) {
	d := NewSimulatedDeployer(testConfig(0), logger.NewNop())

	_, err := d.Deploy(context.Background(), "???", nil)
	assert.ErrorIs(t, err, ErrEmptySubdomain)
}

func TestSimulatedDeployer_Cancelled(t *testing.T) {
	d := NewSimulatedDeployer(testConfig(time.Minute), logger.NewNop())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := d.Deploy(ctx, "Jane", nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}
