package persistence

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/khoahotran/portfolio-generator/pkg/logger"
)

func TestOpenPreferencePool_BadDSN(t *testing.T) {
	pool, err := OpenPreferencePool(context.Background(), "postgres://app@localhost:notaport/portfolio", logger.NewNop())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parse preferences DSN")
	assert.Nil(t, pool)
}
