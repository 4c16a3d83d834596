package db

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/config"
)

func TestNewDB_UnreachableReturnsError(t *testing.T) {
	// port 1 refuses connections; the process must not exit
	cfg := &config.Config{DBUrl: "postgres://u:p@127.0.0.1:1/none?sslmode=disable&connect_timeout=2"}

	db, err := NewDB(cfg, zap.NewNop())
	require.Error(t, err)
	assert.Nil(t, db)
	assert.Contains(t, err.Error(), "connect database")
}
