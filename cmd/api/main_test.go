package main

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/spec-kit/launch-watch/internal/config"
	"github.com/spec-kit/launch-watch/internal/persistence"
)

func TestRunReturnsStorageErrors(t *testing.T) {
	cfg := &config.Config{Sheet: config.SheetConfig{Backend: config.SheetBackendPostgres, Name: "Sheet1"}}

	err := run(cfg, zap.NewNop())
	require.ErrorIs(t, err, persistence.ErrNoDSN)
}

func TestRunReturnsListenErrors(t *testing.T) {
	cfg := &config.Config{
		App:   config.AppConfig{Name: "test", Host: "127.0.0.1", Port: "-1"},
		Sheet: config.SheetConfig{Backend: config.SheetBackendMemory, Name: "Sheet1"},
		CORS:  config.CORSConfig{AllowOrigins: "*"},
	}

	require.Error(t, run(cfg, zap.NewNop()))
}
