package server

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"user-service/cmd/api/di"
	ginhandler "user-service/internal/adapter/gin/handler"
	"user-service/internal/config"
)

func TestServer_StartStopsOnCancel(t *testing.T) {
	log := zaptest.NewLogger(t)

	cfg := &config.Config{}
	cfg.App.GRPCPort = "0"
	cfg.App.HTTPPort = "0"
	cfg.App.ShutdownTimeoutSeconds = 1

	srv := New(cfg, log, &di.Container{GinHandler: ginhandler.NewUserHandler(nil, log)})

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Start(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}

func TestServer_StartFailsOnBadAddress(t *testing.T) {
	log := zaptest.NewLogger(t)

	cfg := &config.Config{}
	cfg.App.GRPCPort = "not-a-port"
	cfg.App.HTTPPort = "0"
	cfg.App.ShutdownTimeoutSeconds = 1

	srv := New(cfg, log, &di.Container{GinHandler: ginhandler.NewUserHandler(nil, log)})

	err := srv.Start(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to listen")
}
