package commands

import (
	"context"

	"go.uber.org/zap"

	"github.com/jakechorley/stream-rota/internal/config"
	"github.com/jakechorley/stream-rota/pkg/clients/daysoffclient"
	"github.com/jakechorley/stream-rota/pkg/core/services"
)

// AppContext holds the application dependencies shared across all commands
type AppContext struct {
	Cfg           *config.Config
	DaysOffClient *daysoffclient.Client
	Logger        *zap.Logger
	Ctx           context.Context
}

// daysOffSource returns a client for path, falling back to the configured client
func (app *AppContext) daysOffSource(path string) services.DaysOffClient {
	if path != "" {
		return daysoffclient.NewClient(path)
	}
	return app.DaysOffClient
}
