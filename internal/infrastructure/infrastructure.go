// Package infrastructure provides core service initialization for application startup.
// It assembles common dependencies (logging, staging, agent config) that domain systems require.
package infrastructure

import (
	"fmt"
	"log/slog"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"

	"github.com/recaplabs/recap/internal/config"
	"github.com/recaplabs/recap/pkg/lifecycle"
	"github.com/recaplabs/recap/pkg/staging"
)

// Infrastructure holds the core systems required by all domain modules.
// It provides a single point of initialization for lifecycle coordination,
// logging, file staging, and the captioning agent configuration.
type Infrastructure struct {
	Lifecycle *lifecycle.Coordinator
	Logger    *slog.Logger
	Staging   staging.System
	Agent     gaconfig.AgentConfig
}

// New creates an Infrastructure from the application configuration.
// It initializes all systems but does not start them; call Start separately.
func New(cfg *config.Config) *Infrastructure {
	lc := lifecycle.New()
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))

	return &Infrastructure{
		Lifecycle: lc,
		Logger:    logger,
		Staging:   staging.New(&cfg.Staging, logger),
		Agent:     cfg.Captioner,
	}
}

// Start registers all infrastructure systems with the lifecycle coordinator.
// The staging hook creates the staging directory and sweeps stale files on startup.
func (i *Infrastructure) Start() error {
	if err := i.Staging.Start(i.Lifecycle); err != nil {
		return fmt.Errorf("staging start failed: %w", err)
	}
	return nil
}
