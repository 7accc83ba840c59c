package api

import (
	"github.com/recaplabs/recap/internal/captioner"
	"github.com/recaplabs/recap/internal/captions"
	"github.com/recaplabs/recap/internal/config"
	"github.com/recaplabs/recap/internal/enhancer"
	"github.com/recaplabs/recap/internal/workflow"
)

// Domain holds all domain systems that comprise the API.
type Domain struct {
	Captions captions.System
	Enhancer enhancer.System
}

// NewDomain creates all domain systems from the API runtime.
func NewDomain(cfg *config.Config, runtime *Runtime) *Domain {
	enhancerSystem := enhancer.New(
		&cfg.Enhancer,
		runtime.Logger.With("system", "enhancer"),
	)

	captionerAgent := captioner.New(
		runtime.Agent,
		runtime.Logger.With("system", "captioner"),
	)

	workflowRuntime := &workflow.Runtime{
		Captioner: captionerAgent,
		Enhancer:  enhancerSystem,
		Logger:    runtime.Logger.With("system", "workflow"),
	}

	captionsSystem := captions.New(
		workflowRuntime,
		runtime.Staging,
		runtime.Logger,
	)

	return &Domain{
		Captions: captionsSystem,
		Enhancer: enhancerSystem,
	}
}
