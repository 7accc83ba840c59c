package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvCaptionerProviderName = "RECAP_CAPTIONER_PROVIDER_NAME"
	EnvCaptionerBaseURL      = "RECAP_CAPTIONER_BASE_URL"
	EnvCaptionerToken        = "RECAP_CAPTIONER_TOKEN"
	EnvCaptionerDeployment   = "RECAP_CAPTIONER_DEPLOYMENT"
	EnvCaptionerAPIVersion   = "RECAP_CAPTIONER_API_VERSION"
	EnvCaptionerAuthType     = "RECAP_CAPTIONER_AUTH_TYPE"
	EnvCaptionerModelName    = "RECAP_CAPTIONER_MODEL_NAME"
)

// FinalizeCaptioner applies the three-phase finalize pattern to the go-agents
// AgentConfig backing the captioner: defaults from go-agents DefaultAgentConfig,
// environment variable overrides, and validation.
func FinalizeCaptioner(c *gaconfig.AgentConfig) error {
	loadCaptionerDefaults(c)
	loadCaptionerEnv(c)
	return validateCaptioner(c)
}

func loadCaptionerDefaults(c *gaconfig.AgentConfig) {
	defaults := gaconfig.DefaultAgentConfig()
	defaults.Merge(c)
	*c = defaults

	if c.Name == "" {
		c.Name = "recap-captioner"
	}
}

func loadCaptionerEnv(c *gaconfig.AgentConfig) {
	if c.Provider == nil {
		c.Provider = &gaconfig.ProviderConfig{}
	}
	if c.Provider.Options == nil {
		c.Provider.Options = make(map[string]any)
	}
	if c.Model == nil {
		c.Model = &gaconfig.ModelConfig{}
	}
	if v := os.Getenv(EnvCaptionerProviderName); v != "" {
		c.Provider.Name = v
	}
	if v := os.Getenv(EnvCaptionerBaseURL); v != "" {
		c.Provider.BaseURL = v
	}
	if v := os.Getenv(EnvCaptionerModelName); v != "" {
		c.Model.Name = v
	}

	setOption := func(envVar, key string) {
		if v := os.Getenv(envVar); v != "" {
			c.Provider.Options[key] = v
		}
	}

	setOption(EnvCaptionerToken, "token")
	setOption(EnvCaptionerDeployment, "deployment")
	setOption(EnvCaptionerAPIVersion, "api_version")
	setOption(EnvCaptionerAuthType, "auth_type")
}

func validateCaptioner(c *gaconfig.AgentConfig) error {
	if c.Name == "" {
		return fmt.Errorf("name required")
	}
	if c.Provider == nil {
		return fmt.Errorf("provider required")
	}
	if c.Provider.Name == "" {
		return fmt.Errorf("provider name required")
	}
	if c.Model == nil {
		return fmt.Errorf("model required")
	}
	return nil
}
