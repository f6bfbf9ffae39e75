package config

import (
	"fmt"
	"os"

	gaconfig "github.com/JaimeStill/go-agents/pkg/config"
)

const (
	EnvAgentName         = "TRIAGE_AGENT_NAME"
	EnvAgentProviderName = "TRIAGE_AGENT_PROVIDER_NAME"
	EnvAgentBaseURL      = "TRIAGE_AGENT_BASE_URL"
	EnvAgentToken        = "TRIAGE_AGENT_TOKEN"
	EnvAgentDeployment   = "TRIAGE_AGENT_DEPLOYMENT"
	EnvAgentAPIVersion   = "TRIAGE_AGENT_API_VERSION"
	EnvAgentAuthType     = "TRIAGE_AGENT_AUTH_TYPE"
	EnvAgentModelName    = "TRIAGE_AGENT_MODEL_NAME"
)

// AgentConfig configures the optional language model agent used for vision
// extraction and semantic scoring. When no provider is configured the agent
// is disabled and only plain-text extraction and keyword scoring are
// available.
type AgentConfig struct {
	Name       string `toml:"name"`
	Provider   string `toml:"provider"`
	BaseURL    string `toml:"base_url"`
	Model      string `toml:"model"`
	Token      string `toml:"token"`
	Deployment string `toml:"deployment"`
	APIVersion string `toml:"api_version"`
	AuthType   string `toml:"auth_type"`
}

// Enabled reports whether an agent provider has been configured.
func (c *AgentConfig) Enabled() bool {
	return c.Provider != ""
}

// AgentConfig builds the go-agents configuration from the finalized values.
// It starts from the library defaults so the client timeout, retry, and
// connection pool settings stay populated, then overlays the provider and
// model fields configured here.
func (c *AgentConfig) AgentConfig() gaconfig.AgentConfig {
	built := gaconfig.DefaultAgentConfig()
	built.Name = c.Name

	provider := built.Client.Provider
	provider.Name = c.Provider
	provider.BaseURL = c.BaseURL
	provider.Model.Name = c.Model

	setOption := func(key, value string) {
		if value != "" {
			provider.Options[key] = value
		}
	}
	setOption("token", c.Token)
	setOption("deployment", c.Deployment)
	setOption("api_version", c.APIVersion)
	setOption("auth_type", c.AuthType)

	return built
}

// Finalize applies defaults, environment variable overrides, and validation.
// Validation only runs when a provider is configured.
func (c *AgentConfig) Finalize() error {
	c.loadDefaults()
	c.loadEnv()

	if !c.Enabled() {
		return nil
	}
	return c.validate()
}

// Merge overwrites non-zero fields from overlay.
func (c *AgentConfig) Merge(overlay *AgentConfig) {
	if overlay.Name != "" {
		c.Name = overlay.Name
	}
	if overlay.Provider != "" {
		c.Provider = overlay.Provider
	}
	if overlay.BaseURL != "" {
		c.BaseURL = overlay.BaseURL
	}
	if overlay.Model != "" {
		c.Model = overlay.Model
	}
	if overlay.Token != "" {
		c.Token = overlay.Token
	}
	if overlay.Deployment != "" {
		c.Deployment = overlay.Deployment
	}
	if overlay.APIVersion != "" {
		c.APIVersion = overlay.APIVersion
	}
	if overlay.AuthType != "" {
		c.AuthType = overlay.AuthType
	}
}

func (c *AgentConfig) loadDefaults() {
	if c.Name == "" {
		c.Name = "triage-agent"
	}
}

func (c *AgentConfig) loadEnv() {
	set := func(envVar string, target *string) {
		if v := os.Getenv(envVar); v != "" {
			*target = v
		}
	}

	set(EnvAgentName, &c.Name)
	set(EnvAgentProviderName, &c.Provider)
	set(EnvAgentBaseURL, &c.BaseURL)
	set(EnvAgentToken, &c.Token)
	set(EnvAgentDeployment, &c.Deployment)
	set(EnvAgentAPIVersion, &c.APIVersion)
	set(EnvAgentAuthType, &c.AuthType)
	set(EnvAgentModelName, &c.Model)
}

func (c *AgentConfig) validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("base_url required when provider is set")
	}
	if c.Model == "" {
		return fmt.Errorf("model required when provider is set")
	}
	return nil
}
