// Package config loads CLI configuration from the environment, with an
// optional .env file and flag overrides layered on top.
package config

import (
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// Google holds the Workspace OAuth client settings.
type Google struct {
	ClientID     string `env:"GOOGLE_CLIENT_ID"`
	ClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	RefreshToken string `env:"GOOGLE_REFRESH_TOKEN"`
}

// Atlassian holds the Jira/Confluence site and API token settings.
type Atlassian struct {
	Domain   string `env:"JIRA_DOMAIN"`
	Email    string `env:"JIRA_EMAIL"`
	APIToken string `env:"JIRA_API_TOKEN"`
}

// LoadGoogle reads Google settings from a .env file (if present) and the
// process environment.
func LoadGoogle() (Google, error) {
	_ = godotenv.Load()
	var cfg Google
	if err := env.Parse(&cfg); err != nil {
		return Google{}, fmt.Errorf("parsing environment: %w", err)
	}
	return cfg, nil
}

// LoadAtlassian reads Atlassian settings the same way.
func LoadAtlassian() (Atlassian, error) {
	_ = godotenv.Load()
	var cfg Atlassian
	if err := env.Parse(&cfg); err != nil {
		return Atlassian{}, fmt.Errorf("parsing environment: %w", err)
	}
	cfg.Domain = strings.TrimRight(cfg.Domain, "/")
	return cfg, nil
}

// Override replaces *dst with flagValue when the flag was set. Flags win
// over environment values.
func Override(dst *string, flagValue string) {
	if flagValue != "" {
		*dst = flagValue
	}
}

// RequireClient checks the fields every gauth command needs.
func (g Google) RequireClient() error {
	var missing []string
	if g.ClientID == "" {
		missing = append(missing, "--client-id (GOOGLE_CLIENT_ID)")
	}
	if g.ClientSecret == "" {
		missing = append(missing, "--client-secret (GOOGLE_CLIENT_SECRET)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

// RequireRefresh checks the fields the API client needs on top of the
// OAuth client pair.
func (g Google) RequireRefresh() error {
	if err := g.RequireClient(); err != nil {
		return err
	}
	if g.RefreshToken == "" {
		return fmt.Errorf("missing required configuration: --refresh-token (GOOGLE_REFRESH_TOKEN)")
	}
	return nil
}

// Require checks that all Atlassian fields are present.
func (a Atlassian) Require() error {
	var missing []string
	if a.Domain == "" {
		missing = append(missing, "--domain (JIRA_DOMAIN)")
	}
	if a.Email == "" {
		missing = append(missing, "--email (JIRA_EMAIL)")
	}
	if a.APIToken == "" {
		missing = append(missing, "--api-token (JIRA_API_TOKEN)")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}
