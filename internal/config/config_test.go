package config

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadGoogle(t *testing.T) {
	t.Setenv("GOOGLE_CLIENT_ID", "id")
	t.Setenv("GOOGLE_CLIENT_SECRET", "secret")
	t.Setenv("GOOGLE_REFRESH_TOKEN", "rt")

	cfg, err := LoadGoogle()
	require.NoError(t, err)
	require.Equal(t, "id", cfg.ClientID)
	require.Equal(t, "secret", cfg.ClientSecret)
	require.Equal(t, "rt", cfg.RefreshToken)
}

func TestLoadAtlassianTrimsDomain(t *testing.T) {
	t.Setenv("JIRA_DOMAIN", "https://acme.atlassian.net/")
	t.Setenv("JIRA_EMAIL", "me@example.com")
	t.Setenv("JIRA_API_TOKEN", "token")

	cfg, err := LoadAtlassian()
	require.NoError(t, err)
	require.Equal(t, "https://acme.atlassian.net", cfg.Domain)
}

func TestOverride(t *testing.T) {
	v := "from-env"
	Override(&v, "")
	require.Equal(t, "from-env", v)
	Override(&v, "from-flag")
	require.Equal(t, "from-flag", v)
}

func TestGoogleRequire(t *testing.T) {
	t.Run("all present", func(t *testing.T) {
		cfg := Google{ClientID: "id", ClientSecret: "secret", RefreshToken: "rt"}
		require.NoError(t, cfg.RequireClient())
		require.NoError(t, cfg.RequireRefresh())
	})

	t.Run("missing client pair", func(t *testing.T) {
		err := Google{}.RequireClient()
		require.Error(t, err)
		require.Contains(t, err.Error(), "--client-id (GOOGLE_CLIENT_ID)")
		require.Contains(t, err.Error(), "--client-secret (GOOGLE_CLIENT_SECRET)")
	})

	t.Run("missing refresh token", func(t *testing.T) {
		cfg := Google{ClientID: "id", ClientSecret: "secret"}
		err := cfg.RequireRefresh()
		require.Error(t, err)
		require.Contains(t, err.Error(), "--refresh-token (GOOGLE_REFRESH_TOKEN)")
	})
}

func TestAtlassianRequire(t *testing.T) {
	err := Atlassian{Email: "me@example.com"}.Require()
	require.Error(t, err)
	require.Contains(t, err.Error(), "--domain (JIRA_DOMAIN)")
	require.Contains(t, err.Error(), "--api-token (JIRA_API_TOKEN)")
	require.NotContains(t, err.Error(), "--email")
}
