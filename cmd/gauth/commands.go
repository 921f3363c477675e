package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/common-nighthawk/go-figure"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-workspace-cli/authflow"
	"github.com/jrsteele09/go-workspace-cli/internal/config"
)

type rootOptions struct {
	clientID     string
	clientSecret string
	refreshToken string
	verbose      bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "gauth",
		Short:         "Mint and refresh Google Workspace OAuth2 tokens",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.clientID, "client-id", "", "OAuth2 client ID (env GOOGLE_CLIENT_ID)")
	root.PersistentFlags().StringVar(&opts.clientSecret, "client-secret", "", "OAuth2 client secret (env GOOGLE_CLIENT_SECRET)")
	root.PersistentFlags().StringVar(&opts.refreshToken, "refresh-token", "", "refresh token (env GOOGLE_REFRESH_TOKEN)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	root.AddCommand(newLoginCmd(opts))
	root.AddCommand(newRefreshCmd(opts))
	root.AddCommand(newTokenCmd(opts))
	root.AddCommand(newInspectCmd())
	return root
}

// loadGoogle merges environment configuration with the root flags.
func loadGoogle(opts *rootOptions) (config.Google, error) {
	cfg, err := config.LoadGoogle()
	if err != nil {
		return config.Google{}, err
	}
	config.Override(&cfg.ClientID, opts.clientID)
	config.Override(&cfg.ClientSecret, opts.clientSecret)
	config.Override(&cfg.RefreshToken, opts.refreshToken)
	return cfg, nil
}

func newLoginCmd(opts *rootOptions) *cobra.Command {
	var (
		port   int
		scopes []string
	)
	cmd := &cobra.Command{
		Use:   "login",
		Short: "Run the interactive browser authorization flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadGoogle(opts)
			if err != nil {
				return err
			}
			if err := cfg.RequireClient(); err != nil {
				return err
			}
			log := newLogger(opts.verbose)
			out := cmd.OutOrStdout()

			figure.NewFigure("gauth", "cybermedium", true).Print()
			fmt.Fprintln(out)

			flow := &authflow.Flow{
				Credentials: authflow.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret},
				Endpoint:    authflow.DiscoverEndpoint(cmd.Context(), authflow.GoogleIssuer, log),
				Scopes:      scopes,
				Port:        port,
				Out:         out,
				Log:         log,
			}
			tokens, err := flow.Run(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Fprintln(out)
			fmt.Fprintln(out, strings.Repeat("=", 50))
			fmt.Fprintln(out, "[OK] Authorization successful!")
			fmt.Fprintln(out, strings.Repeat("=", 50))
			if err := printJSON(out, tokens); err != nil {
				return err
			}
			if tokens.RefreshToken != "" {
				fmt.Fprintln(out)
				fmt.Fprintln(out, "[!] Save the refresh_token above; it is shown only once.")
				fmt.Fprintf(out, "Refresh Token:\n%s\n", tokens.RefreshToken)
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&port, "port", authflow.DefaultPort, "local callback port")
	cmd.Flags().StringSliceVar(&scopes, "scope", authflow.DefaultScopes, "OAuth2 scopes to request")
	return cmd
}

func newRefreshCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "refresh",
		Short: "Exchange the refresh token for a fresh token set",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := refresh(cmd, opts)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), tokens)
		},
	}
}

func newTokenCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "token",
		Short: "Print a bare access token, for shell substitution",
		RunE: func(cmd *cobra.Command, args []string) error {
			tokens, err := refresh(cmd, opts)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), tokens.AccessToken)
			return nil
		},
	}
}

func refresh(cmd *cobra.Command, opts *rootOptions) (*authflow.TokenSet, error) {
	cfg, err := loadGoogle(opts)
	if err != nil {
		return nil, err
	}
	if err := cfg.RequireRefresh(); err != nil {
		return nil, err
	}
	creds := authflow.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret}
	return authflow.NewExchanger(creds, authflow.GoogleEndpoint()).Refresh(cmd.Context(), cfg.RefreshToken)
}

func newInspectCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <jwt>",
		Short: "Decode a JWT's header and claims without verifying it",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, _, err := jwt.NewParser().ParseUnverified(args[0], jwt.MapClaims{})
			if err != nil {
				return fmt.Errorf("decoding token: %w", err)
			}
			return printJSON(cmd.OutOrStdout(), map[string]any{
				"header": token.Header,
				"claims": token.Claims,
			})
		},
	}
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
