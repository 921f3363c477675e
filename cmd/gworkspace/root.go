package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-workspace-cli/authflow"
	"github.com/jrsteele09/go-workspace-cli/internal/config"
	"github.com/jrsteele09/go-workspace-cli/workspace"
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
		Use:          "gworkspace",
		Short:        "Google Workspace from the command line: Calendar, Drive, Meet transcripts",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.clientID, "client-id", "", "OAuth2 client ID (env GOOGLE_CLIENT_ID)")
	root.PersistentFlags().StringVar(&opts.clientSecret, "client-secret", "", "OAuth2 client secret (env GOOGLE_CLIENT_SECRET)")
	root.PersistentFlags().StringVar(&opts.refreshToken, "refresh-token", "", "refresh token (env GOOGLE_REFRESH_TOKEN)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	addCalendarCommands(root, opts)
	addDriveCommands(root, opts)
	addTranscriptCommands(root, opts)
	return root
}

// client builds the Workspace API client from config and flags.
func client(cmd *cobra.Command, opts *rootOptions) (*workspace.Client, error) {
	cfg, err := config.LoadGoogle()
	if err != nil {
		return nil, err
	}
	config.Override(&cfg.ClientID, opts.clientID)
	config.Override(&cfg.ClientSecret, opts.clientSecret)
	config.Override(&cfg.RefreshToken, opts.refreshToken)
	if err := cfg.RequireRefresh(); err != nil {
		return nil, err
	}
	creds := authflow.Credentials{ClientID: cfg.ClientID, ClientSecret: cfg.ClientSecret}
	return workspace.New(cmd.Context(), creds, cfg.RefreshToken, authflow.GoogleEndpoint(), newLogger(opts.verbose)), nil
}

// printRaw re-indents an API response for the terminal.
func printRaw(w io.Writer, raw json.RawMessage) error {
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}

func printJSON(w io.Writer, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}
