package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-workspace-cli/atlassian"
	"github.com/jrsteele09/go-workspace-cli/internal/config"
)

type rootOptions struct {
	domain   string
	email    string
	apiToken string
	verbose  bool
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:          "jira",
		Short:        "Jira Cloud and Confluence from the command line",
		SilenceUsage: true,
	}
	root.PersistentFlags().StringVar(&opts.domain, "domain", "", "site URL, e.g. https://your-domain.atlassian.net (env JIRA_DOMAIN)")
	root.PersistentFlags().StringVar(&opts.email, "email", "", "account email (env JIRA_EMAIL)")
	root.PersistentFlags().StringVar(&opts.apiToken, "api-token", "", "API token (env JIRA_API_TOKEN)")
	root.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "debug logging")

	addIssueCommands(root, opts)
	addMetaCommands(root, opts)
	addAgileCommands(root, opts)
	addConfluenceCommands(root, opts)
	return root
}

// client builds the Atlassian API client from config and flags.
func client(opts *rootOptions) (*atlassian.Client, error) {
	cfg, err := config.LoadAtlassian()
	if err != nil {
		return nil, err
	}
	config.Override(&cfg.Domain, opts.domain)
	config.Override(&cfg.Email, opts.email)
	config.Override(&cfg.APIToken, opts.apiToken)
	if err := cfg.Require(); err != nil {
		return nil, err
	}
	return atlassian.New(cfg.Domain, cfg.Email, cfg.APIToken, newLogger(opts.verbose)), nil
}

// printRaw re-indents an API response for the terminal.
func printRaw(w io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		return nil
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return err
	}
	_, err := fmt.Fprintln(w, buf.String())
	return err
}
