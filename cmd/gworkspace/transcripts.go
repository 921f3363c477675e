package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"
)

func addTranscriptCommands(root *cobra.Command, opts *rootOptions) {
	var (
		fromDate string
		max      int
	)
	list := &cobra.Command{
		Use:   "list-transcripts",
		Short: "List Meet transcripts stored in Drive, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			out, err := ws.ListTranscripts(cmd.Context(), fromDate, max)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	list.Flags().StringVar(&fromDate, "from", "", "only transcripts created on or after this date (YYYY-MM-DD)")
	list.Flags().IntVar(&max, "max", 20, "maximum results")
	root.AddCommand(list)

	root.AddCommand(&cobra.Command{
		Use:   "get-transcript <file-id>",
		Short: "Print a transcript document as plain text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			content, err := ws.GetTranscript(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer content.Close()
			_, err = io.Copy(cmd.OutOrStdout(), content)
			return err
		},
	})

	var meeting string
	latest := &cobra.Command{
		Use:   "latest-transcript",
		Short: "Print the newest transcript, optionally filtered by meeting name",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			info, content, err := ws.LatestTranscript(cmd.Context(), meeting)
			if err != nil {
				return err
			}
			defer content.Close()
			// Header goes to stderr so stdout stays pipeable.
			fmt.Fprintf(cmd.ErrOrStderr(), "%s (%s, created %s)\n", info.Name, info.ID, info.CreatedTime)
			_, err = io.Copy(cmd.OutOrStdout(), content)
			return err
		},
	}
	latest.Flags().StringVar(&meeting, "meeting", "", "meeting name filter")
	root.AddCommand(latest)
}
