package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-workspace-cli/workspace"
)

func addDriveCommands(root *cobra.Command, opts *rootOptions) {
	var filesOpts workspace.FilesOptions
	listFiles := &cobra.Command{
		Use:   "list-files",
		Short: "List Drive files",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			out, err := ws.ListFiles(cmd.Context(), filesOpts)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	listFiles.Flags().StringVar(&filesOpts.Query, "query", "", "raw Drive query term")
	listFiles.Flags().StringVar(&filesOpts.Folder, "folder", "", "parent folder ID")
	listFiles.Flags().StringVar(&filesOpts.MimeType, "type", "", "MIME type filter")
	listFiles.Flags().IntVar(&filesOpts.Max, "max", 50, "maximum results")
	root.AddCommand(listFiles)

	root.AddCommand(&cobra.Command{
		Use:   "get-file <file-id>",
		Short: "Show a file's full metadata",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			out, err := ws.GetFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var output string
	download := &cobra.Command{
		Use:   "download-file <file-id>",
		Short: "Download a file's raw content",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			content, err := ws.DownloadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer content.Close()
			f, err := os.Create(output)
			if err != nil {
				return err
			}
			defer f.Close()
			if _, err := io.Copy(f, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded to %s\n", output)
			return nil
		},
	}
	download.Flags().StringVarP(&output, "output", "o", "", "output path")
	_ = download.MarkFlagRequired("output")
	root.AddCommand(download)

	root.AddCommand(&cobra.Command{
		Use:   "read-file <file-id>",
		Short: "Print a file as text (Google Docs are exported as plain text)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			content, err := ws.ReadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer content.Close()
			_, err = io.Copy(cmd.OutOrStdout(), content)
			return err
		},
	})

	var searchMax int
	search := &cobra.Command{
		Use:   "search-files <query>",
		Short: "Search files by name or full text",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			out, err := ws.SearchFiles(cmd.Context(), args[0], searchMax)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	search.Flags().IntVar(&searchMax, "max", 20, "maximum results")
	root.AddCommand(search)
}
