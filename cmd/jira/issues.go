package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-workspace-cli/atlassian"
)

func addIssueCommands(root *cobra.Command, opts *rootOptions) {
	var expand bool
	getIssue := &cobra.Command{
		Use:   "get-issue <key>",
		Short: "Show an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetIssue(cmd.Context(), args[0], expand)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	getIssue.Flags().BoolVar(&expand, "expand", false, "include rendered fields, transitions, and changelog")
	root.AddCommand(getIssue)

	var createFields atlassian.IssueFields
	create := &cobra.Command{
		Use:   "create-issue",
		Short: "Create an issue",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.CreateIssue(cmd.Context(), createFields)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	create.Flags().StringVar(&createFields.Project, "project", "", "project key")
	create.Flags().StringVar(&createFields.Summary, "summary", "", "issue summary")
	create.Flags().StringVar(&createFields.Type, "type", "Task", "issue type name")
	create.Flags().StringVar(&createFields.Description, "description", "", "plain-text description")
	create.Flags().StringVar(&createFields.Assignee, "assignee", "", "assignee account ID")
	create.Flags().StringVar(&createFields.Priority, "priority", "", "priority name")
	create.Flags().StringSliceVar(&createFields.Labels, "label", nil, "label (repeatable)")
	create.Flags().StringSliceVar(&createFields.Components, "component", nil, "component name (repeatable)")
	create.Flags().StringVar(&createFields.Parent, "parent", "", "parent issue key, for subtasks")
	_ = create.MarkFlagRequired("project")
	_ = create.MarkFlagRequired("summary")
	root.AddCommand(create)

	var updateFields atlassian.IssueFields
	update := &cobra.Command{
		Use:   "update-issue <key>",
		Short: "Update issue fields",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			if err := jc.UpdateIssue(cmd.Context(), args[0], updateFields); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Updated %s\n", args[0])
			return nil
		},
	}
	update.Flags().StringVar(&updateFields.Summary, "summary", "", "issue summary")
	update.Flags().StringVar(&updateFields.Description, "description", "", "plain-text description")
	update.Flags().StringVar(&updateFields.Assignee, "assignee", "", `assignee account ID ("none" unassigns)`)
	update.Flags().StringVar(&updateFields.Priority, "priority", "", "priority name")
	update.Flags().StringSliceVar(&updateFields.Labels, "label", nil, "label (repeatable, replaces existing)")
	root.AddCommand(update)

	root.AddCommand(&cobra.Command{
		Use:   "delete-issue <key>",
		Short: "Delete an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			if err := jc.DeleteIssue(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
			return nil
		},
	})

	var (
		searchMax    int
		searchFields []string
	)
	search := &cobra.Command{
		Use:   "search <jql>",
		Short: "Search issues with JQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.SearchJQL(cmd.Context(), args[0], searchMax, searchFields)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	search.Flags().IntVar(&searchMax, "max", 50, "maximum results")
	search.Flags().StringSliceVar(&searchFields, "field", nil, "issue field to return (repeatable)")
	root.AddCommand(search)

	root.AddCommand(&cobra.Command{
		Use:   "transitions <key>",
		Short: "List the transitions available on an issue",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetTransitions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var (
		transitionComment    string
		transitionResolution string
	)
	transition := &cobra.Command{
		Use:   "transition <key> <to>",
		Short: "Move an issue through a workflow transition, by name or ID",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			if err := jc.TransitionIssue(cmd.Context(), args[0], args[1], transitionComment, transitionResolution); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transitioned %s to %s\n", args[0], args[1])
			return nil
		},
	}
	transition.Flags().StringVar(&transitionComment, "comment", "", "comment to add with the transition")
	transition.Flags().StringVar(&transitionResolution, "resolution", "", "resolution name to set")
	root.AddCommand(transition)

	root.AddCommand(&cobra.Command{
		Use:   "comments <key>",
		Short: "List an issue's comments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetComments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "add-comment <key> <text>",
		Short: "Add a plain-text comment",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.AddComment(cmd.Context(), args[0], args[1])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "attachments <key>",
		Short: "List an issue's attachments",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetAttachments(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "add-attachment <key> <file>",
		Short: "Upload a file to an issue",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			f, err := os.Open(args[1])
			if err != nil {
				return err
			}
			defer f.Close()
			out, err := jc.AddAttachment(cmd.Context(), args[0], filepath.Base(args[1]), f)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var attachmentOut string
	downloadAttachment := &cobra.Command{
		Use:   "download-attachment <attachment-id>",
		Short: "Download an attachment",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			content, err := jc.DownloadAttachment(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			defer content.Close()
			f, err := os.Create(attachmentOut)
			if err != nil {
				return err
			}
			defer f.Close()
			if _, err := io.Copy(f, content); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Downloaded to %s\n", attachmentOut)
			return nil
		},
	}
	downloadAttachment.Flags().StringVarP(&attachmentOut, "output", "o", "", "output path")
	_ = downloadAttachment.MarkFlagRequired("output")
	root.AddCommand(downloadAttachment)

	root.AddCommand(&cobra.Command{
		Use:   "worklogs <key>",
		Short: "List an issue's worklog entries",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetWorklogs(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var (
		worklogComment string
		worklogStarted string
	)
	addWorklog := &cobra.Command{
		Use:   "add-worklog <key> <time-spent>",
		Short: `Log time against an issue, e.g. "1h 30m"`,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.AddWorklog(cmd.Context(), args[0], args[1], worklogComment, worklogStarted)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	addWorklog.Flags().StringVar(&worklogComment, "comment", "", "worklog comment")
	addWorklog.Flags().StringVar(&worklogStarted, "started", "", "start datetime in Jira format")
	root.AddCommand(addWorklog)
}
