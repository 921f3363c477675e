package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-workspace-cli/atlassian"
)

func addAgileCommands(root *cobra.Command, opts *rootOptions) {
	var boardsOpts atlassian.BoardsOptions
	boards := &cobra.Command{
		Use:   "boards",
		Short: "List agile boards",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ListBoards(cmd.Context(), boardsOpts)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	boards.Flags().StringVar(&boardsOpts.Project, "project", "", "project key or ID")
	boards.Flags().StringVar(&boardsOpts.Type, "type", "", `"scrum" or "kanban"`)
	boards.Flags().IntVar(&boardsOpts.Max, "max", 50, "maximum results")
	root.AddCommand(boards)

	root.AddCommand(&cobra.Command{
		Use:   "get-board <board-id>",
		Short: "Show a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetBoard(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var (
		sprintsState string
		sprintsMax   int
	)
	sprints := &cobra.Command{
		Use:   "sprints <board-id>",
		Short: "List a board's sprints",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.BoardSprints(cmd.Context(), args[0], sprintsState, sprintsMax)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	sprints.Flags().StringVar(&sprintsState, "state", "", `"active", "closed", or "future"`)
	sprints.Flags().IntVar(&sprintsMax, "max", 50, "maximum results")
	root.AddCommand(sprints)

	root.AddCommand(&cobra.Command{
		Use:   "get-sprint <sprint-id>",
		Short: "Show a sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetSprint(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var sprintIssuesMax int
	sprintIssues := &cobra.Command{
		Use:   "sprint-issues <sprint-id>",
		Short: "List the issues in a sprint",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.SprintIssues(cmd.Context(), args[0], sprintIssuesMax)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	sprintIssues.Flags().IntVar(&sprintIssuesMax, "max", 50, "maximum results")
	root.AddCommand(sprintIssues)

	var (
		createBoard  int
		createFields atlassian.SprintFields
	)
	createSprint := &cobra.Command{
		Use:   "create-sprint <name>",
		Short: "Create a sprint on a board",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			createFields.Name = args[0]
			out, err := jc.CreateSprint(cmd.Context(), createBoard, createFields)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	createSprint.Flags().IntVar(&createBoard, "board", 0, "origin board ID")
	createSprint.Flags().StringVar(&createFields.Start, "start", "", "start datetime")
	createSprint.Flags().StringVar(&createFields.End, "end", "", "end datetime")
	createSprint.Flags().StringVar(&createFields.Goal, "goal", "", "sprint goal")
	_ = createSprint.MarkFlagRequired("board")
	root.AddCommand(createSprint)

	var updateFields atlassian.SprintFields
	updateSprint := &cobra.Command{
		Use:   "update-sprint <sprint-id>",
		Short: "Update a sprint's name, state, or goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.UpdateSprint(cmd.Context(), args[0], updateFields)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	updateSprint.Flags().StringVar(&updateFields.Name, "name", "", "sprint name")
	updateSprint.Flags().StringVar(&updateFields.State, "state", "", `"active" or "closed"`)
	updateSprint.Flags().StringVar(&updateFields.Goal, "goal", "", "sprint goal")
	root.AddCommand(updateSprint)

	root.AddCommand(&cobra.Command{
		Use:   "move-to-sprint <sprint-id> <issue-key>...",
		Short: "Move issues into a sprint",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			if err := jc.MoveIssuesToSprint(cmd.Context(), args[0], args[1:]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %d issue(s) to sprint %s\n", len(args)-1, args[0])
			return nil
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "get-epic <epic-key>",
		Short: "Show an epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetEpic(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var epicIssuesMax int
	epicIssues := &cobra.Command{
		Use:   "epic-issues <epic-key>",
		Short: "List the issues in an epic",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.EpicIssues(cmd.Context(), args[0], epicIssuesMax)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	epicIssues.Flags().IntVar(&epicIssuesMax, "max", 50, "maximum results")
	root.AddCommand(epicIssues)

	root.AddCommand(&cobra.Command{
		Use:   "move-to-epic <epic-key> <issue-key>...",
		Short: "Move issues into an epic",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			if err := jc.MoveIssuesToEpic(cmd.Context(), args[0], args[1:]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Moved %d issue(s) to epic %s\n", len(args)-1, args[0])
			return nil
		},
	})
}
