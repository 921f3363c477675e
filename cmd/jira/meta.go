package main

import (
	"github.com/spf13/cobra"
)

func addMetaCommands(root *cobra.Command, opts *rootOptions) {
	var projectsMax int
	projects := &cobra.Command{
		Use:   "projects",
		Short: "List projects",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ListProjects(cmd.Context(), projectsMax)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	projects.Flags().IntVar(&projectsMax, "max", 50, "maximum results")
	root.AddCommand(projects)

	root.AddCommand(&cobra.Command{
		Use:   "get-project <key>",
		Short: "Show a project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetProject(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "components <project>",
		Short: "List a project's components",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ProjectComponents(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "versions <project>",
		Short: "List a project's versions",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ProjectVersions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var usersMax int
	users := &cobra.Command{
		Use:   "search-users <query>",
		Short: "Search users by display name or email",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.SearchUsers(cmd.Context(), args[0], usersMax)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	users.Flags().IntVar(&usersMax, "max", 50, "maximum results")
	root.AddCommand(users)

	root.AddCommand(&cobra.Command{
		Use:   "get-user <account-id>",
		Short: "Show a user",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.GetUser(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "myself",
		Short: "Show the account the API token belongs to",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.Myself(cmd.Context())
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	root.AddCommand(&cobra.Command{
		Use:   "fields",
		Short: "List all issue fields, including custom fields",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ListFields(cmd.Context())
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var issueTypesProject string
	issueTypes := &cobra.Command{
		Use:   "issue-types",
		Short: "List issue types",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ListIssueTypes(cmd.Context(), issueTypesProject)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	issueTypes.Flags().StringVar(&issueTypesProject, "project", "", "limit to one project")
	root.AddCommand(issueTypes)

	root.AddCommand(&cobra.Command{
		Use:   "priorities",
		Short: "List priorities",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ListPriorities(cmd.Context())
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var statusesProject string
	statuses := &cobra.Command{
		Use:   "statuses",
		Short: "List statuses",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ListStatuses(cmd.Context(), statusesProject)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	statuses.Flags().StringVar(&statusesProject, "project", "", "limit to one project, grouped by issue type")
	root.AddCommand(statuses)

	root.AddCommand(&cobra.Command{
		Use:   "resolutions",
		Short: "List resolutions",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ListResolutions(cmd.Context())
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})
}
