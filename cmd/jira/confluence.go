package main

import (
	"github.com/spf13/cobra"
)

func addConfluenceCommands(root *cobra.Command, opts *rootOptions) {
	var spacesMax int
	spaces := &cobra.Command{
		Use:   "spaces",
		Short: "List Confluence spaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ConfluenceSpaces(cmd.Context(), spacesMax)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	spaces.Flags().IntVar(&spacesMax, "max", 25, "maximum results")
	root.AddCommand(spaces)

	root.AddCommand(&cobra.Command{
		Use:   "get-space <space-id>",
		Short: "Show a Confluence space",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ConfluenceSpace(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var cqlMax int
	search := &cobra.Command{
		Use:   "search-pages <cql>",
		Short: "Search Confluence content with CQL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ConfluenceSearch(cmd.Context(), args[0], cqlMax)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	search.Flags().IntVar(&cqlMax, "max", 25, "maximum results")
	root.AddCommand(search)

	var pageExpand string
	getPage := &cobra.Command{
		Use:   "get-page <page-id>",
		Short: "Show a Confluence page with its storage body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ConfluencePage(cmd.Context(), args[0], pageExpand)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	getPage.Flags().StringVar(&pageExpand, "expand", "", "representations to expand")
	root.AddCommand(getPage)

	var (
		createSpace  string
		createBody   string
		createParent string
	)
	createPage := &cobra.Command{
		Use:   "create-page <title>",
		Short: "Create a Confluence page",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ConfluenceCreatePage(cmd.Context(), createSpace, args[0], createBody, createParent)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	createPage.Flags().StringVar(&createSpace, "space", "", "space key")
	createPage.Flags().StringVar(&createBody, "body", "", "page body in storage format")
	createPage.Flags().StringVar(&createParent, "parent", "", "parent page ID")
	_ = createPage.MarkFlagRequired("space")
	root.AddCommand(createPage)

	var (
		updateTitle   string
		updateBody    string
		updateVersion int
	)
	updatePage := &cobra.Command{
		Use:   "update-page <page-id>",
		Short: "Replace a Confluence page's title and body",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			jc, err := client(opts)
			if err != nil {
				return err
			}
			out, err := jc.ConfluenceUpdatePage(cmd.Context(), args[0], updateTitle, updateBody, updateVersion)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	updatePage.Flags().StringVar(&updateTitle, "title", "", "page title")
	updatePage.Flags().StringVar(&updateBody, "body", "", "page body in storage format")
	updatePage.Flags().IntVar(&updateVersion, "version", 0, "new version number (current + 1)")
	_ = updatePage.MarkFlagRequired("version")
	root.AddCommand(updatePage)
}
