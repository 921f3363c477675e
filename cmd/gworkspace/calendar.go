package main

import (
	"github.com/spf13/cobra"

	"github.com/jrsteele09/go-workspace-cli/workspace"
)

func addCalendarCommands(root *cobra.Command, opts *rootOptions) {
	root.AddCommand(&cobra.Command{
		Use:   "list-calendars",
		Short: "List the calendars on the account",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			out, err := ws.ListCalendars(cmd.Context())
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	})

	var eventsOpts workspace.EventsOptions
	listEvents := &cobra.Command{
		Use:   "list-events",
		Short: "List events on a calendar",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			out, err := ws.ListEvents(cmd.Context(), eventsOpts)
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	listEvents.Flags().StringVar(&eventsOpts.CalendarID, "calendar", "primary", "calendar ID")
	listEvents.Flags().StringVar(&eventsOpts.From, "from", "", "start date (YYYY-MM-DD)")
	listEvents.Flags().StringVar(&eventsOpts.To, "to", "", "end date (YYYY-MM-DD)")
	listEvents.Flags().IntVar(&eventsOpts.Max, "max", 50, "maximum results")
	root.AddCommand(listEvents)

	var eventCalendar string
	getEvent := &cobra.Command{
		Use:   "get-event <event-id>",
		Short: "Show one event in full",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			out, err := ws.GetEvent(cmd.Context(), eventCalendar, args[0])
			if err != nil {
				return err
			}
			return printRaw(cmd.OutOrStdout(), out)
		},
	}
	getEvent.Flags().StringVar(&eventCalendar, "calendar", "primary", "calendar ID")
	root.AddCommand(getEvent)

	var todayCalendar string
	today := &cobra.Command{
		Use:   "today-events",
		Short: "List today's events in condensed form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			events, err := ws.TodayEvents(cmd.Context(), todayCalendar)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), events)
		},
	}
	today.Flags().StringVar(&todayCalendar, "calendar", "primary", "calendar ID")
	root.AddCommand(today)

	var (
		upcomingCalendar string
		upcomingHours    int
	)
	upcoming := &cobra.Command{
		Use:   "upcoming-events",
		Short: "List upcoming events in condensed form",
		RunE: func(cmd *cobra.Command, args []string) error {
			ws, err := client(cmd, opts)
			if err != nil {
				return err
			}
			events, err := ws.UpcomingEvents(cmd.Context(), upcomingCalendar, upcomingHours)
			if err != nil {
				return err
			}
			return printJSON(cmd.OutOrStdout(), events)
		},
	}
	upcoming.Flags().StringVar(&upcomingCalendar, "calendar", "primary", "calendar ID")
	upcoming.Flags().IntVar(&upcomingHours, "hours", 24, "look-ahead window in hours")
	root.AddCommand(upcoming)
}
