package workspace

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"strconv"
	"time"
)

// ListCalendars returns the authenticated user's calendar list.
func (c *Client) ListCalendars(ctx context.Context) (json.RawMessage, error) {
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, "/calendar/v3/users/me/calendarList", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EventsOptions filter a calendar event listing. Zero values are omitted
// from the query.
type EventsOptions struct {
	CalendarID string // default "primary"
	From       string // YYYY-MM-DD, from midnight UTC
	To         string // YYYY-MM-DD, to end of day UTC
	Max        int
}

// ListEvents lists single events ordered by start time.
func (c *Client) ListEvents(ctx context.Context, opts EventsOptions) (json.RawMessage, error) {
	q := url.Values{
		"singleEvents": {"true"},
		"orderBy":      {"startTime"},
	}
	max := opts.Max
	if max == 0 {
		max = 50
	}
	q.Set("maxResults", strconv.Itoa(max))
	if opts.From != "" {
		q.Set("timeMin", opts.From+"T00:00:00Z")
	}
	if opts.To != "" {
		q.Set("timeMax", opts.To+"T23:59:59Z")
	}
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, eventsPath(opts.CalendarID), q, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetEvent fetches one event.
func (c *Client) GetEvent(ctx context.Context, calendarID, eventID string) (json.RawMessage, error) {
	path := fmt.Sprintf("%s/%s", eventsPath(calendarID), url.PathEscape(eventID))
	var out json.RawMessage
	if err := c.rest.GetJSON(ctx, path, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// EventSummary is the condensed event shape printed by the today/upcoming
// commands.
type EventSummary struct {
	ID       string `json:"id"`
	Summary  string `json:"summary"`
	Start    string `json:"start"`
	MeetLink string `json:"meetLink,omitempty"`
	Location string `json:"location,omitempty"`
}

// TodayEvents lists today's events in condensed form.
func (c *Client) TodayEvents(ctx context.Context, calendarID string) ([]EventSummary, error) {
	today := time.Now().Format("2006-01-02")
	return c.eventSummaries(ctx, calendarID, today+"T00:00:00Z", today+"T23:59:59Z")
}

// UpcomingEvents lists events in the next hours (default 24) in condensed
// form.
func (c *Client) UpcomingEvents(ctx context.Context, calendarID string, hours int) ([]EventSummary, error) {
	if hours <= 0 {
		hours = 24
	}
	now := time.Now().UTC()
	return c.eventSummaries(ctx, calendarID,
		now.Format(time.RFC3339),
		now.Add(time.Duration(hours)*time.Hour).Format(time.RFC3339))
}

func (c *Client) eventSummaries(ctx context.Context, calendarID, timeMin, timeMax string) ([]EventSummary, error) {
	q := url.Values{
		"timeMin":      {timeMin},
		"timeMax":      {timeMax},
		"singleEvents": {"true"},
		"orderBy":      {"startTime"},
	}
	var out struct {
		Items []struct {
			ID      string `json:"id"`
			Summary string `json:"summary"`
			Start   struct {
				DateTime string `json:"dateTime"`
				Date     string `json:"date"`
			} `json:"start"`
			HangoutLink string `json:"hangoutLink"`
			Location    string `json:"location"`
		} `json:"items"`
	}
	if err := c.rest.GetJSON(ctx, eventsPath(calendarID), q, &out); err != nil {
		return nil, err
	}
	events := make([]EventSummary, 0, len(out.Items))
	for _, item := range out.Items {
		// All-day events carry a date instead of a dateTime.
		start := item.Start.DateTime
		if start == "" {
			start = item.Start.Date
		}
		events = append(events, EventSummary{
			ID:       item.ID,
			Summary:  item.Summary,
			Start:    start,
			MeetLink: item.HangoutLink,
			Location: item.Location,
		})
	}
	return events, nil
}

func eventsPath(calendarID string) string {
	if calendarID == "" {
		calendarID = "primary"
	}
	return fmt.Sprintf("/calendar/v3/calendars/%s/events", url.PathEscape(calendarID))
}
