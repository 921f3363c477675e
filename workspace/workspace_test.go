package workspace

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewWithHTTPClient(srv.URL, srv.Client(), zerolog.Nop())
}

func TestListEvents(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calendar/v3/calendars/primary/events", r.URL.Path)
		q := r.URL.Query()
		require.Equal(t, "true", q.Get("singleEvents"))
		require.Equal(t, "startTime", q.Get("orderBy"))
		require.Equal(t, "50", q.Get("maxResults"))
		require.Equal(t, "2026-08-01T00:00:00Z", q.Get("timeMin"))
		require.Equal(t, "2026-08-31T23:59:59Z", q.Get("timeMax"))
		w.Write([]byte(`{"items":[]}`))
	})

	out, err := c.ListEvents(context.Background(), EventsOptions{From: "2026-08-01", To: "2026-08-31"})
	require.NoError(t, err)
	require.JSONEq(t, `{"items":[]}`, string(out))
}

func TestTodayEventsCondensesItems(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"items":[
			{"id":"e1","summary":"Standup","start":{"dateTime":"2026-08-25T09:00:00Z"},"hangoutLink":"https://meet.google.com/abc","location":"Room 1"},
			{"id":"e2","summary":"Offsite","start":{"date":"2026-08-25"}}
		]}`))
	})

	events, err := c.TodayEvents(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, events, 2)
	require.Equal(t, EventSummary{
		ID:       "e1",
		Summary:  "Standup",
		Start:    "2026-08-25T09:00:00Z",
		MeetLink: "https://meet.google.com/abc",
		Location: "Room 1",
	}, events[0])
	// All-day events fall back to the bare date.
	require.Equal(t, "2026-08-25", events[1].Start)
}

func TestEventsPathKeepsCalendarID(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/calendar/v3/calendars/team@example.com/events", r.URL.Path)
		w.Write([]byte(`{"items":[]}`))
	})

	_, err := c.ListEvents(context.Background(), EventsOptions{CalendarID: "team@example.com"})
	require.NoError(t, err)
}

func TestListFilesBuildsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/drive/v3/files", r.URL.Path)
		require.Equal(t, "name contains 'report' and 'folder1' in parents and mimeType='application/pdf'", r.URL.Query().Get("q"))
		w.Write([]byte(`{"files":[]}`))
	})

	_, err := c.ListFiles(context.Background(), FilesOptions{
		Query:    "name contains 'report'",
		Folder:   "folder1",
		MimeType: "application/pdf",
	})
	require.NoError(t, err)
}

func TestReadFile(t *testing.T) {
	t.Run("google doc exports as text", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/drive/v3/files/doc1":
				w.Write([]byte(`{"mimeType":"application/vnd.google-apps.document","name":"Notes"}`))
			case "/drive/v3/files/doc1/export":
				require.Equal(t, "text/plain", r.URL.Query().Get("mimeType"))
				w.Write([]byte("doc text"))
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		})

		body, err := c.ReadFile(context.Background(), "doc1")
		require.NoError(t, err)
		defer body.Close()
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		require.Equal(t, "doc text", string(data))
	})

	t.Run("plain file downloads as media", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch {
			case r.URL.Path == "/drive/v3/files/f1" && r.URL.Query().Get("alt") == "media":
				w.Write([]byte("raw"))
			case r.URL.Path == "/drive/v3/files/f1":
				w.Write([]byte(`{"mimeType":"text/csv","name":"data.csv"}`))
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		})

		body, err := c.ReadFile(context.Background(), "f1")
		require.NoError(t, err)
		defer body.Close()
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		require.Equal(t, "raw", string(data))
	})
}

func TestListTranscriptsQuery(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		require.Contains(t, q.Get("q"), "name contains 'Transcript'")
		require.Contains(t, q.Get("q"), "createdTime >= '2026-08-01T00:00:00'")
		require.Equal(t, "createdTime desc", q.Get("orderBy"))
		w.Write([]byte(`{"files":[]}`))
	})

	_, err := c.ListTranscripts(context.Background(), "2026-08-01", 0)
	require.NoError(t, err)
}

func TestLatestTranscript(t *testing.T) {
	t.Run("streams the newest match", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			switch r.URL.Path {
			case "/drive/v3/files":
				require.Equal(t, "1", r.URL.Query().Get("pageSize"))
				require.Contains(t, r.URL.Query().Get("q"), "name contains 'Roadmap'")
				w.Write([]byte(`{"files":[{"id":"t1","name":"Roadmap - Transcript","createdTime":"2026-08-20T10:00:00Z"}]}`))
			case "/drive/v3/files/t1/export":
				w.Write([]byte("transcript text"))
			default:
				t.Fatalf("unexpected path %s", r.URL.Path)
			}
		})

		info, body, err := c.LatestTranscript(context.Background(), "Roadmap")
		require.NoError(t, err)
		defer body.Close()
		require.Equal(t, "t1", info.ID)
		data, err := io.ReadAll(body)
		require.NoError(t, err)
		require.Equal(t, "transcript text", string(data))
	})

	t.Run("no matches", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(`{"files":[]}`))
		})

		_, _, err := c.LatestTranscript(context.Background(), "")
		require.ErrorIs(t, err, ErrNoTranscripts)
	})
}
