package atlassian

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
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

func TestBasicAuthTransport(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user, pass, ok := r.BasicAuth()
		require.True(t, ok)
		require.Equal(t, "me@example.com", user)
		require.Equal(t, "token123", pass)
		w.Write([]byte(`{"accountId":"a1"}`))
	}))
	t.Cleanup(srv.Close)

	c := New(srv.URL, "me@example.com", "token123", zerolog.Nop())
	out, err := c.Myself(context.Background())
	require.NoError(t, err)
	require.JSONEq(t, `{"accountId":"a1"}`, string(out))
}

func TestCreateIssuePayload(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		fields := body["fields"].(map[string]any)
		require.Equal(t, map[string]any{"key": "PROJ"}, fields["project"])
		require.Equal(t, "Fix the widget", fields["summary"])
		require.Equal(t, map[string]any{"name": "Bug"}, fields["issuetype"])

		// Description travels as a single-paragraph ADF document.
		desc := fields["description"].(map[string]any)
		require.Equal(t, "doc", desc["type"])
		require.Equal(t, float64(1), desc["version"])
		para := desc["content"].([]any)[0].(map[string]any)
		text := para["content"].([]any)[0].(map[string]any)
		require.Equal(t, "It broke", text["text"])

		w.WriteHeader(http.StatusCreated)
		w.Write([]byte(`{"key":"PROJ-1"}`))
	})

	out, err := c.CreateIssue(context.Background(), IssueFields{
		Project:     "PROJ",
		Summary:     "Fix the widget",
		Type:        "Bug",
		Description: "It broke",
	})
	require.NoError(t, err)
	require.JSONEq(t, `{"key":"PROJ-1"}`, string(out))
}

func TestUpdateIssue(t *testing.T) {
	t.Run("unassign", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPut, r.Method)
			require.Equal(t, "/rest/api/3/issue/PROJ-1", r.URL.Path)
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			fields := body["fields"].(map[string]any)
			assignee, present := fields["assignee"]
			require.True(t, present)
			require.Nil(t, assignee)
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, c.UpdateIssue(context.Background(), "PROJ-1", IssueFields{Assignee: "none"}))
	})

	t.Run("empty update is a no-op", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			t.Fatal("no request expected")
		})
		require.NoError(t, c.UpdateIssue(context.Background(), "PROJ-1", IssueFields{}))
	})
}

func TestSearchJQL(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/rest/api/3/search/jql", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "project = PROJ ORDER BY created DESC", body["jql"])
		require.Equal(t, float64(50), body["maxResults"])
		require.Equal(t, []any{"summary", "status"}, body["fields"])
		w.Write([]byte(`{"issues":[]}`))
	})

	_, err := c.SearchJQL(context.Background(), "project = PROJ ORDER BY created DESC", 0, []string{"summary", "status"})
	require.NoError(t, err)
}

func TestTransitionIssue(t *testing.T) {
	transitions := `{"transitions":[{"id":"11","name":"To Do"},{"id":"31","name":"Done"}]}`

	t.Run("resolves name case-insensitively", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/rest/api/3/issue/PROJ-1/transitions", r.URL.Path)
			if r.Method == http.MethodGet {
				w.Write([]byte(transitions))
				return
			}
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, map[string]any{"id": "31"}, body["transition"])
			fields := body["fields"].(map[string]any)
			require.Equal(t, map[string]any{"name": "Fixed"}, fields["resolution"])
			require.Contains(t, body, "update")
			w.WriteHeader(http.StatusNoContent)
		})

		require.NoError(t, c.TransitionIssue(context.Background(), "PROJ-1", "done", "closing out", "Fixed"))
	})

	t.Run("unknown transition lists the available ones", func(t *testing.T) {
		c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(transitions))
		})

		err := c.TransitionIssue(context.Background(), "PROJ-1", "Blocked", "", "")
		require.Error(t, err)
		require.Contains(t, err.Error(), `transition "Blocked" not found`)
		require.Contains(t, err.Error(), "11: To Do")
		require.Contains(t, err.Error(), "31: Done")
	})
}

func TestGetAttachmentsExtractsField(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "attachment", r.URL.Query().Get("fields"))
		w.Write([]byte(`{"fields":{"attachment":[{"id":"10000","filename":"notes.txt"}]}}`))
	})

	out, err := c.GetAttachments(context.Background(), "PROJ-1")
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"10000","filename":"notes.txt"}]`, string(out))
}

func TestAddAttachment(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/issue/PROJ-1/attachments", r.URL.Path)
		require.Equal(t, "no-check", r.Header.Get("X-Atlassian-Token"))
		require.NoError(t, r.ParseMultipartForm(1<<20))
		_, header, err := r.FormFile("file")
		require.NoError(t, err)
		require.Equal(t, "notes.txt", header.Filename)
		w.Write([]byte(`[{"id":"10000"}]`))
	})

	out, err := c.AddAttachment(context.Background(), "PROJ-1", "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)
	require.JSONEq(t, `[{"id":"10000"}]`, string(out))
}

func TestDownloadAttachmentFollowsContentURL(t *testing.T) {
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/api/3/attachment/10000":
			w.Write([]byte(`{"content":"` + srv.URL + `/secure/attachment/10000/notes.txt"}`))
		case "/secure/attachment/10000/notes.txt":
			w.Write([]byte("attachment body"))
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)

	c := NewWithHTTPClient(srv.URL, srv.Client(), zerolog.Nop())
	body, err := c.DownloadAttachment(context.Background(), "10000")
	require.NoError(t, err)
	defer body.Close()
	data, err := io.ReadAll(body)
	require.NoError(t, err)
	require.Equal(t, "attachment body", string(data))
}

func TestListIssueTypesScopedToProject(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/rest/api/3/project/PROJ", r.URL.Path)
		w.Write([]byte(`{"key":"PROJ","issueTypes":[{"name":"Bug"}]}`))
	})

	out, err := c.ListIssueTypes(context.Background(), "PROJ")
	require.NoError(t, err)
	require.JSONEq(t, `[{"name":"Bug"}]`, string(out))
}

func TestConfluenceCreatePage(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wiki/rest/api/content", r.URL.Path)
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "page", body["type"])
		require.Equal(t, "Release Notes", body["title"])
		require.Equal(t, map[string]any{"key": "ENG"}, body["space"])
		storage := body["body"].(map[string]any)["storage"].(map[string]any)
		require.Equal(t, "<p>hello</p>", storage["value"])
		require.Equal(t, "storage", storage["representation"])
		ancestors := body["ancestors"].([]any)
		require.Equal(t, map[string]any{"id": "123"}, ancestors[0])
		w.Write([]byte(`{"id":"456"}`))
	})

	out, err := c.ConfluenceCreatePage(context.Background(), "ENG", "Release Notes", "<p>hello</p>", "123")
	require.NoError(t, err)
	require.JSONEq(t, `{"id":"456"}`, string(out))
}

func TestConfluencePageDefaultExpand(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/wiki/rest/api/content/456", r.URL.Path)
		require.Equal(t, "body.storage,version", r.URL.Query().Get("expand"))
		w.Write([]byte(`{"id":"456"}`))
	})

	_, err := c.ConfluencePage(context.Background(), "456", "")
	require.NoError(t, err)
}

func TestSprintCreateAndMove(t *testing.T) {
	c := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/rest/agile/1.0/sprint":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, float64(5), body["originBoardId"])
			require.Equal(t, "Sprint 12", body["name"])
			require.NotContains(t, body, "goal")
			w.Write([]byte(`{"id":42}`))
		case "/rest/agile/1.0/sprint/42/issue":
			var body map[string]any
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			require.Equal(t, []any{"PROJ-1", "PROJ-2"}, body["issues"])
			w.WriteHeader(http.StatusNoContent)
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	})

	out, err := c.CreateSprint(context.Background(), 5, SprintFields{Name: "Sprint 12"})
	require.NoError(t, err)
	require.JSONEq(t, `{"id":42}`, string(out))

	require.NoError(t, c.MoveIssuesToSprint(context.Background(), "42", []string{"PROJ-1", "PROJ-2"}))
}
