package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/martinsuchenak/migrateplan/internal/api"
	"github.com/martinsuchenak/migrateplan/internal/auth"
	"github.com/martinsuchenak/migrateplan/internal/client"
	"github.com/martinsuchenak/migrateplan/internal/mcp"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/storage"
	"github.com/martinsuchenak/migrateplan/internal/ui"
	"github.com/martinsuchenak/migrateplan/internal/views"
)

// TestServer is a helper for integration tests
type TestServer struct {
	server  *httptest.Server
	storage *storage.SQLiteStorage
	authn   *auth.Authenticator
}

// NewTestServer serves the full router over a temp-dir SQLite database
// with token auth enabled.
func NewTestServer(t *testing.T) *TestServer {
	t.Helper()

	store, err := storage.NewSQLiteStorage(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to create storage: %v", err)
	}
	authn := auth.NewAuthenticator(store)
	mcpServer := mcp.NewServer(store, "mcp-secret", "local")

	handler := api.NewRouter(api.RouterConfig{
		Handler:     api.NewHandler(store),
		Verifier:    authn,
		AuthEnabled: true,
		MCP:         http.HandlerFunc(mcpServer.HandleRequest),
		UI:          ui.AssetHandler(),
	})
	ts := &TestServer{
		server:  httptest.NewServer(handler),
		storage: store,
		authn:   authn,
	}
	t.Cleanup(func() {
		ts.server.Close()
		store.Close()
	})
	return ts
}

// URL returns the base URL of the test server
func (ts *TestServer) URL() string {
	return ts.server.URL
}

// NewUser issues a user and returns a client authenticated as it.
func (ts *TestServer) NewUser(t *testing.T, name string) (*model.User, *client.Client) {
	t.Helper()
	u, token, err := ts.authn.Issue(context.Background(), name)
	if err != nil {
		t.Fatalf("Failed to issue user: %v", err)
	}
	return u, client.New(ts.URL(), token)
}

func TestAPI_Integration_CreateAndList(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()
	alice, c := ts.NewUser(t, "alice")

	var workloadID string

	t.Run("CreateWorkload", func(t *testing.T) {
		w := &model.Workload{Name: "DB1", Strategy: model.StrategyRehost, EstimatedCost: 5000, EstimatedDuration: 10}
		if err := c.CreateWorkload(ctx, w); err != nil {
			t.Fatalf("Failed to create workload: %v", err)
		}
		if w.ID == "" {
			t.Error("Expected workload ID to be set")
		}
		if w.UserID != alice.ID {
			t.Errorf("Expected owner %s, got %s", alice.ID, w.UserID)
		}
		if w.Status != model.StatusPlanning {
			t.Errorf("Expected status planning, got %s", w.Status)
		}
		workloadID = w.ID
	})

	t.Run("ListWorkloads", func(t *testing.T) {
		ws, err := c.ListWorkloads(ctx, client.ListOptions{})
		if err != nil {
			t.Fatalf("Failed to list workloads: %v", err)
		}
		if len(ws) != 1 {
			t.Fatalf("Expected 1 workload, got %d", len(ws))
		}
		got := ws[0]
		if got.ID != workloadID || got.Name != "DB1" || got.Strategy != model.StrategyRehost ||
			got.EstimatedCost != 5000 || got.EstimatedDuration != 10 || got.Status != model.StatusPlanning {
			t.Errorf("Unexpected workload: %+v", got)
		}
	})

	t.Run("GetWorkload", func(t *testing.T) {
		req, _ := http.NewRequest("GET", ts.URL()+"/api/workloads/"+workloadID, nil)
		resp := doAs(t, ts, req, "")
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusUnauthorized {
			t.Errorf("Expected 401 without token, got %d", resp.StatusCode)
		}
	})

	t.Run("Validation", func(t *testing.T) {
		err := c.CreateWorkload(ctx, &model.Workload{Name: "Bad", Strategy: "teleport"})
		if !client.IsStatus(err, http.StatusBadRequest) {
			t.Errorf("Expected 400, got %v", err)
		}
		ws, _ := c.ListWorkloads(ctx, client.ListOptions{})
		if len(ws) != 1 {
			t.Errorf("Failed create changed the list: %d workloads", len(ws))
		}
	})
}

func TestAPI_Integration_UserIsolation(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()
	_, alice := ts.NewUser(t, "alice")
	_, bob := ts.NewUser(t, "bob")

	for _, name := range []string{"Payroll", "CRM"} {
		if err := alice.CreateWorkload(ctx, &model.Workload{Name: name}); err != nil {
			t.Fatalf("Failed to create workload: %v", err)
		}
	}

	ws, err := bob.ListWorkloads(ctx, client.ListOptions{})
	if err != nil {
		t.Fatalf("Failed to list workloads: %v", err)
	}
	if len(ws) != 0 {
		t.Errorf("bob sees %d of alice's workloads", len(ws))
	}

	var dash views.Dashboard
	if err := bob.View(ctx, views.ViewDashboard, nil, &dash); err != nil {
		t.Fatalf("Failed to load dashboard: %v", err)
	}
	if dash.TotalWorkloads != 0 || dash.RecentWorkloads == nil {
		t.Errorf("bob dashboard = %+v, want empty non-nil lists", dash)
	}
}

func TestAPI_Integration_InvalidToken(t *testing.T) {
	ts := NewTestServer(t)
	u, _ := ts.NewUser(t, "alice")

	bad := client.New(ts.URL(), auth.FormatToken(u.ID, "not-the-secret"))
	_, err := bad.ListWorkloads(context.Background(), client.ListOptions{})
	if !client.IsStatus(err, http.StatusUnauthorized) {
		t.Errorf("Expected 401, got %v", err)
	}
}

func TestAPI_Integration_Views(t *testing.T) {
	ts := NewTestServer(t)
	ctx := context.Background()
	_, c := ts.NewUser(t, "alice")

	seed := []model.Workload{
		{Name: "DB1", Strategy: model.StrategyReplatform, EstimatedCost: 1000, EstimatedDuration: 30, Status: model.StatusCompleted},
		{Name: "Web", Strategy: model.StrategyRehost, EstimatedCost: 500, EstimatedDuration: 5, RiskLevel: model.LevelHigh},
		{Name: "Fax", Strategy: model.StrategyRetire, Description: "legacy fax gateway"},
	}
	for i := range seed {
		if err := c.CreateWorkload(ctx, &seed[i]); err != nil {
			t.Fatalf("Failed to create workload: %v", err)
		}
	}

	t.Run("Analytics", func(t *testing.T) {
		var a views.Analytics
		if err := c.View(ctx, views.ViewAnalytics, nil, &a); err != nil {
			t.Fatalf("Failed to load analytics: %v", err)
		}
		if a.Summary.TotalWorkloads != 3 || a.Summary.TotalCost != 1500 {
			t.Errorf("Summary = %+v", a.Summary)
		}
		if a.PotentialSavings != 400 {
			t.Errorf("PotentialSavings = %v, want 400", a.PotentialSavings)
		}
	})

	t.Run("Planning", func(t *testing.T) {
		var p views.Planning
		if err := c.View(ctx, views.ViewPlanning, map[string][]string{"q": {"FAX"}}, &p); err != nil {
			t.Fatalf("Failed to load planning: %v", err)
		}
		if len(p.Workloads) != 1 || p.Workloads[0].Name != "Fax" {
			t.Errorf("Workloads = %+v", p.Workloads)
		}
		if p.Total != 3 {
			t.Errorf("Total = %d, want 3", p.Total)
		}
	})

	t.Run("Timeline", func(t *testing.T) {
		var tl views.Timeline
		if err := c.View(ctx, views.ViewTimeline, nil, &tl); err != nil {
			t.Fatalf("Failed to load timeline: %v", err)
		}
		if len(tl.Entries) != 3 || tl.Entries[0].Workload.Name != "DB1" {
			t.Errorf("Entries not oldest first: %+v", tl.Entries)
		}
		if tl.ProgressLabel != "33.3%" {
			t.Errorf("ProgressLabel = %q", tl.ProgressLabel)
		}
	})

	t.Run("Assessment", func(t *testing.T) {
		var a views.Assessment
		if err := c.View(ctx, views.ViewAssessment, nil, &a); err != nil {
			t.Fatalf("Failed to load assessment: %v", err)
		}
		if a.HighRisk != 1 || a.RetireCandidates != 1 {
			t.Errorf("HighRisk = %d, RetireCandidates = %d", a.HighRisk, a.RetireCandidates)
		}
	})
}

func TestAPI_Integration_PublicEndpoints(t *testing.T) {
	ts := NewTestServer(t)

	tests := []struct {
		path     string
		status   int
		contains string
	}{
		{"/api/health", http.StatusOK, `"database":"ready"`},
		{"/", http.StatusOK, "Add Your First Workload"},
		{"/metrics", http.StatusOK, "migrateplan_http_requests_total"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			resp, err := http.Get(ts.URL() + tt.path)
			if err != nil {
				t.Fatalf("GET %s: %v", tt.path, err)
			}
			defer resp.Body.Close()
			body, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != tt.status {
				t.Fatalf("Expected status %d, got %d", tt.status, resp.StatusCode)
			}
			if !strings.Contains(string(body), tt.contains) {
				t.Errorf("body missing %q", tt.contains)
			}
		})
	}
}

func TestAPI_Integration_MCPRequiresToken(t *testing.T) {
	ts := NewTestServer(t)

	req, _ := http.NewRequest("POST", ts.URL()+"/mcp", strings.NewReader(`{"jsonrpc":"2.0","id":1,"method":"tools/list"}`))
	req.Header.Set("Content-Type", "application/json")
	resp := doAs(t, ts, req, "")
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("Expected 401, got %d", resp.StatusCode)
	}
}

func TestAPI_Integration_Me(t *testing.T) {
	ts := NewTestServer(t)
	u, token, err := ts.authn.Issue(context.Background(), "carol")
	if err != nil {
		t.Fatalf("Failed to issue user: %v", err)
	}

	req, _ := http.NewRequest("GET", ts.URL()+"/api/me", nil)
	resp := doAs(t, ts, req, token)
	defer resp.Body.Close()

	var me auth.Identity
	if err := json.NewDecoder(resp.Body).Decode(&me); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if me.UserID != u.ID || me.Name != "carol" {
		t.Errorf("me = %+v, want %s/carol", me, u.ID)
	}
}

func doAs(t *testing.T, ts *TestServer, req *http.Request, token string) *http.Response {
	t.Helper()
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := ts.server.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", req.Method, req.URL, err)
	}
	return resp
}
