package report

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/martinsuchenak/migrateplan/internal/analytics"
	"github.com/martinsuchenak/migrateplan/internal/client"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/output"
	"github.com/martinsuchenak/migrateplan/internal/views"
)

func viewServer(t *testing.T, pages map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		name := strings.TrimPrefix(r.URL.Path, "/api/views/")
		page, ok := pages[name]
		if !ok {
			http.NotFound(w, r)
			return
		}
		json.NewEncoder(w).Encode(page)
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestRunHuman(t *testing.T) {
	created := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	db := model.Workload{ID: "w1", Name: "DB1", Strategy: model.StrategyRehost, Status: model.StatusPlanning,
		RiskLevel: model.LevelHigh, EstimatedCost: 5000, EstimatedDuration: 10, CreatedAt: created}

	srv := viewServer(t, map[string]any{
		"dashboard": views.Dashboard{TotalWorkloads: 1, TotalCost: 5000, RecentWorkloads: []model.Workload{db}},
		"analytics": views.Analytics{
			Summary:          analytics.Summary{TotalWorkloads: 1, TotalCost: 5000, AvgCost: 5000},
			PotentialSavings: 1000,
		},
		"timeline": views.Timeline{
			ProgressLabel: "0.0%",
			Entries:       []analytics.TimelineEntry{{Workload: db, Start: created, End: created.AddDate(0, 0, 10)}},
		},
	})
	c := client.New(srv.URL, "")

	tests := []struct {
		view string
		want []string
	}{
		{"dashboard", []string{"Workloads: 1", "$5,000", "DB1"}},
		{"analytics", []string{"Potential savings: $1,000"}},
		{"timeline", []string{"Progress: 0.0%", "2026-01-01", "2026-01-11"}},
	}
	for _, tt := range tests {
		t.Run(tt.view, func(t *testing.T) {
			var buf bytes.Buffer
			if err := Run(context.Background(), c, output.Human(&buf), tt.view, nil); err != nil {
				t.Fatalf("Run() error = %v", err)
			}
			for _, want := range tt.want {
				if !strings.Contains(buf.String(), want) {
					t.Errorf("output missing %q:\n%s", want, buf.String())
				}
			}
		})
	}
}

func TestRunEmptyDashboard(t *testing.T) {
	srv := viewServer(t, map[string]any{"dashboard": views.Dashboard{Degraded: true}})

	var buf bytes.Buffer
	if err := Run(context.Background(), client.New(srv.URL, ""), output.Human(&buf), "dashboard", nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if !strings.Contains(buf.String(), "could not be loaded") || !strings.Contains(buf.String(), "No workloads yet") {
		t.Errorf("output = %q", buf.String())
	}
}

func TestRunJSON(t *testing.T) {
	srv := viewServer(t, map[string]any{"map": views.Map{Sources: 2, Targets: 1}})

	var buf bytes.Buffer
	if err := Run(context.Background(), client.New(srv.URL, ""), output.New(&buf, true), "map", nil); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	var got views.Map
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("output is not JSON: %v", err)
	}
	if got.Sources != 2 || got.Targets != 1 {
		t.Errorf("got %+v", got)
	}
}

func TestRunUnknownView(t *testing.T) {
	var buf bytes.Buffer
	if err := Run(context.Background(), client.New("http://127.0.0.1:0", ""), output.Human(&buf), "nope", nil); err == nil {
		t.Error("Run() error = nil for unknown view")
	}
}
