package mcp

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/martinsuchenak/migrateplan/internal/analytics"
	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/martinsuchenak/migrateplan/internal/metrics"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/storage"
	"github.com/martinsuchenak/migrateplan/internal/views"
	"github.com/paularlott/mcp"
)

// Server wraps the MCP server with migration planning storage.
// Every tool call acts as userID.
type Server struct {
	mcpServer   *mcp.Server
	storage     storage.Storage
	views       *views.Loader
	bearerToken string
	userID      string
}

// NewServer creates a new MCP server for migration planning
func NewServer(storage storage.Storage, bearerToken, userID string) *Server {
	s := &Server{
		mcpServer:   mcp.NewServer("migrateplan", "1.0.0"),
		storage:     storage,
		views:       views.NewLoader(storage),
		bearerToken: bearerToken,
		userID:      userID,
	}
	s.registerTools()
	return s
}

func (s *Server) registerTools() {
	// Workload tools

	s.mcpServer.RegisterTool(
		mcp.NewTool("workload_save", "Add a workload to the migration portfolio. Omitted enums take the defaults rehost, medium and planning.",
			mcp.String("name", "Workload name", mcp.Required()),
			mcp.String("description", "Workload description"),
			mcp.String("current_location", "Name of the source data center"),
			mcp.String("target_location", "Name of the target data center"),
			mcp.String("strategy", "One of rehost, replatform, refactor, repurchase, retire, retain"),
			mcp.String("complexity", "low, medium or high"),
			mcp.String("priority", "low, medium or high"),
			mcp.String("risk_level", "low, medium or high"),
			mcp.String("status", "planning, in-progress, completed or on-hold"),
			mcp.Number("estimated_cost", "Estimated cost in dollars"),
			mcp.Number("estimated_duration", "Estimated duration in days"),
			mcp.StringArray("dependencies", "Free-form dependency labels"),
		),
		s.handleWorkloadSave,
	)

	s.mcpServer.RegisterTool(
		mcp.NewTool("workload_list", "List workloads, newest first",
			mcp.String("query", "Case-insensitive match on name or description"),
			mcp.String("strategy", "Only workloads with this strategy"),
			mcp.Number("limit", "Maximum number of workloads"),
		),
		s.handleWorkloadList,
	)

	// Data center tools

	s.mcpServer.RegisterTool(
		mcp.NewTool("datacenter_save", "Add a source or target data center",
			mcp.String("name", "Data center name", mcp.Required()),
			mcp.String("location", "Physical or cloud region"),
			mcp.String("type", "source or target"),
			mcp.Number("capacity", "Capacity units (default 100)"),
			mcp.Number("current_utilization", "Units in use"),
		),
		s.handleDataCenterSave,
	)

	s.mcpServer.RegisterTool(
		mcp.NewTool("datacenter_list", "List data centers with utilization",
			mcp.String("type", "Only source or target data centers"),
		),
		s.handleDataCenterList,
	)

	// Plan tools

	s.mcpServer.RegisterTool(
		mcp.NewTool("plan_save", "Add a migration plan",
			mcp.String("name", "Plan name", mcp.Required()),
			mcp.String("description", "Plan description"),
			mcp.StringArray("workload_ids", "Workload IDs in the plan"),
			mcp.String("start_date", "Start date (YYYY-MM-DD)"),
			mcp.String("end_date", "End date (YYYY-MM-DD)"),
			mcp.Number("total_cost", "Total cost in dollars"),
			mcp.String("status", "draft, approved, in-progress or completed"),
		),
		s.handlePlanSave,
	)

	s.mcpServer.RegisterTool(
		mcp.NewTool("plan_list", "List migration plans, newest first",
			mcp.Number("limit", "Maximum number of plans"),
		),
		s.handlePlanList,
	)

	s.mcpServer.RegisterTool(
		mcp.NewTool("strategy_list", "Describe the 6 Rs migration strategies"),
		s.handleStrategyList,
	)

	// Page views, returned as JSON

	s.mcpServer.RegisterTool(
		mcp.NewTool("view_dashboard", "Portfolio overview: totals, strategy distribution, recent workloads and plans"),
		s.handleViewDashboard,
	)
	s.mcpServer.RegisterTool(
		mcp.NewTool("view_analytics", "Distributions, data center utilization, potential savings and risk advisories"),
		s.handleViewAnalytics,
	)
	s.mcpServer.RegisterTool(
		mcp.NewTool("view_timeline", "Migration schedule, progress and upcoming milestones"),
		s.handleViewTimeline,
	)
	s.mcpServer.RegisterTool(
		mcp.NewTool("view_assessment", "Assessment progress, risk and complexity breakdown, quick wins"),
		s.handleViewAssessment,
	)
}

// HandleRequest handles MCP HTTP requests with optional bearer token authentication
func (s *Server) HandleRequest(w http.ResponseWriter, r *http.Request) {
	log.Debug("MCP request received", "method", r.Method, "path", r.URL.Path, "remote_addr", r.RemoteAddr)

	if s.bearerToken != "" {
		auth := r.Header.Get("Authorization")
		if auth == "" {
			log.Warn("MCP request missing Authorization header", "remote_addr", r.RemoteAddr)
			http.Error(w, "Unauthorized: Missing Authorization header", http.StatusUnauthorized)
			return
		}
		if !strings.HasPrefix(auth, "Bearer ") {
			log.Warn("MCP request invalid Authorization format", "remote_addr", r.RemoteAddr)
			http.Error(w, "Unauthorized: Invalid Authorization format", http.StatusUnauthorized)
			return
		}
		if strings.TrimPrefix(auth, "Bearer ") != s.bearerToken {
			log.Warn("MCP request invalid token", "remote_addr", r.RemoteAddr)
			http.Error(w, "Unauthorized: Invalid token", http.StatusUnauthorized)
			return
		}
	}

	s.mcpServer.HandleRequest(w, r)
}

func (s *Server) handleWorkloadSave(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	name, err := req.String("name")
	if err != nil || strings.TrimSpace(name) == "" {
		return nil, mcp.NewToolErrorInvalidParams("name is required")
	}
	cost, err := optionalFloat(req, "estimated_cost", 0)
	if err != nil {
		return nil, mcp.NewToolErrorInvalidParams(err.Error())
	}
	days, err := optionalInt(req, "estimated_duration", 0)
	if err != nil {
		return nil, mcp.NewToolErrorInvalidParams(err.Error())
	}
	deps, _ := req.StringSlice("dependencies")

	w := &model.Workload{
		Name:              name,
		Description:       req.StringOr("description", ""),
		CurrentLocation:   req.StringOr("current_location", ""),
		TargetLocation:    req.StringOr("target_location", ""),
		Strategy:          model.Strategy(req.StringOr("strategy", "")),
		Complexity:        model.Level(req.StringOr("complexity", "")),
		Priority:          model.Level(req.StringOr("priority", "")),
		RiskLevel:         model.Level(req.StringOr("risk_level", "")),
		Status:            model.WorkloadStatus(req.StringOr("status", "")),
		EstimatedCost:     cost,
		EstimatedDuration: days,
		Dependencies:      deps,
		UserID:            s.userID,
	}
	if err := s.storage.CreateWorkload(ctx, w); err != nil {
		return nil, createError("workload", err)
	}
	metrics.RecordsCreated.WithLabelValues("workload").Inc()
	log.Info("Workload created via MCP", "id", w.ID, "name", w.Name, "user_id", s.userID)
	return mcp.NewToolResponseText(fmt.Sprintf("Workload created: %s (ID: %s)", w.Name, w.ID)), nil
}

func (s *Server) handleWorkloadList(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	limit, err := optionalInt(req, "limit", 0)
	if err != nil || limit < 0 {
		return nil, mcp.NewToolErrorInvalidParams("limit must be a non-negative whole number")
	}
	strategy := model.Strategy(req.StringOr("strategy", ""))
	if strategy != "" && !strategy.Valid() {
		return nil, mcp.NewToolErrorInvalidParams(fmt.Sprintf("unknown strategy %q", strategy))
	}
	workloads, err := s.storage.ListWorkloads(ctx, &model.WorkloadFilter{
		UserID:   s.userID,
		Strategy: strategy,
		Query:    req.StringOr("query", ""),
		Limit:    limit,
	})
	if err != nil {
		return nil, mcp.NewToolErrorInternal("failed to list workloads: " + err.Error())
	}
	if len(workloads) == 0 {
		return mcp.NewToolResponseText("No workloads found"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d workload(s):\n\n", len(workloads))
	for _, w := range workloads {
		fmt.Fprintf(&b, "- %s (ID: %s)\n  %s | %s | risk %s | $%s | %d days\n",
			w.Name, w.ID, model.Strategies[w.Strategy].Name, w.Status, w.RiskLevel,
			humanize.CommafWithDigits(w.EstimatedCost, 2), w.EstimatedDuration)
		if w.CurrentLocation != "" || w.TargetLocation != "" {
			fmt.Fprintf(&b, "  %s -> %s\n", orDash(w.CurrentLocation), orDash(w.TargetLocation))
		}
	}
	return mcp.NewToolResponseText(b.String()), nil
}

func (s *Server) handleDataCenterSave(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	name, err := req.String("name")
	if err != nil || strings.TrimSpace(name) == "" {
		return nil, mcp.NewToolErrorInvalidParams("name is required")
	}
	capacity, err := optionalFloat(req, "capacity", model.DefaultCapacity)
	if err != nil {
		return nil, mcp.NewToolErrorInvalidParams(err.Error())
	}
	used, err := optionalFloat(req, "current_utilization", 0)
	if err != nil {
		return nil, mcp.NewToolErrorInvalidParams(err.Error())
	}

	dc := &model.DataCenter{
		Name:               name,
		Location:           req.StringOr("location", ""),
		Type:               model.DataCenterType(req.StringOr("type", "")),
		Capacity:           capacity,
		CurrentUtilization: used,
		UserID:             s.userID,
	}
	if err := s.storage.CreateDataCenter(ctx, dc); err != nil {
		return nil, createError("data center", err)
	}
	metrics.RecordsCreated.WithLabelValues("datacenter").Inc()
	log.Info("Data center created via MCP", "id", dc.ID, "name", dc.Name, "user_id", s.userID)
	return mcp.NewToolResponseText(fmt.Sprintf("Data center created: %s (ID: %s)", dc.Name, dc.ID)), nil
}

func (s *Server) handleDataCenterList(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	dcType := model.DataCenterType(req.StringOr("type", ""))
	if dcType != "" && !dcType.Valid() {
		return nil, mcp.NewToolErrorInvalidParams("type must be source or target")
	}
	dcs, err := s.storage.ListDataCenters(ctx, &model.DataCenterFilter{UserID: s.userID, Type: dcType})
	if err != nil {
		return nil, mcp.NewToolErrorInternal("failed to list data centers: " + err.Error())
	}
	if len(dcs) == 0 {
		return mcp.NewToolResponseText("No data centers found"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d data center(s):\n\n", len(dcs))
	for _, dc := range dcs {
		fmt.Fprintf(&b, "- %s (ID: %s) [%s]\n  %s | %s of %s used (%s)\n",
			dc.Name, dc.ID, dc.Type, orDash(dc.Location),
			humanize.Ftoa(dc.CurrentUtilization), humanize.Ftoa(dc.Capacity), analytics.Utilization(dc).Label)
	}
	return mcp.NewToolResponseText(b.String()), nil
}

func (s *Server) handlePlanSave(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	name, err := req.String("name")
	if err != nil || strings.TrimSpace(name) == "" {
		return nil, mcp.NewToolErrorInvalidParams("name is required")
	}
	cost, err := optionalFloat(req, "total_cost", 0)
	if err != nil {
		return nil, mcp.NewToolErrorInvalidParams(err.Error())
	}
	ids, _ := req.StringSlice("workload_ids")

	p := &model.MigrationPlan{
		Name:        name,
		Description: req.StringOr("description", ""),
		WorkloadIDs: ids,
		StartDate:   req.StringOr("start_date", ""),
		EndDate:     req.StringOr("end_date", ""),
		TotalCost:   cost,
		Status:      model.PlanStatus(req.StringOr("status", "")),
		UserID:      s.userID,
	}
	if err := s.storage.CreatePlan(ctx, p); err != nil {
		return nil, createError("plan", err)
	}
	metrics.RecordsCreated.WithLabelValues("plan").Inc()
	log.Info("Plan created via MCP", "id", p.ID, "name", p.Name, "user_id", s.userID)
	return mcp.NewToolResponseText(fmt.Sprintf("Plan created: %s (ID: %s)", p.Name, p.ID)), nil
}

func (s *Server) handlePlanList(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	limit, err := optionalInt(req, "limit", 0)
	if err != nil || limit < 0 {
		return nil, mcp.NewToolErrorInvalidParams("limit must be a non-negative whole number")
	}
	plans, err := s.storage.ListPlans(ctx, &model.PlanFilter{UserID: s.userID, Limit: limit})
	if err != nil {
		return nil, mcp.NewToolErrorInternal("failed to list plans: " + err.Error())
	}
	if len(plans) == 0 {
		return mcp.NewToolResponseText("No plans found"), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Found %d plan(s):\n\n", len(plans))
	for _, p := range plans {
		fmt.Fprintf(&b, "- %s (ID: %s) [%s]\n  %d workload(s) | $%s | %s to %s\n",
			p.Name, p.ID, p.Status, len(p.WorkloadIDs),
			humanize.CommafWithDigits(p.TotalCost, 2), orDash(p.StartDate), orDash(p.EndDate))
	}
	return mcp.NewToolResponseText(b.String()), nil
}

func (s *Server) handleStrategyList(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	var b strings.Builder
	for _, key := range model.StrategyOrder {
		info := model.Strategies[key]
		fmt.Fprintf(&b, "%s %s [%s]\n  %s\n  complexity %s | %s | cost saving %s\n",
			info.Icon, info.Name, info.Key, info.Description, info.Complexity, info.Timeframe, info.CostSaving)
	}
	return mcp.NewToolResponseText(b.String()), nil
}

func (s *Server) handleViewDashboard(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	return jsonResponse(s.views.Dashboard(ctx, s.userID))
}

func (s *Server) handleViewAnalytics(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	return jsonResponse(s.views.Analytics(ctx, s.userID))
}

func (s *Server) handleViewTimeline(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	return jsonResponse(s.views.Timeline(ctx, s.userID))
}

func (s *Server) handleViewAssessment(ctx context.Context, req *mcp.ToolRequest) (*mcp.ToolResponse, error) {
	return jsonResponse(s.views.Assessment(ctx, s.userID))
}

// Utility functions

func jsonResponse(v any) (*mcp.ToolResponse, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, mcp.NewToolErrorInternal("failed to encode view: " + err.Error())
	}
	return mcp.NewToolResponseText(string(data)), nil
}

// optionalFloat reads a numeric parameter sent either as a JSON number or
// as a numeric string. Missing or blank yields def.
func optionalFloat(req *mcp.ToolRequest, name string, def float64) (float64, error) {
	if v, err := req.Float(name); err == nil {
		return v, nil
	}
	raw := strings.TrimSpace(req.StringOr(name, ""))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%s must be a number", name)
	}
	return v, nil
}

// optionalInt is optionalFloat for whole numbers. Fractions are rejected,
// not truncated.
func optionalInt(req *mcp.ToolRequest, name string, def int) (int, error) {
	if v, err := req.Float(name); err == nil {
		if v != math.Trunc(v) || math.Abs(v) > math.MaxInt32 {
			return 0, fmt.Errorf("%s must be a whole number", name)
		}
		return int(v), nil
	}
	raw := strings.TrimSpace(req.StringOr(name, ""))
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be a whole number", name)
	}
	return n, nil
}

func createError(kind string, err error) error {
	if errors.Is(err, model.ErrInvalid) {
		return mcp.NewToolErrorInvalidParams(err.Error())
	}
	log.Error("MCP create failed", "kind", kind, "error", err)
	return mcp.NewToolErrorInternal("failed to create " + kind)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
