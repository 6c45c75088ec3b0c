package views

import (
	"context"
	"fmt"

	"github.com/martinsuchenak/migrateplan/internal/analytics"
	"github.com/martinsuchenak/migrateplan/internal/mapview"
	"github.com/martinsuchenak/migrateplan/internal/model"
)

// View names, used in routes, logs and metrics.
const (
	ViewDashboard  = "dashboard"
	ViewPlanning   = "planning"
	ViewMap        = "map"
	ViewAssessment = "assessment"
	ViewTimeline   = "timeline"
	ViewAnalytics  = "analytics"
)

// Names lists every page in navigation order.
var Names = []string{ViewDashboard, ViewPlanning, ViewMap, ViewAssessment, ViewTimeline, ViewAnalytics}

const (
	dashboardWorkloadLimit = 10
	dashboardPlanLimit     = 5
	dashboardRecent        = 5
	recommendationLimit    = 3
	milestoneLimit         = 5
)

// Dashboard is the overview page.
type Dashboard struct {
	Degraded             bool                  `json:"degraded"`
	TotalWorkloads       int                   `json:"total_workloads"`
	InProgress           int                   `json:"in_progress"`
	Completed            int                   `json:"completed"`
	TotalCost            float64               `json:"total_cost"`
	StrategyDistribution []analytics.Bucket    `json:"strategy_distribution"`
	RecentWorkloads      []model.Workload      `json:"recent_workloads"`
	Plans                []model.MigrationPlan `json:"plans"`
}

// Dashboard summarizes the ten most recent workloads and five most recent
// plans.
func (l *Loader) Dashboard(ctx context.Context, userID string) Dashboard {
	d := l.load(ctx, ViewDashboard, userID, fetch{
		workloads: &model.WorkloadFilter{Limit: dashboardWorkloadLimit},
		plans:     &model.PlanFilter{Limit: dashboardPlanLimit},
	})
	sum := analytics.Summarize(d.workloads)
	recent := d.workloads
	if len(recent) > dashboardRecent {
		recent = recent[:dashboardRecent]
	}
	return Dashboard{
		Degraded:             d.degraded,
		TotalWorkloads:       sum.TotalWorkloads,
		InProgress:           sum.InProgress,
		Completed:            sum.Completed,
		TotalCost:            sum.TotalCost,
		StrategyDistribution: analytics.CountByStrategy(d.workloads),
		RecentWorkloads:      recent,
		Plans:                d.plans,
	}
}

// PlanningQuery narrows the planning page's workload list.
type PlanningQuery struct {
	Search   string
	Strategy string // "all" or empty means every strategy
}

// Planning is the workload planning page.
type Planning struct {
	Degraded      bool                     `json:"degraded"`
	Search        string                   `json:"search"`
	Strategy      string                   `json:"strategy"`
	Total         int                      `json:"total"`
	Workloads     []model.Workload         `json:"workloads"`
	StrategyStats []analytics.StrategyStat `json:"strategy_stats"`
	Filtered      bool                     `json:"filtered"`
}

// Planning lists workloads matching the search text (name or description,
// case-insensitive) and strategy. Strategy statistics always cover every
// workload.
func (l *Loader) Planning(ctx context.Context, userID string, q PlanningQuery) (Planning, error) {
	strategy := q.Strategy
	if strategy == "" {
		strategy = "all"
	}
	if strategy != "all" && !model.Strategy(strategy).Valid() {
		return Planning{}, fmt.Errorf("%w: unknown strategy %q", model.ErrInvalid, strategy)
	}

	d := l.load(ctx, ViewPlanning, userID, fetch{workloads: &model.WorkloadFilter{}})
	filtered := filterWorkloads(d.workloads, q.Search, strategy)
	return Planning{
		Degraded:      d.degraded,
		Search:        q.Search,
		Strategy:      strategy,
		Total:         len(d.workloads),
		Workloads:     filtered,
		StrategyStats: analytics.StrategyStats(d.workloads),
		Filtered:      q.Search != "" || strategy != "all",
	}, nil
}

// Map is the data center map page.
type Map struct {
	Degraded    bool               `json:"degraded"`
	Layout      mapview.Layout     `json:"layout"`
	DataCenters []model.DataCenter `json:"data_centers"`
	Sources     int                `json:"sources"`
	Targets     int                `json:"targets"`
}

func (l *Loader) Map(ctx context.Context, userID string, v mapview.Viewport) Map {
	d := l.load(ctx, ViewMap, userID, fetch{
		workloads:   &model.WorkloadFilter{},
		dataCenters: &model.DataCenterFilter{},
	})
	m := Map{
		Degraded:    d.degraded,
		Layout:      mapview.Build(d.dataCenters, d.workloads, v),
		DataCenters: d.dataCenters,
	}
	for _, dc := range d.dataCenters {
		if dc.Type == model.DataCenterTarget {
			m.Targets++
		} else {
			m.Sources++
		}
	}
	return m
}

// Assessment is the workload assessment page.
type Assessment struct {
	Degraded               bool                     `json:"degraded"`
	TotalWorkloads         int                      `json:"total_workloads"`
	Assessed               int                      `json:"assessed"`
	AssessedPercent        float64                  `json:"assessed_percent"`
	HighRisk               int                      `json:"high_risk"`
	HighComplexity         int                      `json:"high_complexity"`
	TotalCost              float64                  `json:"total_cost"`
	AvgDuration            float64                  `json:"avg_duration"`
	Strategies             []analytics.StrategyStat `json:"strategies"`
	RiskDistribution       []analytics.Bucket       `json:"risk_distribution"`
	ComplexityDistribution []analytics.Bucket       `json:"complexity_distribution"`
	HighRiskWorkloads      []model.Workload         `json:"high_risk_workloads"`
	HighComplexityItems    []model.Workload         `json:"high_complexity_workloads"`
	QuickWins              []model.Workload         `json:"quick_wins"`
	RetireCandidates       int                      `json:"retire_candidates"`
	RepurchaseCandidates   int                      `json:"repurchase_candidates"`
	Attention              []model.Workload         `json:"attention"`
}

func (l *Loader) Assessment(ctx context.Context, userID string) Assessment {
	d := l.load(ctx, ViewAssessment, userID, fetch{workloads: &model.WorkloadFilter{}})
	ws := d.workloads
	sum := analytics.Summarize(ws)
	assessed, pct := analytics.AssessmentProgress(ws)
	risk := analytics.CountByRisk(ws)
	complexity := analytics.CountByComplexity(ws)

	highComplexity := []model.Workload{}
	for _, w := range ws {
		if w.Complexity == model.LevelHigh {
			highComplexity = append(highComplexity, w)
		}
	}

	return Assessment{
		Degraded:               d.degraded,
		TotalWorkloads:         sum.TotalWorkloads,
		Assessed:               assessed,
		AssessedPercent:        pct,
		HighRisk:               analytics.CountOf(risk, string(model.LevelHigh)),
		HighComplexity:         analytics.CountOf(complexity, string(model.LevelHigh)),
		TotalCost:              sum.TotalCost,
		AvgDuration:            sum.AvgDuration,
		Strategies:             analytics.StrategyStats(ws),
		RiskDistribution:       risk,
		ComplexityDistribution: complexity,
		HighRiskWorkloads:      analytics.HighRisk(ws, len(ws)),
		HighComplexityItems:    highComplexity,
		QuickWins:              analytics.QuickWins(ws, recommendationLimit),
		RetireCandidates:       analytics.Candidates(ws, model.StrategyRetire),
		RepurchaseCandidates:   analytics.Candidates(ws, model.StrategyRepurchase),
		Attention:              analytics.HighRisk(ws, recommendationLimit),
	}
}

// Timeline is the migration schedule page.
type Timeline struct {
	Degraded      bool                      `json:"degraded"`
	Entries       []analytics.TimelineEntry `json:"entries"`
	Status        []analytics.Bucket        `json:"status"`
	Progress      float64                   `json:"progress"`
	ProgressLabel string                    `json:"progress_label"`
	Milestones    []analytics.TimelineEntry `json:"upcoming_milestones"`
	Plans         []model.MigrationPlan     `json:"plans"`
}

func (l *Loader) Timeline(ctx context.Context, userID string) Timeline {
	d := l.load(ctx, ViewTimeline, userID, fetch{
		workloads: &model.WorkloadFilter{},
		plans:     &model.PlanFilter{},
	})
	entries := analytics.Timeline(d.workloads)
	progress := analytics.Progress(d.workloads)
	return Timeline{
		Degraded:      d.degraded,
		Entries:       entries,
		Status:        analytics.CountByStatus(d.workloads),
		Progress:      progress,
		ProgressLabel: fmt.Sprintf("%.1f%%", progress),
		Milestones:    analytics.UpcomingMilestones(entries, milestoneLimit),
		Plans:         d.plans,
	}
}

// Analytics is the aggregate analytics page.
type Analytics struct {
	Degraded               bool                        `json:"degraded"`
	Summary                analytics.Summary           `json:"summary"`
	StatusDistribution     []analytics.Bucket          `json:"status_distribution"`
	StrategyDistribution   []analytics.StrategyStat    `json:"strategy_distribution"`
	RiskDistribution       []analytics.Bucket          `json:"risk_distribution"`
	ComplexityDistribution []analytics.Bucket          `json:"complexity_distribution"`
	PriorityDistribution   []analytics.Bucket          `json:"priority_distribution"`
	DataCenters            []analytics.DataCenterUsage `json:"data_centers"`
	PotentialSavings       float64                     `json:"potential_savings"`
	Advisories             []analytics.Advisory        `json:"advisories"`
}

func (l *Loader) Analytics(ctx context.Context, userID string) Analytics {
	d := l.load(ctx, ViewAnalytics, userID, fetch{
		workloads:   &model.WorkloadFilter{},
		dataCenters: &model.DataCenterFilter{},
	})
	sum := analytics.Summarize(d.workloads)
	return Analytics{
		Degraded:               d.degraded,
		Summary:                sum,
		StatusDistribution:     analytics.CountByStatus(d.workloads),
		StrategyDistribution:   analytics.StrategyStats(d.workloads),
		RiskDistribution:       analytics.CountByRisk(d.workloads),
		ComplexityDistribution: analytics.CountByComplexity(d.workloads),
		PriorityDistribution:   analytics.CountByPriority(d.workloads),
		DataCenters:            analytics.DataCenterUsages(d.dataCenters, d.workloads),
		PotentialSavings:       analytics.PotentialSavings(d.workloads),
		Advisories:             analytics.RiskAdvisories(d.workloads),
	}
}
