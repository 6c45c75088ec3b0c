package report

import (
	"context"
	"fmt"
	"io"
	"net/url"
	"slices"
	"strings"
	"text/tabwriter"

	"github.com/dustin/go-humanize"
	"github.com/martinsuchenak/migrateplan/internal/analytics"
	"github.com/martinsuchenak/migrateplan/internal/client"
	"github.com/martinsuchenak/migrateplan/internal/config"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/output"
	"github.com/martinsuchenak/migrateplan/internal/views"
	"github.com/paularlott/cli"
)

func Command() *cli.Command {
	return &cli.Command{
		Name:        "report",
		Usage:       "Print a page view",
		Description: "Print one of: " + strings.Join(views.Names, ", "),
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "view", Required: true},
		},
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Planning: search text"},
			&cli.StringFlag{Name: "strategy", Usage: "Planning: strategy filter"},
			&cli.StringFlag{Name: "zoom", Usage: "Map: zoom factor"},
			&cli.StringFlag{Name: "action", Usage: "Map: zoom_in, zoom_out or reset"},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			name := cmd.GetStringArg("view")
			if !slices.Contains(views.Names, name) {
				return fmt.Errorf("unknown view %q (want one of %s)", name, strings.Join(views.Names, ", "))
			}
			query := url.Values{}
			for _, f := range []struct{ flag, param string }{{"query", "q"}, {"strategy", "strategy"}, {"zoom", "zoom"}, {"action", "action"}} {
				if v := cmd.GetString(f.flag); v != "" {
					query.Set(f.param, v)
				}
			}

			cfg := config.LoadClient()
			return Run(ctx, client.New(cfg.ServerURL, cfg.Token), output.Stdout(cmd.GetBool("json")), name, query)
		},
	}
}

// Run fetches view name and prints it with p.
func Run(ctx context.Context, c *client.Client, p *output.Printer, name string, query url.Values) error {
	switch name {
	case views.ViewDashboard:
		return fetchAndPrint(ctx, c, p, name, query, printDashboard)
	case views.ViewPlanning:
		return fetchAndPrint(ctx, c, p, name, query, printPlanning)
	case views.ViewMap:
		return fetchAndPrint(ctx, c, p, name, query, printMap)
	case views.ViewAssessment:
		return fetchAndPrint(ctx, c, p, name, query, printAssessment)
	case views.ViewTimeline:
		return fetchAndPrint(ctx, c, p, name, query, printTimeline)
	case views.ViewAnalytics:
		return fetchAndPrint(ctx, c, p, name, query, printAnalytics)
	}
	return fmt.Errorf("unknown view %q", name)
}

func fetchAndPrint[T any](ctx context.Context, c *client.Client, p *output.Printer, name string, query url.Values, human func(io.Writer, *T)) error {
	var v T
	if err := c.View(ctx, name, query, &v); err != nil {
		return err
	}
	return p.Value(&v, func(w io.Writer) { human(w, &v) })
}

func degraded(w io.Writer, d bool) {
	if d {
		fmt.Fprintln(w, "warning: some data could not be loaded")
	}
}

func printBuckets(w io.Writer, title string, buckets []analytics.Bucket) {
	fmt.Fprintf(w, "\n%s\n", title)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, b := range buckets {
		fmt.Fprintf(tw, "  %s\t%d\t%d%%\n", b.Key, b.Count, b.Rounded)
	}
	tw.Flush()
}

func printWorkloads(w io.Writer, title string, ws []model.Workload) {
	fmt.Fprintf(w, "\n%s\n", title)
	if len(ws) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, wl := range ws {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%s\n", wl.Name, wl.Strategy, wl.Status, wl.RiskLevel, output.Money(wl.EstimatedCost))
	}
	tw.Flush()
}

func printDashboard(w io.Writer, d *views.Dashboard) {
	degraded(w, d.Degraded)
	if d.TotalWorkloads == 0 {
		fmt.Fprintln(w, "No workloads yet. Add one with: migrateplan workload add --name <name>")
		return
	}
	fmt.Fprintf(w, "Workloads: %d  In progress: %d  Completed: %d  Cost: %s\n",
		d.TotalWorkloads, d.InProgress, d.Completed, output.Money(d.TotalCost))
	printBuckets(w, "Strategy distribution", d.StrategyDistribution)
	printWorkloads(w, "Recent workloads", d.RecentWorkloads)
	fmt.Fprintln(w, "\nPlans")
	for _, p := range d.Plans {
		fmt.Fprintf(w, "  %s [%s] %s\n", p.Name, p.Status, output.Money(p.TotalCost))
	}
}

func printPlanning(w io.Writer, d *views.Planning) {
	degraded(w, d.Degraded)
	fmt.Fprintf(w, "Showing %d of %d workloads (strategy: %s)\n", len(d.Workloads), d.Total, d.Strategy)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "\nSTRATEGY\tCOUNT\tCOST\tSAVINGS")
	for _, s := range d.StrategyStats {
		fmt.Fprintf(tw, "%s %s\t%d\t%s\t%s\n", s.Icon, s.Name, s.Count, output.Money(s.TotalCost), output.Money(s.Savings))
	}
	tw.Flush()
	printWorkloads(w, "Workloads", d.Workloads)
}

func printMap(w io.Writer, d *views.Map) {
	degraded(w, d.Degraded)
	fmt.Fprintf(w, "%d source and %d target data centers (zoom %.0f%%)\n", d.Sources, d.Targets, d.Layout.Viewport.Zoom*100)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, n := range d.Layout.Nodes {
		fmt.Fprintf(tw, "  %s\t%s\t%s\t%d workloads\n", n.DataCenter.Name, n.DataCenter.Type, n.Utilization.Label, n.Workloads)
	}
	tw.Flush()
	fmt.Fprintln(w, "\nMigrations")
	dcName := make(map[string]string, len(d.Layout.Nodes))
	for _, n := range d.Layout.Nodes {
		dcName[n.DataCenter.ID] = n.DataCenter.Name
	}
	for _, a := range d.Layout.Arrows {
		fmt.Fprintf(w, "  %s: %s -> %s\n", a.WorkloadName, dcName[a.SourceID], dcName[a.TargetID])
	}
}

func printAssessment(w io.Writer, d *views.Assessment) {
	degraded(w, d.Degraded)
	fmt.Fprintf(w, "Assessed %d of %d (%.0f%%)  High risk: %d  High complexity: %d  Avg duration: %.0f days\n",
		d.Assessed, d.TotalWorkloads, d.AssessedPercent, d.HighRisk, d.HighComplexity, d.AvgDuration)
	printBuckets(w, "Risk", d.RiskDistribution)
	printBuckets(w, "Complexity", d.ComplexityDistribution)
	printWorkloads(w, "Quick wins", d.QuickWins)
	printWorkloads(w, "Needs attention", d.Attention)
	fmt.Fprintf(w, "\nRetire candidates: %d  Repurchase candidates: %d\n", d.RetireCandidates, d.RepurchaseCandidates)
}

func printTimeline(w io.Writer, d *views.Timeline) {
	degraded(w, d.Degraded)
	fmt.Fprintf(w, "Progress: %s\n\n", d.ProgressLabel)
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "WORKLOAD\tSTART\tEND\tSTATUS")
	for _, e := range d.Entries {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", e.Workload.Name, e.Start.Format(model.DateLayout), e.End.Format(model.DateLayout), e.Workload.Status)
	}
	tw.Flush()
	fmt.Fprintln(w, "\nUpcoming milestones")
	for _, e := range d.Milestones {
		fmt.Fprintf(w, "  %s due %s\n", e.Workload.Name, humanize.Time(e.End))
	}
}

func printAnalytics(w io.Writer, d *views.Analytics) {
	degraded(w, d.Degraded)
	s := d.Summary
	fmt.Fprintf(w, "Workloads: %d  Total cost: %s  Avg cost: %s  Avg duration: %.1f days\n",
		s.TotalWorkloads, output.Money(s.TotalCost), output.Money(s.AvgCost), s.AvgDuration)
	fmt.Fprintf(w, "Potential savings: %s\n", output.Money(d.PotentialSavings))
	printBuckets(w, "Status", d.StatusDistribution)
	printBuckets(w, "Priority", d.PriorityDistribution)
	fmt.Fprintln(w, "\nData centers")
	for _, u := range d.DataCenters {
		fmt.Fprintf(w, "  %s %s (%s)\n", u.DataCenter.Name, u.Utilization.Label, u.Utilization.Band)
	}
	for _, a := range d.Advisories {
		fmt.Fprintf(w, "\n%s: %s\n", a.Title, a.Message)
	}
}
