package plan

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/martinsuchenak/migrateplan/internal/client"
	"github.com/martinsuchenak/migrateplan/internal/config"
	"github.com/martinsuchenak/migrateplan/internal/model"
	"github.com/martinsuchenak/migrateplan/internal/output"
	"github.com/paularlott/cli"
)

func Commands() []*cli.Command {
	return []*cli.Command{
		addCommand(),
		listCommand(),
	}
}

func newClient() *client.Client {
	cfg := config.LoadClient()
	return client.New(cfg.ServerURL, cfg.Token)
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:        "add",
		Usage:       "Add a migration plan",
		Description: "Group workloads into a scheduled migration plan",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Plan name", Required: true},
			&cli.StringFlag{Name: "description", Usage: "Plan description"},
			&cli.StringFlag{Name: "workloads", Usage: "Comma-separated workload IDs"},
			&cli.StringFlag{Name: "start", Usage: "Start date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "end", Usage: "End date (YYYY-MM-DD)"},
			&cli.StringFlag{Name: "cost", Usage: "Total cost in dollars", DefaultValue: "0"},
			&cli.StringFlag{Name: "status", Usage: "draft, approved, in-progress or completed", DefaultValue: "draft"},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			cost, err := strconv.ParseFloat(cmd.GetString("cost"), 64)
			if err != nil {
				return fmt.Errorf("invalid --cost %q", cmd.GetString("cost"))
			}
			p := &model.MigrationPlan{
				Name:        cmd.GetString("name"),
				Description: cmd.GetString("description"),
				WorkloadIDs: output.SplitList(cmd.GetString("workloads")),
				StartDate:   cmd.GetString("start"),
				EndDate:     cmd.GetString("end"),
				TotalCost:   cost,
				Status:      model.PlanStatus(cmd.GetString("status")),
			}
			if err := newClient().CreatePlan(ctx, p); err != nil {
				return err
			}
			return output.Stdout(cmd.GetBool("json")).Value(p, func(w io.Writer) {
				fmt.Fprintf(w, "Plan created: %s (ID: %s)\n", p.Name, p.ID)
			})
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List migration plans",
		Description: "List migration plans, newest first",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "limit", Usage: "Maximum number of plans"},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			plans, err := newClient().ListPlans(ctx, client.ListOptions{Limit: cmd.GetInt("limit")})
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(plans))
			for _, p := range plans {
				rows = append(rows, []string{
					p.ID, p.Name, string(p.Status), strconv.Itoa(len(p.WorkloadIDs)),
					output.Money(p.TotalCost), output.Dash(p.StartDate), output.Dash(p.EndDate),
				})
			}
			return output.Stdout(cmd.GetBool("json")).Table(plans,
				[]string{"ID", "NAME", "STATUS", "WORKLOADS", "COST", "START", "END"}, rows)
		},
	}
}
