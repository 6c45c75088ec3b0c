package workload

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
		Usage:       "Add a workload",
		Description: "Add a workload to the migration portfolio",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Workload name", Required: true},
			&cli.StringFlag{Name: "description", Usage: "Workload description"},
			&cli.StringFlag{Name: "from", Usage: "Current (source) data center name"},
			&cli.StringFlag{Name: "to", Usage: "Target data center name"},
			&cli.StringFlag{Name: "strategy", Usage: "rehost, replatform, refactor, repurchase, retire or retain", DefaultValue: "rehost"},
			&cli.StringFlag{Name: "complexity", Usage: "low, medium or high", DefaultValue: "medium"},
			&cli.StringFlag{Name: "priority", Usage: "low, medium or high", DefaultValue: "medium"},
			&cli.StringFlag{Name: "risk", Usage: "low, medium or high", DefaultValue: "medium"},
			&cli.StringFlag{Name: "status", Usage: "planning, in-progress, completed or on-hold", DefaultValue: "planning"},
			&cli.StringFlag{Name: "cost", Usage: "Estimated cost in dollars", DefaultValue: "0"},
			&cli.IntFlag{Name: "days", Usage: "Estimated duration in days"},
			&cli.StringFlag{Name: "depends-on", Usage: "Comma-separated dependency labels"},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			cost, err := strconv.ParseFloat(cmd.GetString("cost"), 64)
			if err != nil {
				return fmt.Errorf("invalid --cost %q", cmd.GetString("cost"))
			}
			w := &model.Workload{
				Name:              cmd.GetString("name"),
				Description:       cmd.GetString("description"),
				CurrentLocation:   cmd.GetString("from"),
				TargetLocation:    cmd.GetString("to"),
				Strategy:          model.Strategy(cmd.GetString("strategy")),
				Complexity:        model.Level(cmd.GetString("complexity")),
				Priority:          model.Level(cmd.GetString("priority")),
				RiskLevel:         model.Level(cmd.GetString("risk")),
				Status:            model.WorkloadStatus(cmd.GetString("status")),
				EstimatedCost:     cost,
				EstimatedDuration: cmd.GetInt("days"),
				Dependencies:      output.SplitList(cmd.GetString("depends-on")),
			}
			if err := newClient().CreateWorkload(ctx, w); err != nil {
				return err
			}
			return output.Stdout(cmd.GetBool("json")).Value(w, func(out io.Writer) {
				fmt.Fprintf(out, "Workload created: %s (ID: %s)\n", w.Name, w.ID)
			})
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List workloads",
		Description: "List workloads, newest first",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "strategy", Usage: "Only this strategy"},
			&cli.StringFlag{Name: "query", Aliases: []string{"q"}, Usage: "Search name and description"},
			&cli.IntFlag{Name: "limit", Usage: "Maximum number of workloads"},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			workloads, err := newClient().ListWorkloads(ctx, client.ListOptions{
				Strategy: cmd.GetString("strategy"),
				Query:    cmd.GetString("query"),
				Limit:    cmd.GetInt("limit"),
			})
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(workloads))
			for _, w := range workloads {
				rows = append(rows, []string{
					w.ID, w.Name, string(w.Strategy), string(w.Status), string(w.RiskLevel),
					output.Money(w.EstimatedCost), strconv.Itoa(w.EstimatedDuration),
					output.Dash(w.CurrentLocation) + " -> " + output.Dash(w.TargetLocation),
				})
			}
			return output.Stdout(cmd.GetBool("json")).Table(workloads,
				[]string{"ID", "NAME", "STRATEGY", "STATUS", "RISK", "COST", "DAYS", "ROUTE"}, rows)
		},
	}
}
