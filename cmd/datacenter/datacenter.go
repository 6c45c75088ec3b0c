package datacenter

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/martinsuchenak/migrateplan/internal/analytics"
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

func parseFloat(cmd *cli.Command, name string) (float64, error) {
	v, err := strconv.ParseFloat(cmd.GetString(name), 64)
	if err != nil {
		return 0, fmt.Errorf("invalid --%s %q", name, cmd.GetString(name))
	}
	return v, nil
}

func addCommand() *cli.Command {
	return &cli.Command{
		Name:        "add",
		Usage:       "Add a data center",
		Description: "Add a source or target data center. Map coordinates are random unless --x and --y are given.",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Usage: "Data center name", Required: true},
			&cli.StringFlag{Name: "location", Usage: "Physical or cloud region"},
			&cli.StringFlag{Name: "type", Usage: "source or target", DefaultValue: "source"},
			&cli.StringFlag{Name: "capacity", Usage: "Capacity units", DefaultValue: "100"},
			&cli.StringFlag{Name: "used", Usage: "Units currently in use", DefaultValue: "0"},
			&cli.StringFlag{Name: "x", Usage: "Map X coordinate"},
			&cli.StringFlag{Name: "y", Usage: "Map Y coordinate"},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			capacity, err := parseFloat(cmd, "capacity")
			if err != nil {
				return err
			}
			used, err := parseFloat(cmd, "used")
			if err != nil {
				return err
			}
			dc := &model.DataCenter{
				Name:               cmd.GetString("name"),
				Location:           cmd.GetString("location"),
				Type:               model.DataCenterType(cmd.GetString("type")),
				Capacity:           capacity,
				CurrentUtilization: used,
			}
			if cmd.GetString("x") != "" || cmd.GetString("y") != "" {
				if dc.Coordinates.X, err = parseFloat(cmd, "x"); err != nil {
					return err
				}
				if dc.Coordinates.Y, err = parseFloat(cmd, "y"); err != nil {
					return err
				}
			}
			if err := newClient().CreateDataCenter(ctx, dc); err != nil {
				return err
			}
			return output.Stdout(cmd.GetBool("json")).Value(dc, func(w io.Writer) {
				fmt.Fprintf(w, "Data center created: %s (ID: %s)\n", dc.Name, dc.ID)
			})
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List data centers",
		Description: "List data centers with utilization",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "type", Usage: "Only source or target"},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			dcs, err := newClient().ListDataCenters(ctx, client.ListOptions{Type: cmd.GetString("type")})
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(dcs))
			for _, dc := range dcs {
				u := analytics.Utilization(dc)
				rows = append(rows, []string{
					dc.ID, dc.Name, string(dc.Type), output.Dash(dc.Location), u.Label, string(u.Band),
				})
			}
			return output.Stdout(cmd.GetBool("json")).Table(dcs,
				[]string{"ID", "NAME", "TYPE", "LOCATION", "UTILIZATION", "LOAD"}, rows)
		},
	}
}
