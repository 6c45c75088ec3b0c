package main

import (
	"context"
	"os"

	"github.com/martinsuchenak/migrateplan/cmd/datacenter"
	"github.com/martinsuchenak/migrateplan/cmd/plan"
	"github.com/martinsuchenak/migrateplan/cmd/report"
	"github.com/martinsuchenak/migrateplan/cmd/server"
	"github.com/martinsuchenak/migrateplan/cmd/user"
	"github.com/martinsuchenak/migrateplan/cmd/workload"
	"github.com/martinsuchenak/migrateplan/internal/config"
	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/paularlott/cli"
	"github.com/paularlott/cli/env"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	// Load .env file if it exists
	env.Load()

	log.Configure("info", "console")

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:         "log-level",
			Usage:        "Log level (trace, debug, info, warn, error)",
			DefaultValue: "info",
			EnvVars:      []string{"MIGRATEPLAN_LOG_LEVEL"},
			Global:       true,
		},
		&cli.StringFlag{
			Name:         "log-format",
			Usage:        "Log format (console, json)",
			DefaultValue: "console",
			EnvVars:      []string{"MIGRATEPLAN_LOG_FORMAT"},
			Global:       true,
		},
		&cli.BoolFlag{
			Name:   "json",
			Usage:  "Print JSON even on a terminal",
			Global: true,
		},
	}
	flags = append(flags, config.ClientFlags()...)

	rootCmd := &cli.Command{
		Name:        "migrateplan",
		Version:     version,
		Usage:       "Cloud migration planning with the 6 Rs",
		Description: "Track workloads, data centers and migration plans, with a web dashboard, MCP tools and a CLI",
		Flags:       flags,
		PreRun: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			log.Configure(cmd.GetString("log-level"), cmd.GetString("log-format"))
			log.Debug("migrateplan starting", "version", version, "commit", commit, "date", date)
			return ctx, nil
		},
		Commands: []*cli.Command{
			server.Command(),
			{
				Name:        "user",
				Usage:       "User management commands",
				Description: "Create users and issue API tokens",
				Commands:    user.Commands(),
			},
			{
				Name:        "workload",
				Usage:       "Workload commands",
				Description: "Add and list workloads",
				Commands:    workload.Commands(),
			},
			{
				Name:        "datacenter",
				Usage:       "Data center commands",
				Description: "Add and list source and target data centers",
				Commands:    datacenter.Commands(),
			},
			{
				Name:        "plan",
				Usage:       "Migration plan commands",
				Description: "Add and list migration plans",
				Commands:    plan.Commands(),
			},
			report.Command(),
		},
	}

	if err := rootCmd.Execute(context.Background()); err != nil {
		log.Error("Command execution failed", "error", err)
		os.Exit(1)
	}
}
