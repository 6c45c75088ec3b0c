package config

import (
	"fmt"
	"strings"

	"github.com/paularlott/cli"
	"github.com/robfig/cron/v3"
)

const (
	DefaultDataDir          = "./data"
	DefaultListenAddr       = ":8080"
	DefaultMCPUserID        = "local"
	DefaultSnapshotSchedule = "@daily"
	DefaultSnapshotWorkers  = 4
	DefaultServerURL        = "http://localhost:8080"
)

// Config holds the server configuration
type Config struct {
	DataDir          string
	ListenAddr       string
	AuthEnabled      bool
	MCPAuthToken     string
	MCPUserID        string
	SnapshotsEnabled bool
	SnapshotSchedule string
	SnapshotWorkers  int
}

// ClientConfig holds what the CLI client commands need to reach a server.
type ClientConfig struct {
	ServerURL string
	Token     string
}

var (
	server = Config{}
	client = ClientConfig{}
)

// GetFlags returns the server flags. Values are read back with Load.
func GetFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:         "data-dir",
			Usage:        "Directory holding the SQLite database",
			DefaultValue: DefaultDataDir,
			EnvVars:      []string{"MIGRATEPLAN_DATA_DIR"},
			AssignTo:     &server.DataDir,
		},
		&cli.StringFlag{
			Name:         "listen-addr",
			Usage:        "HTTP listen address",
			DefaultValue: DefaultListenAddr,
			EnvVars:      []string{"MIGRATEPLAN_LISTEN_ADDR"},
			AssignTo:     &server.ListenAddr,
		},
		&cli.BoolFlag{
			Name:         "auth",
			Usage:        "Require a user token on /api requests",
			DefaultValue: true,
			EnvVars:      []string{"MIGRATEPLAN_AUTH"},
			AssignTo:     &server.AuthEnabled,
		},
		&cli.StringFlag{
			Name:     "mcp-token",
			Usage:    "Bearer token required on /mcp (empty disables the check)",
			EnvVars:  []string{"MIGRATEPLAN_MCP_TOKEN"},
			AssignTo: &server.MCPAuthToken,
		},
		&cli.StringFlag{
			Name:         "mcp-user",
			Usage:        "User ID that MCP tools act as",
			DefaultValue: DefaultMCPUserID,
			EnvVars:      []string{"MIGRATEPLAN_MCP_USER"},
			AssignTo:     &server.MCPUserID,
		},
		&cli.BoolFlag{
			Name:         "snapshots",
			Usage:        "Record periodic analytics snapshots",
			DefaultValue: true,
			EnvVars:      []string{"MIGRATEPLAN_SNAPSHOTS"},
			AssignTo:     &server.SnapshotsEnabled,
		},
		&cli.StringFlag{
			Name:         "snapshot-schedule",
			Usage:        "Cron schedule for analytics snapshots",
			DefaultValue: DefaultSnapshotSchedule,
			EnvVars:      []string{"MIGRATEPLAN_SNAPSHOT_SCHEDULE"},
			AssignTo:     &server.SnapshotSchedule,
		},
		&cli.IntFlag{
			Name:         "snapshot-workers",
			Usage:        "Concurrent snapshot jobs",
			DefaultValue: DefaultSnapshotWorkers,
			EnvVars:      []string{"MIGRATEPLAN_SNAPSHOT_WORKERS"},
			AssignTo:     &server.SnapshotWorkers,
		},
	}
}

// ClientFlags returns the global flags of the client commands.
func ClientFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:         "server",
			Aliases:      []string{"s"},
			Usage:        "Server URL",
			DefaultValue: DefaultServerURL,
			EnvVars:      []string{"MIGRATEPLAN_SERVER"},
			Global:       true,
			AssignTo:     &client.ServerURL,
		},
		&cli.StringFlag{
			Name:     "token",
			Usage:    "User token (<user-id>.<secret>)",
			EnvVars:  []string{"MIGRATEPLAN_TOKEN"},
			Global:   true,
			AssignTo: &client.Token,
		},
	}
}

// Load returns the server configuration parsed from flags, environment and
// .env, with defaults filled in.
func Load() *Config {
	cfg := server
	cfg.applyDefaults()
	return &cfg
}

// LoadClient returns the client configuration.
func LoadClient() *ClientConfig {
	cfg := client
	if cfg.ServerURL == "" {
		cfg.ServerURL = DefaultServerURL
	}
	cfg.ServerURL = strings.TrimRight(cfg.ServerURL, "/")
	return &cfg
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = DefaultDataDir
	}
	if c.ListenAddr == "" {
		c.ListenAddr = DefaultListenAddr
	}
	if c.MCPUserID == "" {
		c.MCPUserID = DefaultMCPUserID
	}
	if c.SnapshotSchedule == "" {
		c.SnapshotSchedule = DefaultSnapshotSchedule
	}
	if c.SnapshotWorkers <= 0 {
		c.SnapshotWorkers = DefaultSnapshotWorkers
	}
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	if c.SnapshotsEnabled {
		if _, err := cron.ParseStandard(c.SnapshotSchedule); err != nil {
			return fmt.Errorf("invalid snapshot schedule %q: %w", c.SnapshotSchedule, err)
		}
	}
	return nil
}

// IsMCPEnabled reports whether /mcp requires a bearer token
func (c *Config) IsMCPEnabled() bool {
	return c.MCPAuthToken != ""
}
