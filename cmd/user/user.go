package user

import (
	"context"
	"fmt"
	"io"

	"github.com/martinsuchenak/migrateplan/internal/auth"
	"github.com/martinsuchenak/migrateplan/internal/config"
	"github.com/martinsuchenak/migrateplan/internal/log"
	"github.com/martinsuchenak/migrateplan/internal/output"
	"github.com/martinsuchenak/migrateplan/internal/storage"
	"github.com/paularlott/cli"
)

// Commands returns the user management commands. They open the database
// directly, so they run on the server host.
func Commands() []*cli.Command {
	return []*cli.Command{
		createCommand(),
		listCommand(),
	}
}

func dataDirFlag() cli.Flag {
	return &cli.StringFlag{
		Name:         "data-dir",
		Usage:        "Directory holding the SQLite database",
		DefaultValue: config.DefaultDataDir,
		EnvVars:      []string{"MIGRATEPLAN_DATA_DIR"},
	}
}

func createCommand() *cli.Command {
	return &cli.Command{
		Name:        "create",
		Usage:       "Create a user and print its API token",
		Description: "Create a user. The token is shown once and cannot be recovered.",
		Flags:       []cli.Flag{dataDirFlag()},
		Arguments: []cli.Argument{
			&cli.StringArg{Name: "name", Required: true},
		},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			store, err := storage.NewSQLiteStorage(cmd.GetString("data-dir"))
			if err != nil {
				return err
			}
			defer store.Close()

			u, token, err := auth.NewAuthenticator(store).Issue(ctx, cmd.GetStringArg("name"))
			if err != nil {
				return fmt.Errorf("creating user: %w", err)
			}
			log.Info("User created", "id", u.ID, "name", u.Name)

			result := struct {
				ID    string `json:"id"`
				Name  string `json:"name"`
				Token string `json:"token"`
			}{u.ID, u.Name, token}
			return output.Stdout(cmd.GetBool("json")).Value(result, func(w io.Writer) {
				fmt.Fprintf(w, "User created: %s (ID: %s)\n", u.Name, u.ID)
				fmt.Fprintf(w, "Token: %s\n", token)
				fmt.Fprintln(w, "Store the token now; it is not shown again.")
			})
		},
	}
}

func listCommand() *cli.Command {
	return &cli.Command{
		Name:        "list",
		Usage:       "List users",
		Description: "List all users in the database",
		Flags:       []cli.Flag{dataDirFlag()},
		Run: func(ctx context.Context, cmd *cli.Command) error {
			store, err := storage.NewSQLiteStorage(cmd.GetString("data-dir"))
			if err != nil {
				return err
			}
			defer store.Close()

			users, err := store.ListUsers(ctx)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(users))
			for _, u := range users {
				rows = append(rows, []string{u.ID, u.Name, u.CreatedAt.Format("2006-01-02 15:04")})
			}
			return output.Stdout(cmd.GetBool("json")).Table(users, []string{"ID", "NAME", "CREATED"}, rows)
		},
	}
}
