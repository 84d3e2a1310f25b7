package command

// root.go defines the medialit-admin root command and the shared database session
// that subcommands open lazily.

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"medialit/database"
	"medialit/internal/config"
	"medialit/internal/logger"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

var (
	logLevel string

	// set by openSession, released by the root PersistentPostRunE
	db *gorm.DB
)

var rootCmd = newRootCmd()

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "medialit-admin",
		Short: "medialit-admin - operator tools for the media literacy API",
		Long: `medialit-admin works directly against the API database. Use it to:
- Grant or revoke the Admin role
- List known users
- Apply migrations and seed the prompt set
- Inspect the media bias leaderboard
- Check the environment configuration

Settings are read from the same environment variables (and .env file) as the API server.`,
		SilenceUsage: true,
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if db == nil {
				return nil
			}
			err := database.Close(db)
			db = nil
			return err
		},
	}
	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	return cmd
}

// Execute runs the root command. It is called once by main.main().
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// openSession loads config and connects to the database the first time a command needs it.
func openSession(ctx context.Context) (*gorm.DB, *slog.Logger, error) {
	log := logger.Init(logger.Options{Level: logLevel, Component: "admin", Output: os.Stderr})
	if db != nil {
		return db, log, nil
	}

	loaded, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("could not load config: %w", err)
	}
	conn, err := database.Connect(ctx, loaded, log)
	if err != nil {
		return nil, nil, err
	}
	db = conn
	return db, log, nil
}

func out(cmd *cobra.Command) io.Writer {
	return cmd.OutOrStdout()
}
