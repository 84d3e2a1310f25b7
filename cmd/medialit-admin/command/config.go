package command

import (
	"fmt"

	"medialit/internal/config"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Configuration helpers",
}

var configCheckCmd = &cobra.Command{
	Use:   "check",
	Short: "Load and validate the environment configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.LoadConfig()
		if err != nil {
			return err
		}
		if err := c.Validate(); err != nil {
			return fmt.Errorf("config validation failed: %w", err)
		}

		w := out(cmd)
		fmt.Fprintf(w, "environment:  %s\n", c.GoEnv)
		fmt.Fprintf(w, "listen:       %s:%d\n", c.HTTPHost, c.HTTPPort)
		if c.IsPostgres() {
			fmt.Fprintln(w, "database:     postgres")
		} else {
			fmt.Fprintf(w, "database:     sqlite (%s)\n", c.SQLitePath())
		}
		fmt.Fprintf(w, "redis:        %s\n", enabled(c.RedisEnabled()))
		fmt.Fprintf(w, "gemini:       %s\n", enabled(c.GeminiConfigured()))
		fmt.Fprintf(w, "ai limit:     %d requests/min\n", c.AIRequestsPerMinute)
		fmt.Fprintln(w, "✓ configuration is valid")
		return nil
	},
}

func enabled(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func init() {
	configCmd.AddCommand(configCheckCmd)
	rootCmd.AddCommand(configCmd)
}
