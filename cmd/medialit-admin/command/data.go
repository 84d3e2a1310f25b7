package command

import (
	"fmt"
	"text/tabwriter"

	"medialit/internal/microservices/http-api/repository"
	"medialit/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Apply migrations and insert any missing prompt templates",
	Long: `Connecting already migrates the schema; seed makes that explicit and reports the
prompt set afterwards. Existing click counters are never reset.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, _, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		prompts := service.NewPromptService(repository.NewPromptRepository(conn), nil, nil, nil)
		n, err := prompts.Count(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(out(cmd), "✓ schema up to date, %d prompts available\n", n)
		return nil
	},
}

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard",
	Short: "Print the media bias game leaderboard",
	RunE: func(cmd *cobra.Command, args []string) error {
		limit, _ := cmd.Flags().GetInt("limit")

		conn, _, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		board, err := service.NewMediaService(repository.NewMediaRepository(conn), nil).Leaderboard(cmd.Context(), limit)
		if err != nil {
			return err
		}
		if board.Total == 0 {
			fmt.Fprintln(out(cmd), "no scores yet")
			return nil
		}

		w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "RANK\tPLAYER\tBEST TIME (s)")
		for _, e := range board.Entries {
			fmt.Fprintf(w, "%d\t%s\t%d\n", e.Rank, e.Player, e.BestTime)
		}
		return w.Flush()
	},
}

func init() {
	leaderboardCmd.Flags().IntP("limit", "l", 10, "number of players to show (max 100)")
	rootCmd.AddCommand(seedCmd, leaderboardCmd)
}
