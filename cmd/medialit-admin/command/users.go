package command

import (
	"fmt"
	"text/tabwriter"

	"medialit/internal/microservices/http-api/repository"
	"medialit/internal/microservices/http-api/service"

	"github.com/spf13/cobra"
)

// Roles are normally managed here rather than over HTTP; the API never mints accounts.

var promoteCmd = &cobra.Command{
	Use:   "promote [username]",
	Short: "Grant the Admin role to a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRole(cmd, args[0], true)
	},
}

var demoteCmd = &cobra.Command{
	Use:   "demote [username]",
	Short: "Revoke the Admin role from a user",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return setRole(cmd, args[0], false)
	},
}

var usersCmd = &cobra.Command{
	Use:   "users",
	Short: "List users that have used the API",
	RunE: func(cmd *cobra.Command, args []string) error {
		conn, _, err := openSession(cmd.Context())
		if err != nil {
			return err
		}
		users, err := service.NewUserService(repository.NewUserRepository(conn)).List(cmd.Context())
		if err != nil {
			return err
		}

		w := tabwriter.NewWriter(out(cmd), 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tUSERNAME\tROLE\tFIRST SEEN")
		for _, u := range users {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", u.ID, u.Username, u.Role, u.CreatedAt.Format("2006-01-02 15:04"))
		}
		return w.Flush()
	},
}

func setRole(cmd *cobra.Command, username string, admin bool) error {
	conn, _, err := openSession(cmd.Context())
	if err != nil {
		return err
	}
	users := service.NewUserService(repository.NewUserRepository(conn))

	update := users.Demote
	if admin {
		update = users.Promote
	}
	user, err := update(cmd.Context(), username)
	if err != nil {
		return fmt.Errorf("could not update %q: %w", username, err)
	}
	fmt.Fprintf(out(cmd), "✓ %s is now %s\n", user.Username, user.Role)
	return nil
}

func init() {
	rootCmd.AddCommand(promoteCmd, demoteCmd, usersCmd)
}
