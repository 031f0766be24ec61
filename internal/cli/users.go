package cli

import (
	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/yayayum/internal/models"
)

func newUsersCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "List and register users",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all users",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, _ []string) error {
			users, err := rt.app.API.Users.GetUsers(cmd.Context()).Wait()
			if err != nil {
				return err
			}
			return rt.out.print(users)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "create <username>",
		Short: "Register a new user",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			user, err := rt.app.API.Users.CreateUser(cmd.Context(), models.CreateUser{Username: args[0]}).Wait()
			if err != nil {
				return err
			}
			return rt.out.print(user)
		}),
	})

	return cmd
}
