package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

func newSelectCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "select",
		Short: "Choose who you are",
		Long: `Choose the user that rates dishes. The choice is remembered between
runs in the configured state backend.`,
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "user <id>",
		Short: "Select a user by id",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			id, err := strconv.ParseUint(args[0], 10, 64)
			if err != nil || id == 0 {
				return fmt.Errorf("invalid user id %q: must be a positive integer", args[0])
			}
			user, err := rt.app.SelectUser(cmd.Context(), id)
			if err != nil {
				return err
			}
			return rt.out.print(user)
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "clear",
		Short: "Forget the selected user",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(_ *cobra.Command, _ []string) error {
			rt.app.ClearSelection()
			return rt.out.print("no user selected")
		}),
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "show",
		Short: "Show the selected user",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(_ *cobra.Command, _ []string) error {
			user, ok := rt.app.SelectedUser()
			if !ok {
				return rt.out.print("no user selected")
			}
			return rt.out.print(user)
		}),
	})

	return cmd
}
