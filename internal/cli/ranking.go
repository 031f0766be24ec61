package cli

import (
	"math/rand"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd(rt *runtime) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show dishes ranked by average rating",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, _ []string) error {
			entries, err := rt.app.Leaderboard(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(entries) > limit {
				entries = entries[:limit]
			}
			return rt.out.print(entries)
		}),
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 10, "show at most n dishes, 0 for all")
	return cmd
}

func newInspireCmd(rt *runtime) *cobra.Command {
	var (
		restrictions []string
		seed         int64
	)
	cmd := &cobra.Command{
		Use:   "inspire",
		Short: "Suggest a random dish",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, _ []string) error {
			required, err := parseRestrictions(restrictions)
			if err != nil {
				return err
			}
			var rnd *rand.Rand
			if cmd.Flags().Changed("seed") {
				rnd = rand.New(rand.NewSource(seed))
			}
			dish, err := rt.app.Inspire(cmd.Context(), required, rnd)
			if err != nil {
				return err
			}
			return rt.out.print(dish)
		}),
	}
	cmd.Flags().StringSliceVar(&restrictions, "restriction", nil, "required dietary restriction, repeatable")
	cmd.Flags().Int64Var(&seed, "seed", 0, "random seed for a reproducible suggestion")
	return cmd
}
