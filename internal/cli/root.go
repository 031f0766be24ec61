// Package cli содержит консольные команды yayayum на cobra.
package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/yayayum/internal/app/yayayum"
	"github.com/magabrotheeeer/yayayum/internal/models"
)

// AppFactory создаёт приложение для одной команды.
type AppFactory func(ctx context.Context) (*yayayum.App, error)

type runtime struct {
	factory AppFactory
	output  string
	metrics bool

	app *yayayum.App
	out printer
}

// NewRootCmd собирает дерево команд. Приложение создаётся factory перед
// каждой командой и закрывается после неё.
func NewRootCmd(factory AppFactory) *cobra.Command {
	rt := &runtime{factory: factory}

	root := &cobra.Command{
		Use:   "yayayum",
		Short: "Rate the dishes of your favourite restaurant",
		Long: `yayayum is a console client for the yayayum ratings API.

Pick who you are with "select user", browse the menu, rate dishes
and see what everybody likes best on the leaderboard.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVarP(&rt.output, "output", "o", FormatTable, "output format: table, json or yaml")
	root.PersistentFlags().BoolVar(&rt.metrics, "metrics", false, "dump client metrics to stderr on exit")

	root.AddCommand(
		newUsersCmd(rt),
		newDishesCmd(rt),
		newRatingsCmd(rt),
		newSelectCmd(rt),
		newLeaderboardCmd(rt),
		newInspireCmd(rt),
	)
	return root
}

// run оборачивает обработчик: создаёт приложение, печатает метрики и закрывает его.
func (rt *runtime) run(fn func(cmd *cobra.Command, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) (err error) {
		out, err := newPrinter(rt.output, cmd.OutOrStdout())
		if err != nil {
			return err
		}
		app, err := rt.factory(cmd.Context())
		if err != nil {
			return err
		}
		rt.app, rt.out = app, out

		defer func() {
			if rt.metrics {
				if derr := app.Metrics.Dump(cmd.ErrOrStderr()); derr != nil && err == nil {
					err = derr
				}
			}
			if cerr := app.Close(); cerr != nil && err == nil {
				err = cerr
			}
		}()
		return fn(cmd, args)
	}
}

func parseID(s string) (int32, error) {
	id, err := strconv.ParseInt(s, 10, 32)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid id %q: must be a positive integer", s)
	}
	return int32(id), nil
}

func parseRestrictions(values []string) ([]models.DietaryRestriction, error) {
	known := make(map[models.DietaryRestriction]bool)
	for _, r := range models.DietaryRestrictions() {
		known[r] = true
	}
	out := make([]models.DietaryRestriction, 0, len(values))
	for _, v := range values {
		r := models.DietaryRestriction(v)
		if !known[r] {
			return nil, fmt.Errorf("unknown dietary restriction %q", v)
		}
		out = append(out, r)
	}
	return out, nil
}
