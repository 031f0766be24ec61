package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/yayayum/internal/models"
)

type dishFlags struct {
	nr           int32
	name         string
	description  string
	price        int32
	restrictions []string
	category     string
}

func (f *dishFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int32Var(&f.nr, "nr", 0, "menu number")
	cmd.Flags().StringVar(&f.name, "name", "", "dish name")
	cmd.Flags().StringVar(&f.description, "description", "", "dish description")
	cmd.Flags().Int32Var(&f.price, "price", 0, "price in kronor")
	cmd.Flags().StringSliceVar(&f.restrictions, "restriction", nil, "dietary restriction, repeatable")
	cmd.Flags().StringVar(&f.category, "category", "", "dish category")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("category")
}

func (f *dishFlags) request() (models.CreateDish, error) {
	restrictions, err := parseRestrictions(f.restrictions)
	if err != nil {
		return models.CreateDish{}, err
	}
	return models.CreateDish{
		Nr:                  f.nr,
		Name:                f.name,
		Description:         f.description,
		PriceKr:             f.price,
		DietaryRestrictions: restrictions,
		Category:            models.DishCategory(f.category),
	}, nil
}

func newDishesCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dishes",
		Short: "Browse and manage the menu",
	}

	var only []string
	list := &cobra.Command{
		Use:   "list",
		Short: "List the menu",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, _ []string) error {
			required, err := parseRestrictions(only)
			if err != nil {
				return err
			}
			dishes, err := rt.app.API.Dishes.GetDishes(cmd.Context()).Wait()
			if err != nil {
				return err
			}
			filtered := make([]models.Dish, 0, len(dishes))
			for _, d := range dishes {
				if hasAll(d, required) {
					filtered = append(filtered, d)
				}
			}
			return rt.out.print(filtered)
		}),
	}
	list.Flags().StringSliceVar(&only, "restriction", nil, "only dishes with this dietary restriction, repeatable")

	var createFlags dishFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Add a dish to the menu",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, _ []string) error {
			req, err := createFlags.request()
			if err != nil {
				return err
			}
			dish, err := rt.app.API.Dishes.CreateDish(cmd.Context(), req).Wait()
			if err != nil {
				return err
			}
			return rt.out.print(dish)
		}),
	}
	createFlags.bind(create)

	var updateFlags dishFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a dish",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req, err := updateFlags.request()
			if err != nil {
				return err
			}
			dish, err := rt.app.API.Dishes.ModifyDish(cmd.Context(), id, req).Wait()
			if err != nil {
				return err
			}
			return rt.out.print(dish)
		}),
	}
	updateFlags.bind(update)

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a dish from the menu",
		Args:    cobra.ExactArgs(1),
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := rt.app.API.Dishes.RemoveDish(cmd.Context(), id).Wait(); err != nil {
				return err
			}
			return rt.out.print(fmt.Sprintf("deleted dish %d", id))
		}),
	}

	cmd.AddCommand(list, create, update, remove)
	return cmd
}

func hasAll(d models.Dish, required []models.DietaryRestriction) bool {
	for _, r := range required {
		if !d.HasRestriction(r) {
			return false
		}
	}
	return true
}
