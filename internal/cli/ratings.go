package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/magabrotheeeer/yayayum/internal/app/yayayum"
	"github.com/magabrotheeeer/yayayum/internal/models"
)

type ratingFlags struct {
	dish        int32
	rating      int32
	user        int32
	description string
	photo       string
}

func (f *ratingFlags) bind(cmd *cobra.Command) {
	cmd.Flags().Int32Var(&f.dish, "dish", 0, "id of the rated dish")
	cmd.Flags().Int32Var(&f.rating, "rating", 0, "score from 1 to 5")
	cmd.Flags().Int32Var(&f.user, "user", 0, "id of the rating user (default: selected user)")
	cmd.Flags().StringVar(&f.description, "description", "", "free text comment")
	cmd.Flags().StringVar(&f.photo, "photo", "", "photo reference")
	_ = cmd.MarkFlagRequired("dish")
	_ = cmd.MarkFlagRequired("rating")
}

func (f *ratingFlags) request(cmd *cobra.Command) models.CreateRating {
	req := models.CreateRating{
		DishID: f.dish,
		Rating: f.rating,
		UserID: f.user,
	}
	if cmd.Flags().Changed("description") {
		req.Description = &f.description
	}
	if cmd.Flags().Changed("photo") {
		req.Photo = &f.photo
	}
	return req
}

func newRatingsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ratings",
		Short: "Read and write dish ratings",
	}

	var (
		byDish int32
		byUser int32
		mine   bool
	)
	list := &cobra.Command{
		Use:   "list",
		Short: "List ratings, newest first",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			var (
				ratings []models.Rating
				err     error
			)
			switch {
			case mine:
				ratings, err = rt.app.MyRatings(ctx)
			case cmd.Flags().Changed("dish"):
				ratings, err = rt.app.API.Ratings.GetRatingsByDish(ctx, byDish).Wait()
			case cmd.Flags().Changed("user"):
				ratings, err = rt.app.API.Ratings.GetRatingsByUser(ctx, byUser).Wait()
			default:
				ratings, err = rt.app.API.Ratings.GetRatings(ctx).Wait()
			}
			if err != nil {
				return err
			}
			return rt.out.print(ratings)
		}),
	}
	list.Flags().Int32Var(&byDish, "dish", 0, "only ratings of this dish")
	list.Flags().Int32Var(&byUser, "user", 0, "only ratings of this user")
	list.Flags().BoolVar(&mine, "mine", false, "only ratings of the selected user")
	list.MarkFlagsMutuallyExclusive("dish", "user", "mine")

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one rating",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			rating, err := rt.app.API.Ratings.GetRating(cmd.Context(), id).Wait()
			if err != nil {
				return err
			}
			return rt.out.print(rating)
		}),
	}

	var createFlags ratingFlags
	create := &cobra.Command{
		Use:   "create",
		Short: "Rate a dish",
		Args:  cobra.NoArgs,
		RunE: rt.run(func(cmd *cobra.Command, _ []string) error {
			rating, err := rt.app.RateDish(cmd.Context(), createFlags.request(cmd))
			if err != nil {
				return err
			}
			return rt.out.print(rating)
		}),
	}
	createFlags.bind(create)

	var updateFlags ratingFlags
	update := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace a rating",
		Args:  cobra.ExactArgs(1),
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			req := updateFlags.request(cmd)
			if req.UserID == 0 {
				u, ok := rt.app.SelectedUser()
				if !ok {
					return errors.New("--user is required when no user is selected")
				}
				userID, err := yayayum.RatingUserID(u)
				if err != nil {
					return err
				}
				req.UserID = userID
			}
			rating, err := rt.app.API.Ratings.ModifyRating(cmd.Context(), id, req).Wait()
			if err != nil {
				return err
			}
			return rt.out.print(rating)
		}),
	}
	updateFlags.bind(update)

	remove := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a rating",
		Args:    cobra.ExactArgs(1),
		RunE: rt.run(func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if _, err := rt.app.API.Ratings.RemoveRating(cmd.Context(), id).Wait(); err != nil {
				return err
			}
			return rt.out.print(fmt.Sprintf("deleted rating %d", id))
		}),
	}

	cmd.AddCommand(list, get, create, update, remove)
	return cmd
}
