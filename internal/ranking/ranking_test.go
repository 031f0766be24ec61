package ranking

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/magabrotheeeer/yayayum/internal/models"
)

func dish(id, nr int32, restrictions ...models.DietaryRestriction) models.Dish {
	return models.Dish{ID: id, Nr: nr, Name: "dish", DietaryRestrictions: restrictions}
}

func rating(dishID, score int32) models.Rating {
	return models.Rating{DishID: dishID, Rating: score, UserID: 1}
}

func TestLeaderboard(t *testing.T) {
	dishes := []models.Dish{dish(1, 10), dish(2, 20), dish(3, 30), dish(4, 5), dish(5, 1)}
	ratings := []models.Rating{
		rating(1, 4), rating(1, 5),
		rating(2, 5),
		rating(3, 5), rating(3, 4),
		rating(4, 5),
		rating(99, 5),
	}

	got := Leaderboard(dishes, ratings)

	require.Len(t, got, 4)
	// 5.0 x1 (nr 5), 5.0 x1 (nr 20), 4.5 x2 (nr 10), 4.5 x2 (nr 30)
	assert.Equal(t, int32(4), got[0].Dish.ID)
	assert.Equal(t, int32(2), got[1].Dish.ID)
	assert.Equal(t, int32(1), got[2].Dish.ID)
	assert.Equal(t, int32(3), got[3].Dish.ID)
	assert.InDelta(t, 4.5, got[2].Average, 1e-9)
	assert.Equal(t, 2, got[2].Count)
}

func TestLeaderboard_CountBreaksTie(t *testing.T) {
	dishes := []models.Dish{dish(1, 1), dish(2, 2)}
	ratings := []models.Rating{rating(1, 4), rating(2, 4), rating(2, 4)}

	got := Leaderboard(dishes, ratings)

	require.Len(t, got, 2)
	assert.Equal(t, int32(2), got[0].Dish.ID)
	assert.Equal(t, 2, got[0].Count)
}

func TestLeaderboard_Empty(t *testing.T) {
	assert.Empty(t, Leaderboard(nil, nil))
	assert.Empty(t, Leaderboard([]models.Dish{dish(1, 1)}, nil))
}

func TestInspire(t *testing.T) {
	dishes := []models.Dish{
		dish(1, 1, models.Vegan, models.GlutenFree),
		dish(2, 2, models.Vegan),
		dish(3, 3, models.Halal),
	}

	t.Run("all restrictions required", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(1))
		for i := 0; i < 20; i++ {
			got, err := Inspire(dishes, []models.DietaryRestriction{models.Vegan, models.GlutenFree}, rnd)
			require.NoError(t, err)
			assert.Equal(t, int32(1), got.ID)
		}
	})

	t.Run("subset of matches", func(t *testing.T) {
		rnd := rand.New(rand.NewSource(42))
		seen := map[int32]bool{}
		for i := 0; i < 50; i++ {
			got, err := Inspire(dishes, []models.DietaryRestriction{models.Vegan}, rnd)
			require.NoError(t, err)
			seen[got.ID] = true
		}
		assert.Equal(t, map[int32]bool{1: true, 2: true}, seen)
	})

	t.Run("no restrictions picks any dish", func(t *testing.T) {
		got, err := Inspire(dishes, nil, nil)
		require.NoError(t, err)
		assert.Contains(t, []int32{1, 2, 3}, got.ID)
	})

	t.Run("no match", func(t *testing.T) {
		_, err := Inspire(dishes, []models.DietaryRestriction{models.Kosher}, nil)
		assert.ErrorIs(t, err, ErrNoMatch)
	})

	t.Run("empty menu", func(t *testing.T) {
		_, err := Inspire(nil, nil, nil)
		assert.ErrorIs(t, err, ErrNoMatch)
	})
}
