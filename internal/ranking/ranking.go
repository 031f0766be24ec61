// Package ranking считает таблицу лидеров по оценкам и подбирает случайное
// блюдо под диетические ограничения.
package ranking

import (
	"errors"
	"math/rand"
	"sort"

	"github.com/magabrotheeeer/yayayum/internal/models"
)

// ErrNoMatch нет блюда, подходящего под все ограничения.
var ErrNoMatch = errors.New("no dish matches the dietary restrictions")

// Entry строка таблицы лидеров.
type Entry struct {
	Dish    models.Dish `json:"dish" yaml:"dish"`
	Average float64     `json:"average" yaml:"average"`
	Count   int         `json:"count" yaml:"count"`
}

// Leaderboard возвращает блюда со средней оценкой, отсортированные по средней
// оценке, затем по числу оценок и номеру в меню. Блюда без оценок пропускаются,
// оценки несуществующих блюд игнорируются.
func Leaderboard(dishes []models.Dish, ratings []models.Rating) []Entry {
	type acc struct {
		sum   int64
		count int
	}
	totals := make(map[int32]*acc, len(dishes))
	for _, r := range ratings {
		a, ok := totals[r.DishID]
		if !ok {
			a = &acc{}
			totals[r.DishID] = a
		}
		a.sum += int64(r.Rating)
		a.count++
	}

	entries := make([]Entry, 0, len(totals))
	for _, d := range dishes {
		a, ok := totals[d.ID]
		if !ok {
			continue
		}
		entries = append(entries, Entry{
			Dish:    d,
			Average: float64(a.sum) / float64(a.count),
			Count:   a.count,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.Average != b.Average {
			return a.Average > b.Average
		}
		if a.Count != b.Count {
			return a.Count > b.Count
		}
		return a.Dish.Nr < b.Dish.Nr
	})
	return entries
}

// Inspire выбирает случайное блюдо, у которого есть все required ограничения.
// Если rnd равен nil, используется глобальный источник.
func Inspire(dishes []models.Dish, required []models.DietaryRestriction, rnd *rand.Rand) (models.Dish, error) {
	var matches []models.Dish
	for _, d := range dishes {
		if hasAll(d, required) {
			matches = append(matches, d)
		}
	}
	if len(matches) == 0 {
		return models.Dish{}, ErrNoMatch
	}

	var i int
	if rnd != nil {
		i = rnd.Intn(len(matches))
	} else {
		i = rand.Intn(len(matches))
	}
	return matches[i], nil
}

func hasAll(d models.Dish, required []models.DietaryRestriction) bool {
	for _, r := range required {
		if !d.HasRestriction(r) {
			return false
		}
	}
	return true
}
