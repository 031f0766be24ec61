package state

// Screen активный экран приложения.
type Screen string

const (
	ScreenUserSelection   Screen = "user-selection"
	ScreenMealActions     Screen = "meal-actions"
	ScreenMealInspiration Screen = "meal-inspiration"
	ScreenRateMeal        Screen = "rate-meal"
	ScreenMyRatings       Screen = "my-ratings"
	ScreenLeaderboard     Screen = "leaderboard"
)

// Valid сообщает, известен ли экран.
func (s Screen) Valid() bool {
	switch s {
	case ScreenUserSelection, ScreenMealActions, ScreenMealInspiration,
		ScreenRateMeal, ScreenMyRatings, ScreenLeaderboard:
		return true
	}
	return false
}

// Page активная страница: основная или управление данными.
type Page string

const (
	PageMain   Page = "main"
	PageManage Page = "manage"
)

// Valid сообщает, известна ли страница.
func (p Page) Valid() bool {
	return p == PageMain || p == PageManage
}
