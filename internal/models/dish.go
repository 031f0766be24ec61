package models

// DietaryRestriction диетическая метка блюда. В JSON передаётся имя варианта.
type DietaryRestriction string

const (
	Vegetarian DietaryRestriction = "Vegetarian"
	Vegan      DietaryRestriction = "Vegan"
	GlutenFree DietaryRestriction = "GlutenFree"
	DairyFree  DietaryRestriction = "DairyFree"
	NutFree    DietaryRestriction = "NutFree"
	Halal      DietaryRestriction = "Halal"
	Kosher     DietaryRestriction = "Kosher"
	LowCarb    DietaryRestriction = "LowCarb"
	Keto       DietaryRestriction = "Keto"
	NoneDiet   DietaryRestriction = "None"
)

// DietaryRestrictions возвращает все допустимые значения в порядке объявления на бэкенде.
func DietaryRestrictions() []DietaryRestriction {
	return []DietaryRestriction{
		Vegetarian, Vegan, GlutenFree, DairyFree, NutFree,
		Halal, Kosher, LowCarb, Keto, NoneDiet,
	}
}

// DishCategory категория блюда в меню.
type DishCategory string

const (
	WokWithNoodles DishCategory = "WokWithNoodles"
	SpecialDish    DishCategory = "SpecialDish"
	Stew           DishCategory = "Stew"
	WokWithRice    DishCategory = "WokWithRice"
	Ramen          DishCategory = "Ramen"
	KidsMenu       DishCategory = "KidsMenu"
	SideOrder      DishCategory = "SideOrder"
)

// DishCategories возвращает все категории.
func DishCategories() []DishCategory {
	return []DishCategory{WokWithNoodles, SpecialDish, Stew, WokWithRice, Ramen, KidsMenu, SideOrder}
}

// Dish блюдо из меню.
type Dish struct {
	ID                  int32                `json:"id" yaml:"id"`
	Nr                  int32                `json:"nr" yaml:"nr"`
	Name                string               `json:"name" yaml:"name"`
	Description         string               `json:"description" yaml:"description"`
	PriceKr             int32                `json:"price_kr" yaml:"price_kr"`
	DietaryRestrictions []DietaryRestriction `json:"dietary_restrictions" yaml:"dietary_restrictions"`
	Category            DishCategory         `json:"category" yaml:"category"`
}

// HasRestriction сообщает, помечено ли блюдо меткой r.
func (d Dish) HasRestriction(r DietaryRestriction) bool {
	for _, have := range d.DietaryRestrictions {
		if have == r {
			return true
		}
	}
	return false
}

// CreateDish тело запросов POST /dishes и PUT /dishes/{id}.
type CreateDish struct {
	Nr                  int32                `json:"nr"`
	Name                string               `json:"name" validate:"required"`
	Description         string               `json:"description"`
	PriceKr             int32                `json:"price_kr" validate:"gte=0"`
	DietaryRestrictions []DietaryRestriction `json:"dietary_restrictions" validate:"dive,oneof=Vegetarian Vegan GlutenFree DairyFree NutFree Halal Kosher LowCarb Keto None"`
	Category            DishCategory         `json:"category" validate:"required,oneof=WokWithNoodles SpecialDish Stew WokWithRice Ramen KidsMenu SideOrder"`
}
