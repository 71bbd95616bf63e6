package model

type Category struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}

// PreloadCategories are inserted on first run.
var PreloadCategories = []string{
	"Beverages",
	"Bakery",
	"Dairy",
	"Produce",
	"Snacks",
	"Household",
	"Personal Care",
	"Stationery",
	"Electronics",
	"Other",
}
