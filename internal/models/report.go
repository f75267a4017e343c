package models

// Weekdays indexes day names the way the orders table stores order_day_of_week.
var Weekdays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// DayFavorite is one of the most purchased products on a weekday.
type DayFavorite struct {
	Day     int
	Product string
}

// CartAverage is the mean number of items per order for one user.
type CartAverage struct {
	UserID   int64
	AvgItems float64
}

// AislePopularity counts product purchases made from an aisle.
type AislePopularity struct {
	AisleID int64
	Aisle   string
	Visits  int64
}

// AisleFavorite is the most purchased product of an aisle.
type AisleFavorite struct {
	AisleID   int64
	Aisle     string
	ProductID int64
	Product   string
	Purchases int64
}
