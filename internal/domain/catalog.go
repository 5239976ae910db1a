package domain

type Area struct {
	ID   int64  `json:"area_id"`
	Name string `json:"area_name"`
}

type Restaurant struct {
	ID     int64  `json:"rest_id"`
	Name   string `json:"rest_name"`
	AreaID int64  `json:"area_id"`
}

// MenuItem prices are in cents. Category is a free-text label the UI uses
// for filtering.
type MenuItem struct {
	ID           int64  `json:"item_id"`
	RestaurantID int64  `json:"rest_id"`
	Name         string `json:"item_name"`
	Category     string `json:"category"`
	Price        int64  `json:"price"`
}
