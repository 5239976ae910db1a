package domain

type Courier struct {
	ID        int64  `json:"courier_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	AreaID    int64  `json:"area_id"`
	Available bool   `json:"available"`
}
