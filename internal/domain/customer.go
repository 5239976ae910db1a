package domain

// Customer is back-office reference data. Email is optional; the empty
// string means no email on file. IsPremium is monotonic: the order
// aggregator sets it, nothing unsets it.
type Customer struct {
	ID        int64  `json:"cust_id"`
	Name      string `json:"name"`
	Phone     string `json:"phone"`
	Email     string `json:"email,omitempty"`
	Address   string `json:"address"`
	AreaID    int64  `json:"area_id"`
	IsPremium bool   `json:"is_premium"`
}
