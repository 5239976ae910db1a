package domain

// User is a staff account. The password hash never leaves the auth package.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}
