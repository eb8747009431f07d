package model

// Admin is the authenticated back-office operator performing an action
type Admin struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
}
