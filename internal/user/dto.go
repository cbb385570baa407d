package user

// UserResponse is the public view of an account. The password hash never
// leaves the service.
type UserResponse struct {
	ID       int64  `json:"id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	IsActive bool   `json:"is_active"`
}
