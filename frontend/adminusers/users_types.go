package adminusers

// UserView is one row of the admin users table.
type UserView struct {
	ID       int64
	Username string
	Role     string
}

// PageData drives the admin users renderer.
type PageData struct {
	Users        []UserView
	Status       string
	ErrorMessage string
	FormUsername string
	FormRole     string
}
