package domain

// UserType gates which half of the portal a session may use.
type UserType string

const (
	UserTenant   UserType = "tenant"
	UserLandlord UserType = "landlord"
)

// Session is the record handed to the front-end on login and read back on app start.
type Session struct {
	Token       string   `json:"token"`
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Email       string   `json:"email"`
	PhoneNumber string   `json:"phone_number"`
	UserType    UserType `json:"user_type"`
}
