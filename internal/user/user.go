package user

// User is the single persistent entity of the application. Hash holds the
// salted password digest and is never serialized.
type User struct {
	ID          int    `json:"userId"`
	Username    string `json:"username"`
	FirstName   string `json:"firstName"`
	LastName    string `json:"lastName"`
	PhoneNumber string `json:"phoneNumber"`
	Email       string `json:"email"`
	Hash        string `json:"-"`
}
