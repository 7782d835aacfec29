package model

// User is a registered account. Password holds the bcrypt hash, never the
// plaintext.
type User struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Password string `json:"-"`
	Fullname string `json:"fullname"`
}
