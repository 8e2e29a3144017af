// models/auth.go
package models

// SignupRequest registers a new salon owner. The first branch, the salon
// profile, and the demo subscription are created alongside the account.
type SignupRequest struct {
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	FullName   string  `json:"fullName" validate:"required,min=2"`
	Phone      string  `json:"phone,omitempty"`
	SalonName  string  `json:"salonName" validate:"required,min=2"`
	BranchName string  `json:"branchName,omitempty"`
	Address    Address `json:"address"`
}

// LoginData is the payload returned on successful login
type LoginData struct {
	Token           string `json:"token"`
	RefreshToken    string `json:"refreshToken"`
	User            User   `json:"user"`
	RememberMeToken string `json:"rememberMeToken,omitempty"`
	IsTrialExpired  bool   `json:"isTrialExpired"`
}
