package domain

import "time"

// Account is a signed-up email address. AuthCode is non-nil exactly while a
// verification is pending.
type Account struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	AuthCode  *string   `json:"-"`
	CreatedAt time.Time `json:"created"`
	UpdatedAt time.Time `json:"updated"`
}

// Pending reports whether the account still has a code awaiting redemption.
func (a *Account) Pending() bool {
	return a.AuthCode != nil
}

// SignupRequest is the body of POST /api/signup.
type SignupRequest struct {
	Email string `json:"email" validate:"required,max=254,email"`
}

// SendCodeRequest is the body of POST /api/sendemail.
type SendCodeRequest struct {
	Email    string `json:"email" validate:"required,max=254,email"`
	AuthCode string `json:"authCode" validate:"required,len=6,number"`
}

// VerifyCodeRequest is the body of POST /api/verifycode.
type VerifyCodeRequest struct {
	AuthCode string `json:"authCode"`
}
