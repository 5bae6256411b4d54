package dto

// LoginRequest payload for authentication.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest payload for new accounts.
type RegisterRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// UpdateProfileRequest payload for profile changes. Empty fields are
// left unchanged.
type UpdateProfileRequest struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
}

// UpdatePasswordRequest payload for password changes, proved by the
// current password.
type UpdatePasswordRequest struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	NewPassword string `json:"newPassword"`
}
