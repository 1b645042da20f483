package request

type RegisterRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=50"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	Phone    *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required,min=6"`
}

// UpdateProfileRequest: semua field optional, hanya yang diisi yang diubah.
// Ganti password butuh password lama dan me-revoke semua session aktif.
type UpdateProfileRequest struct {
	Phone           *string `json:"phone,omitempty" validate:"omitempty,min=10,max=15"`
	CurrentPassword string  `json:"current_password,omitempty" validate:"omitempty,min=6"`
	NewPassword     string  `json:"new_password,omitempty" validate:"omitempty,min=6"`
}
