package handler

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	User  string `json:"user"`
	Role  string `json:"role"`
	Token string `json:"token"`
}

type meResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type registerRequest struct {
	Username string `json:"username" validate:"required,min=2,max=64"`
	Password string `json:"password" validate:"required,min=8"`
	Role     string `json:"role"     validate:"required,oneof=admin user tech"`
}

type registerResponse struct {
	Username string `json:"username"`
	Role     string `json:"role"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword"     validate:"required,min=8"`
}

type messageResponse struct {
	Message string `json:"message"`
}
