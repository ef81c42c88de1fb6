package dto

// SignupRequest entrada para registro de socio.
type SignupRequest struct {
	Name      string `json:"name" validate:"required,max=200"`
	AccountNo string `json:"account_no" validate:"required,max=50"`
	Email     string `json:"email" validate:"omitempty,email,max=200"`
	Password  string `json:"password" validate:"required"`
}

// LoginRequest entrada para login por número de cuenta.
type LoginRequest struct {
	AccountNo string `json:"account_no" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// MemberResponse salida de un socio (sin password).
type MemberResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	AccountNo string `json:"account_no"`
	Email     string `json:"email,omitempty"`
	Role      string `json:"role"`
}

// LoginResponse salida con token JWT y datos del socio.
type LoginResponse struct {
	Success bool           `json:"success"`
	Token   string         `json:"token"`
	User    MemberResponse `json:"user"`
}
