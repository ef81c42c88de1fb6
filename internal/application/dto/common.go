package dto

// ErrorResponse cuerpo de error HTTP. Success siempre es false; se conserva porque
// el frontend existente decide por ese campo.
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

// MessageResponse respuesta genérica de éxito.
type MessageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	ID      string `json:"id,omitempty"`
}
