package dto

type LoginRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

type PerfilResponse struct {
	ID        string `json:"id"`
	Nombre    string `json:"nombre"`
	Email     string `json:"email"`
	Rol       string `json:"rol"`
	AvatarURL string `json:"avatar_url"`
}

type LoginResponse struct {
	Token  string         `json:"token"`
	Perfil PerfilResponse `json:"perfil"`
}
