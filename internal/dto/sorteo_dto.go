package dto

type CrearSorteoRequest struct {
	Titulo string `json:"titulo" validate:"required,min=2"`
}

type ParticiparRequest struct {
	Nombre string `json:"nombre" validate:"required,min=2"`
}

type SorteoResponse struct {
	ID            string   `json:"id"`
	Titulo        string   `json:"titulo"`
	Participantes []string `json:"participantes"`
	Ganador       *string  `json:"ganador,omitempty"`
	Fecha         string   `json:"fecha"`
	Activo        bool     `json:"activo"`
}
