package dto

// ErrorResponse cuerpo de error HTTP.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}

// ActionResult resultado explícito de una mutación: mensaje para el usuario y datos opcionales.
type ActionResult struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

// SortState estado de ordenamiento devuelto por los listados (para el siguiente toggle).
type SortState struct {
	Field string `json:"field"`
	Dir   string `json:"dir"`
}

// ListQuery parámetros comunes de los listados.
type ListQuery struct {
	Search string `query:"search" validate:"omitempty,max=255"`
	Sort   string `query:"sort" validate:"omitempty,max=50"`
	Dir    string `query:"dir" validate:"omitempty,oneof=asc desc"`
	Toggle string `query:"toggle" validate:"omitempty,max=50"`
}

const dateLayout = "2006-01-02"
