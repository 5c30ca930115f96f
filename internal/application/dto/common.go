package dto

// PageRequest paginación y búsqueda para listados.
// Generation es un token opaco del cliente que se devuelve tal cual para descartar respuestas viejas.
type PageRequest struct {
	Search     string `query:"q"`
	Limit      int    `query:"limit"`
	Offset     int    `query:"offset"`
	Generation string `query:"gen"`
}

// DefaultPage aplica valores por defecto y cotas a Limit/Offset.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 20
	}
	if p.Limit > 100 {
		p.Limit = 100
	}
	if p.Offset < 0 {
		p.Offset = 0
	}
}

// PageResponse metadatos de página en respuestas.
type PageResponse struct {
	Limit      int    `json:"limit"`
	Offset     int    `json:"offset"`
	Count      int    `json:"count"`
	Generation string `json:"gen,omitempty"`
}

// ErrorResponse cuerpo de error HTTP. Fields lleva los errores por campo de validación.
type ErrorResponse struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Fields  map[string]string `json:"fields,omitempty"`
}
