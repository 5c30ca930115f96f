package usecase

import (
	"strings"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain/repository"
	"github.com/jhoicas/crm-api/pkg/validate"
)

// listFilter normaliza la paginación; un término de búsqueda en blanco equivale a listar.
func listFilter(p dto.PageRequest) repository.ListFilter {
	p.DefaultPage()
	return repository.ListFilter{
		Search: strings.TrimSpace(p.Search),
		Limit:  p.Limit,
		Offset: p.Offset,
	}
}

// pageOf arma los metadatos de página devolviendo el token de generación recibido.
func pageOf(p dto.PageRequest, count int) dto.PageResponse {
	p.DefaultPage()
	return dto.PageResponse{
		Limit:      p.Limit,
		Offset:     p.Offset,
		Count:      count,
		Generation: p.Generation,
	}
}

func trimPtr(s *string) string {
	return strings.TrimSpace(*s)
}

func copyStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

// fieldErrors valida in y devuelve los errores por campo para poder sumar reglas propias.
func fieldErrors(in any) (validate.Errors, error) {
	err := validate.Struct(in)
	if err == nil {
		return validate.Errors{}, nil
	}
	if ve, ok := err.(validate.Errors); ok {
		return ve, nil
	}
	return nil, err
}
