// Package pipeline contiene el catálogo de etapas del pipeline de ventas y
// las reglas puras sobre él: validación de transiciones y vista de progreso.
package pipeline

import (
	"errors"
	"fmt"

	"github.com/jhoicas/crm-api/internal/domain"
)

// Valores de etapa, en orden de pipeline.
const (
	StatusNew         = "new"
	StatusContacted   = "contacted"
	StatusQualified   = "qualified"
	StatusProposal    = "proposal"
	StatusNegotiation = "negotiation"
	StatusWon         = "won"
	StatusLost        = "lost"
)

// Stage descriptor de una etapa con su metadata de presentación.
type Stage struct {
	Value string `json:"value"`
	Label string `json:"label"`
	Icon  string `json:"icon"`
	Color string `json:"color"`
}

var catalog = []Stage{
	{Value: StatusNew, Label: "Nuevo", Icon: "sparkles", Color: "#3B82F6"},
	{Value: StatusContacted, Label: "Contactado", Icon: "phone", Color: "#8B5CF6"},
	{Value: StatusQualified, Label: "Calificado", Icon: "check-circle", Color: "#06B6D4"},
	{Value: StatusProposal, Label: "Propuesta", Icon: "file-text", Color: "#F59E0B"},
	{Value: StatusNegotiation, Label: "Negociación", Icon: "handshake", Color: "#F97316"},
	{Value: StatusWon, Label: "Ganado", Icon: "trophy", Color: "#10B981"},
	{Value: StatusLost, Label: "Perdido", Icon: "x-circle", Color: "#EF4444"},
}

// Stages devuelve una copia del catálogo en orden.
func Stages() []Stage {
	out := make([]Stage, len(catalog))
	copy(out, catalog)
	return out
}

// Lookup busca la etapa por valor.
func Lookup(value string) (Stage, bool) {
	for _, s := range catalog {
		if s.Value == value {
			return s, true
		}
	}
	return Stage{}, false
}

// IsValid indica si value pertenece al catálogo.
func IsValid(value string) bool {
	_, ok := Lookup(value)
	return ok
}

// IndexOf devuelve la posición de value en stages, o -1 si no está.
func IndexOf(stages []Stage, value string) int {
	for i, s := range stages {
		if s.Value == value {
			return i
		}
	}
	return -1
}

// CanTransition valida el paso de from a to.
// Cualquier etapa puede ir a cualquier otra (won/lost no son terminales);
// solo se rechaza un destino desconocido o igual al actual.
func CanTransition(from, to string) error {
	if !IsValid(to) {
		return fmt.Errorf("%w: %q", domain.ErrUnknownStatus, to)
	}
	if from == to {
		return ErrSameStatus
	}
	return nil
}

// ErrSameStatus el destino coincide con el estado actual (no-op para el caller).
var ErrSameStatus = errors.New("el lead ya está en ese estado")

// LabelOf devuelve la etiqueta de value, o el valor crudo si no está en el catálogo.
func LabelOf(value string) string {
	if s, ok := Lookup(value); ok {
		return s.Label
	}
	if value == "" {
		return "—"
	}
	return value
}

// TransitionDescription texto de la actividad status_change.
func TransitionDescription(from, to string) string {
	return fmt.Sprintf("Estado cambiado de %s a %s", LabelOf(from), LabelOf(to))
}
