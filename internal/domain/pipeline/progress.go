package pipeline

// Estados de cada paso en la vista de progreso.
const (
	StepCompleted = "completed"
	StepActive    = "active"
	StepPending   = "pending"
)

// StepProgress etapa proyectada con su estado relativo al estado actual del lead.
type StepProgress struct {
	Stage
	State string `json:"state"`
}

// Progress proyecta stages contra current: las anteriores quedan completed,
// la actual active y el resto pending. Un current desconocido deja todo en pending.
func Progress(stages []Stage, current string) []StepProgress {
	idx := IndexOf(stages, current)
	out := make([]StepProgress, len(stages))
	for i, s := range stages {
		state := StepPending
		switch {
		case idx < 0:
		case i < idx:
			state = StepCompleted
		case i == idx:
			state = StepActive
		}
		out[i] = StepProgress{Stage: s, State: state}
	}
	return out
}
