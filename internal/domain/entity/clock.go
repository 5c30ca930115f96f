package entity

import "time"

// Now instante actual en UTC con la precisión de TIMESTAMPTZ (microsegundos), para que
// lo devuelto al crear coincida con lo que se lee después de la base.
func Now() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}
