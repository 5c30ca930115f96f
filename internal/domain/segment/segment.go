// Package segment deriva el segmento de cliente (bronze/silver/gold/vip) a partir
// del gasto acumulado. Los umbrales son constantes, no configuración.
package segment

import "github.com/shopspring/decimal"

// Segment nivel del cliente según gasto.
type Segment string

const (
	Bronze Segment = "bronze"
	Silver Segment = "silver"
	Gold   Segment = "gold"
	VIP    Segment = "vip"
)

var (
	silverMin = decimal.NewFromInt(500)
	goldMin   = decimal.NewFromInt(2000)
	vipMin    = decimal.NewFromInt(5000)
)

// FromSpend mapea el gasto total a su segmento. Definida para cualquier valor;
// negativos caen en bronze.
func FromSpend(totalSpent decimal.Decimal) Segment {
	switch {
	case totalSpent.GreaterThanOrEqual(vipMin):
		return VIP
	case totalSpent.GreaterThanOrEqual(goldMin):
		return Gold
	case totalSpent.GreaterThanOrEqual(silverMin):
		return Silver
	default:
		return Bronze
	}
}

// Parse valida un segmento recibido como texto.
func Parse(s string) (Segment, bool) {
	switch Segment(s) {
	case Bronze, Silver, Gold, VIP:
		return Segment(s), true
	}
	return "", false
}

// Range devuelve el intervalo [min, max) de gasto del segmento.
// min nil = sin cota inferior; max nil = sin cota superior.
func Range(s Segment) (min, max *decimal.Decimal) {
	ptr := func(d decimal.Decimal) *decimal.Decimal { return &d }
	switch s {
	case Bronze:
		return nil, ptr(silverMin)
	case Silver:
		return ptr(silverMin), ptr(goldMin)
	case Gold:
		return ptr(goldMin), ptr(vipMin)
	case VIP:
		return ptr(vipMin), nil
	}
	return nil, nil
}

// All lista los segmentos de menor a mayor.
func All() []Segment {
	return []Segment{Bronze, Silver, Gold, VIP}
}
