package format_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/crm-api/pkg/format"
)

func TestMoney_Ingles(t *testing.T) {
	f := format.New("usd", "en")
	assert.Equal(t, "USD", f.Currency())
	assert.Equal(t, "USD 1,234,567.50", f.Money(decimal.RequireFromString("1234567.5")))
	assert.Equal(t, "USD 0.00", f.Money(decimal.Zero))
}

func TestMoney_EspanolUsaComaDecimal(t *testing.T) {
	f := format.New("COP", "es")
	out := f.Money(decimal.RequireFromString("1234567.456"))
	assert.True(t, strings.HasPrefix(out, "COP "), out)
	assert.True(t, strings.HasSuffix(out, ",46"), out)
}

func TestNew_ValoresInvalidosCaenADefecto(t *testing.T) {
	f := format.New("XXXX", "??")
	assert.Equal(t, "USD", f.Currency())
}

func TestDate(t *testing.T) {
	d := time.Date(2026, 3, 9, 14, 5, 0, 0, time.UTC)
	assert.Equal(t, "09/03/2026", format.Date(d))
	assert.Equal(t, "09/03/2026 14:05", format.DateTime(d))
	assert.Equal(t, "—", format.Date(time.Time{}))
}
