// Package format presenta montos y fechas según el locale configurado.
package format

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Formatter formatea montos en una moneda y un idioma fijos.
type Formatter struct {
	unit    currency.Unit
	printer *message.Printer
}

// New construye el formatter. Moneda o idioma inválidos caen a USD / inglés.
func New(currencyCode, lang string) *Formatter {
	unit, err := currency.ParseISO(strings.ToUpper(strings.TrimSpace(currencyCode)))
	if err != nil {
		unit = currency.USD
	}
	tag, err := language.Parse(lang)
	if err != nil {
		tag = language.English
	}
	return &Formatter{unit: unit, printer: message.NewPrinter(tag)}
}

// Currency código ISO 4217 en uso.
func (f *Formatter) Currency() string { return f.unit.String() }

// Money devuelve "<ISO> <monto>" con separadores del idioma y dos decimales.
func (f *Formatter) Money(amount decimal.Decimal) string {
	v, _ := amount.Round(2).Float64()
	return f.unit.String() + " " + f.printer.Sprint(number.Decimal(v, number.Scale(2)))
}

// Date fecha corta dd/mm/yyyy.
func Date(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006")
}

// DateTime fecha y hora dd/mm/yyyy HH:MM.
func DateTime(t time.Time) string {
	if t.IsZero() {
		return "—"
	}
	return t.Format("02/01/2006 15:04")
}
