// Package validate centraliza la validación de entrada: reglas por campo sobre los
// DTOs (tags `validate`) más las reglas propias de email y teléfono del CRM.
package validate

import (
	"reflect"
	"regexp"
	"sort"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	emailRe = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
	phoneRe = regexp.MustCompile(`^\+?[0-9]{10,15}$`)

	phoneNoise = strings.NewReplacer(" ", "", "-", "", "(", "", ")", "", ".", "")
)

// IsEmail valida formato usuario@dominio.tld.
func IsEmail(s string) bool {
	return emailRe.MatchString(strings.TrimSpace(s))
}

// NormalizePhone quita espacios, guiones, puntos y paréntesis.
func NormalizePhone(s string) string {
	return phoneNoise.Replace(strings.TrimSpace(s))
}

// IsPhone acepta entre 10 y 15 dígitos con '+' inicial opcional (tras normalizar).
func IsPhone(s string) bool {
	return phoneRe.MatchString(NormalizePhone(s))
}

// Errors errores de validación por campo (campo JSON -> mensaje).
type Errors map[string]string

// Error implementa error con los campos en orden estable.
func (e Errors) Error() string {
	keys := make([]string, 0, len(e))
	for k := range e {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+e[k])
	}
	return "validación: " + strings.Join(parts, "; ")
}

// Add registra un error si el campo aún no tiene uno.
func (e Errors) Add(field, msg string) {
	if _, ok := e[field]; !ok {
		e[field] = msg
	}
}

// Err devuelve nil si no hay errores.
func (e Errors) Err() error {
	if len(e) == 0 {
		return nil
	}
	return e
}

var (
	once sync.Once
	v    *validator.Validate
)

func instance() *validator.Validate {
	once.Do(func() {
		v = validator.New(validator.WithRequiredStructEnabled())
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
			if name == "-" || name == "" {
				return f.Name
			}
			return name
		})
		_ = v.RegisterValidation("crm_email", func(fl validator.FieldLevel) bool {
			return IsEmail(fl.Field().String())
		})
		_ = v.RegisterValidation("crm_phone", func(fl validator.FieldLevel) bool {
			return IsPhone(fl.Field().String())
		})
		_ = v.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
			return strings.TrimSpace(fl.Field().String()) != ""
		})
		// Variantes para actualizaciones parciales: "" borra el campo.
		_ = v.RegisterValidation("opt_email", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return strings.TrimSpace(s) == "" || IsEmail(s)
		})
		_ = v.RegisterValidation("opt_phone", func(fl validator.FieldLevel) bool {
			s := fl.Field().String()
			return strings.TrimSpace(s) == "" || IsPhone(s)
		})
		_ = v.RegisterValidation("opt_url", func(fl validator.FieldLevel) bool {
			s := strings.TrimSpace(fl.Field().String())
			return s == "" || v.Var(s, "url") == nil
		})
	})
	return v
}

// Struct valida s según sus tags. Devuelve Errors (o nil).
func Struct(s any) error {
	err := instance().Struct(s)
	if err == nil {
		return nil
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	out := Errors{}
	for _, fe := range verrs {
		out.Add(fieldPath(fe), message(fe))
	}
	return out
}

// fieldPath usa el namespace JSON sin el nombre del struct raíz (items[0].quantity).
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required", "notblank":
		return "es requerido"
	case "crm_email", "opt_email", "email":
		return "email inválido"
	case "crm_phone", "opt_phone":
		return "teléfono inválido: 10 a 15 dígitos, '+' inicial opcional"
	case "min":
		if fe.Kind() == reflect.Slice {
			return "debe tener al menos " + fe.Param() + " elementos"
		}
		if fe.Kind() == reflect.String {
			return "debe tener al menos " + fe.Param() + " caracteres"
		}
		return "debe ser mayor o igual a " + fe.Param()
	case "max":
		if fe.Kind() == reflect.Slice {
			return "admite como máximo " + fe.Param() + " elementos"
		}
		if fe.Kind() == reflect.String {
			return "admite como máximo " + fe.Param() + " caracteres"
		}
		return "debe ser menor o igual a " + fe.Param()
	case "gte":
		return "debe ser mayor o igual a " + fe.Param()
	case "gt":
		return "debe ser mayor que " + fe.Param()
	case "oneof":
		return "debe ser uno de: " + fe.Param()
	case "url", "opt_url":
		return "URL inválida"
	case "uuid", "uuid4":
		return "identificador inválido"
	}
	return "valor inválido"
}
