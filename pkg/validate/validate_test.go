package validate_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/pkg/validate"
)

func TestIsEmail(t *testing.T) {
	assert.True(t, validate.IsEmail("a@b.co"))
	assert.True(t, validate.IsEmail("  ventas@empresa.com.co "))
	assert.False(t, validate.IsEmail("not-an-email"))
	assert.False(t, validate.IsEmail("a@b"))
	assert.False(t, validate.IsEmail("a b@c.co"))
	assert.False(t, validate.IsEmail(""))
}

func TestIsPhone(t *testing.T) {
	valid := []string{"3001234567", "+573001234567", "123456789012345", "(300) 123-4567", "+1 555.123.4567"}
	for _, p := range valid {
		assert.True(t, validate.IsPhone(p), p)
	}
	invalid := []string{"123456789", "+123", "1234567890123456", "300123456a", "++3001234567", ""}
	for _, p := range invalid {
		assert.False(t, validate.IsPhone(p), p)
	}
}

func TestNormalizePhone(t *testing.T) {
	assert.Equal(t, "+573001234567", validate.NormalizePhone(" +57 (300) 123-4567 "))
}

type leadInput struct {
	Name   string   `json:"name" validate:"notblank,max=20"`
	Email  string   `json:"email" validate:"omitempty,crm_email"`
	Phone  string   `json:"phone" validate:"required,crm_phone"`
	Source string   `json:"source" validate:"omitempty,oneof=website referral"`
	Media  []string `json:"media_urls" validate:"max=2,dive,url"`
}

func TestStruct_ErroresPorCampoJSON(t *testing.T) {
	err := validate.Struct(leadInput{
		Name:   "   ",
		Email:  "not-an-email",
		Phone:  "12345",
		Source: "tv",
		Media:  []string{"https://a.co/1", "https://a.co/2", "https://a.co/3"},
	})
	require.Error(t, err)

	var verrs validate.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "es requerido", verrs["name"])
	assert.Equal(t, "email inválido", verrs["email"])
	assert.Contains(t, verrs["phone"], "teléfono inválido")
	assert.Contains(t, verrs["source"], "website referral")
	assert.Contains(t, verrs["media_urls"], "máximo 2")
}

func TestStruct_Valido(t *testing.T) {
	err := validate.Struct(leadInput{Name: "Ana", Email: "a@b.co", Phone: "+573001234567", Media: []string{"https://a.co/x.png"}})
	assert.NoError(t, err)
}

func TestErrors_ErrYMensajeEstable(t *testing.T) {
	e := validate.Errors{}
	assert.NoError(t, e.Err())

	e.Add("phone", "x")
	e.Add("email", "y")
	e.Add("email", "z")
	assert.Equal(t, "validación: email: y; phone: x", e.Error())
	assert.Error(t, e.Err())
}

type contactPatch struct {
	Email *string `json:"email" validate:"omitnil,opt_email,max=254"`
	Phone *string `json:"phone" validate:"omitnil,opt_phone"`
	Photo *string `json:"photo_url" validate:"omitnil,opt_url"`
}

func TestStruct_OpcionalesAceptanVacioONil(t *testing.T) {
	empty := ""
	assert.NoError(t, validate.Struct(contactPatch{}))
	assert.NoError(t, validate.Struct(contactPatch{Email: &empty, Phone: &empty, Photo: &empty}))

	email, phone, photo := "a@b.co", "+57 300 123 4567", "https://a.co/x.png"
	assert.NoError(t, validate.Struct(contactPatch{Email: &email, Phone: &phone, Photo: &photo}))

	badEmail, badPhone, badPhoto := "x@", "12", "no-url"
	err := validate.Struct(contactPatch{Email: &badEmail, Phone: &badPhone, Photo: &badPhoto})
	var verrs validate.Errors
	require.True(t, errors.As(err, &verrs))
	assert.Equal(t, "email inválido", verrs["email"])
	assert.Contains(t, verrs["phone"], "teléfono inválido")
	assert.Equal(t, "URL inválida", verrs["photo_url"])
}
