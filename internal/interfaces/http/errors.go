package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/pkg/logger"
	"github.com/jhoicas/crm-api/pkg/validate"
)

// errorMapping código HTTP y código de negocio para un error de dominio.
type errorMapping struct {
	status int
	code   string
}

var domainErrors = []struct {
	err error
	errorMapping
}{
	{domain.ErrUnknownStatus, errorMapping{fiber.StatusBadRequest, "UNKNOWN_STATUS"}},
	{domain.ErrInvalidInput, errorMapping{fiber.StatusBadRequest, "VALIDATION"}},
	{domain.ErrNotFound, errorMapping{fiber.StatusNotFound, "NOT_FOUND"}},
	{domain.ErrUserNotFound, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED"}},
	{domain.ErrUnauthorized, errorMapping{fiber.StatusUnauthorized, "UNAUTHORIZED"}},
	{domain.ErrForbidden, errorMapping{fiber.StatusForbidden, "FORBIDDEN"}},
	{domain.ErrEmailAlreadyExists, errorMapping{fiber.StatusConflict, "EMAIL_EXISTS"}},
	{domain.ErrDuplicate, errorMapping{fiber.StatusConflict, "DUPLICATE"}},
	{domain.ErrConflict, errorMapping{fiber.StatusConflict, "CONFLICT"}},
	{domain.ErrInsufficientStock, errorMapping{fiber.StatusConflict, "INSUFFICIENT_STOCK"}},
	{domain.ErrIdempotentReplay, errorMapping{fiber.StatusConflict, "IDEMPOTENT_REPLAY"}},
}

// writeError traduce err a la respuesta JSON. Los errores no reconocidos se registran
// y se responden como 500 con un mensaje genérico.
func writeError(c *fiber.Ctx, err error) error {
	var verrs validate.Errors
	if errors.As(err, &verrs) {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code: "VALIDATION", Message: "datos inválidos", Fields: verrs,
		})
	}
	for _, m := range domainErrors {
		if errors.Is(err, m.err) {
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: err.Error()})
		}
	}
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	requestLogger(c).Error().Err(err).
		Str("method", c.Method()).
		Str("path", c.Path()).
		Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code: "INTERNAL", Message: "error interno del servidor",
	})
}

func notFound(c *fiber.Ctx, what string) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: what + " no encontrado"})
}

func invalidBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func invalidQuery(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros de consulta inválidos"})
}

// NewErrorHandler maneja los errores que llegan a fiber sin respuesta (rutas inexistentes, panics recuperados).
func NewErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	if log == nil {
		log = logger.Nop()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
		}
		log.Error().Err(err).Str("method", c.Method()).Str("path", c.Path()).Msg("error no manejado")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Code: "INTERNAL", Message: "error interno del servidor",
		})
	}
}
