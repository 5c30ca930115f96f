package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/application/pipeline"
)

// PipelineHandler cambio de etapa y vista de progreso de un lead.
type PipelineHandler struct {
	uc *pipeline.StatusChangeUseCase
}

// NewPipelineHandler construye el handler.
func NewPipelineHandler(uc *pipeline.StatusChangeUseCase) *PipelineHandler {
	return &PipelineHandler{uc: uc}
}

// ChangeStatus godoc
// @Summary      Cambiar la etapa de un lead
// @Description  Registra una actividad status_change en la misma transacción. Repetir la etapa actual no escribe nada (changed=false).
// @Tags         pipeline
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "ID del lead"
// @Param        body  body  dto.ChangeStatusRequest  true  "Nueva etapa"
// @Success      200   {object}  dto.ChangeStatusResponse
// @Failure      400   {object}  dto.ErrorResponse  "etapa desconocida"
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/status [patch]
func (h *PipelineHandler) ChangeStatus(c *fiber.Ctx) error {
	var in dto.ChangeStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return invalidBody(c)
	}
	out, err := h.uc.ChangeStatus(c.UserContext(), GetUserID(c), c.Params("id"), in.Status)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(out)
}

// Progress godoc
// @Summary      Progreso del lead en el pipeline
// @Tags         pipeline
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID del lead"
// @Success      200  {object}  dto.PipelineProgressResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/leads/{id}/pipeline [get]
func (h *PipelineHandler) Progress(c *fiber.Ctx) error {
	out, err := h.uc.Progress(c.UserContext(), c.Params("id"))
	if err != nil {
		return writeError(c, err)
	}
	if out == nil {
		return notFound(c, "lead")
	}
	return c.JSON(out)
}

// Stages godoc
// @Summary      Catálogo de etapas
// @Tags         pipeline
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StagesResponse
// @Router       /api/pipeline/stages [get]
func (h *PipelineHandler) Stages(c *fiber.Ctx) error {
	return c.JSON(h.uc.Stages())
}
