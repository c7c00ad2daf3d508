package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/rs/zerolog/log"
)

// CreateAnswer godoc
// @Summary (Admin) Create an answer directly, bypassing the submission chain
// @Tags Admin - Answers
// @Accept json
// @Produce json
// @Param answer body dto.CreateAnswerDTO true "Answer data"
// @Success 201 {object} dto.AnswerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/answers [post]
func (c *AdminController) CreateAnswer(ctx *gin.Context) {
	var req dto.CreateAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.answerService.Create(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateAnswer: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// FindAnswers godoc
// @Summary (Admin) Get all answers
// @Tags Admin - Answers
// @Produce json
// @Success 200 {array} dto.AnswerResponse
// @Router /admin/answers [get]
func (c *AdminController) FindAnswers(ctx *gin.Context) {
	resp, err := c.answerService.FindAll()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// FindAnswer godoc
// @Summary (Admin) Get an answer by ID
// @Tags Admin - Answers
// @Produce json
// @Param id path int true "Answer ID"
// @Success 200 {object} dto.AnswerResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/answers/{id} [get]
func (c *AdminController) FindAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.answerService.Find(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteAnswer godoc
// @Summary (Admin) Delete an answer
// @Tags Admin - Answers
// @Param id path int true "Answer ID"
// @Success 204
// @Router /admin/answers/{id} [delete]
func (c *AdminController) DeleteAnswer(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.answerService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
