package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/rs/zerolog/log"
)

// CreateQuestionnaire godoc
// @Summary (Admin) Create a new questionnaire
// @Tags Admin - Questionnaires
// @Accept json
// @Produce json
// @Param questionnaire body dto.CreateQuestionnaireDTO true "Questionnaire data"
// @Success 201 {object} dto.QuestionnaireResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questionnaires [post]
func (c *AdminController) CreateQuestionnaire(ctx *gin.Context) {
	var req dto.CreateQuestionnaireDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.questionnaireService.CreateQuestionnaire(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateQuestionnaire: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// FindQuestionnaires godoc
// @Summary (Admin) Get all questionnaires
// @Tags Admin - Questionnaires
// @Produce json
// @Success 200 {array} dto.QuestionnaireResponse
// @Router /admin/questionnaires [get]
func (c *AdminController) FindQuestionnaires(ctx *gin.Context) {
	resp, err := c.questionnaireService.FindQuestionnaires()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// FindQuestionnaire godoc
// @Summary (Admin) Get a questionnaire by ID
// @Tags Admin - Questionnaires
// @Produce json
// @Param id path int true "Questionnaire ID"
// @Success 200 {object} dto.QuestionnaireResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questionnaires/{id} [get]
func (c *AdminController) FindQuestionnaire(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.questionnaireService.FindQuestionnaire(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestionnaire godoc
// @Summary (Admin) Delete a questionnaire
// @Tags Admin - Questionnaires
// @Param id path int true "Questionnaire ID"
// @Success 204
// @Router /admin/questionnaires/{id} [delete]
func (c *AdminController) DeleteQuestionnaire(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.questionnaireService.DeleteQuestionnaire(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}

// CreateQuestion godoc
// @Summary (Admin) Create a new question
// @Tags Admin - Questions
// @Accept json
// @Produce json
// @Param question body dto.CreateQuestionDTO true "Question data"
// @Success 201 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/questions [post]
func (c *AdminController) CreateQuestion(ctx *gin.Context) {
	var req dto.CreateQuestionDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.questionnaireService.CreateQuestion(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateQuestion: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// FindQuestions godoc
// @Summary (Admin) Get all questions
// @Tags Admin - Questions
// @Produce json
// @Success 200 {array} dto.QuestionResponse
// @Router /admin/questions [get]
func (c *AdminController) FindQuestions(ctx *gin.Context) {
	resp, err := c.questionnaireService.FindQuestions()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// FindQuestion godoc
// @Summary (Admin) Get a question by ID
// @Tags Admin - Questions
// @Produce json
// @Param id path int true "Question ID"
// @Success 200 {object} dto.QuestionResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/question/{id} [get]
func (c *AdminController) FindQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.questionnaireService.FindQuestion(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteQuestion godoc
// @Summary (Admin) Delete a question
// @Tags Admin - Questions
// @Param id path int true "Question ID"
// @Success 204
// @Router /admin/question/{id} [delete]
func (c *AdminController) DeleteQuestion(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.questionnaireService.DeleteQuestion(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
