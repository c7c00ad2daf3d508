package partner

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/middleware"
	"github.com/lshigami/canvassing/internal/service"
	"github.com/rs/zerolog/log"
)

// PartnerController serves organization-authenticated batch endpoints.
// Callers identify themselves with an X-API-Key header rather than a JWT.
type PartnerController struct {
	submissionService service.SubmissionService
}

func NewPartnerController(submissionService service.SubmissionService) *PartnerController {
	return &PartnerController{submissionService: submissionService}
}

// SubmitBatch godoc
// @Summary Organization: Submit a batch of answers to a questionnaire
// @Description Inserts each answer independently; a failed answer does not
// roll back the others.
// @Tags Organization
// @Accept json
// @Produce json
// @Param X-API-Key header string true "Organization API key"
// @Param questionnaireId path int true "Questionnaire ID"
// @Param batch body dto.SubmitBatchDTO true "Batch of answers"
// @Success 200 {object} dto.BatchSubmitResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /partner/questionnaires/{questionnaireId}/submit [post]
func (c *PartnerController) SubmitBatch(ctx *gin.Context) {
	orgID, ok := middleware.CurrentOrganizationID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "missing organization context"})
		return
	}
	questionnaireID, err := strconv.ParseUint(ctx.Param("questionnaireId"), 10, 64)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid questionnaireId"})
		return
	}
	var req dto.SubmitBatchDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	resp, err := c.submissionService.SubmitBatch(orgID, uint(questionnaireID), req)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("organizationID", orgID).Msg("SubmitBatch: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit batch", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}
