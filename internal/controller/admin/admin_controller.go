package admin

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/service"
	"github.com/rs/zerolog/log"
)

// AdminController exposes the administrative CRUD surface. Every route is
// guarded by the JWT middleware plus the admin role check.
type AdminController struct {
	orgService           service.OrganizationService
	questionnaireService service.QuestionnaireService
	addressService       service.AddressService
	answerService        service.AnswerService
	userService          service.UserService
}

func NewAdminController(
	orgService service.OrganizationService,
	questionnaireService service.QuestionnaireService,
	addressService service.AddressService,
	answerService service.AnswerService,
	userService service.UserService,
) *AdminController {
	return &AdminController{
		orgService:           orgService,
		questionnaireService: questionnaireService,
		addressService:       addressService,
		answerService:        answerService,
		userService:          userService,
	}
}

// parseID reads a path parameter as an entity id, writing a 400 on failure.
func parseID(ctx *gin.Context, name string) (uint, bool) {
	val, err := strconv.ParseUint(ctx.Param(name), 10, 32)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid " + name + " format"})
		return 0, false
	}
	return uint(val), true
}

// respondError maps service errors onto the HTTP surface: every validation
// or lookup miss is a 404, anything else a 500.
func respondError(ctx *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
}

// CreateOrganization godoc
// @Summary (Admin) Create a new organization
// @Tags Admin - Organizations
// @Accept json
// @Produce json
// @Param organization body dto.CreateOrganizationDTO true "Organization data"
// @Success 201 {object} dto.OrganizationResponse
// @Failure 400 {object} dto.ErrorResponse
// @Router /admin/organizations [post]
func (c *AdminController) CreateOrganization(ctx *gin.Context) {
	var req dto.CreateOrganizationDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.orgService.Create(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateOrganization: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// FindOrganizations godoc
// @Summary (Admin) Get all organizations
// @Tags Admin - Organizations
// @Produce json
// @Success 200 {array} dto.OrganizationResponse
// @Router /admin/organizations [get]
func (c *AdminController) FindOrganizations(ctx *gin.Context) {
	resp, err := c.orgService.FindAll()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// FindOrganization godoc
// @Summary (Admin) Get an organization by ID
// @Tags Admin - Organizations
// @Produce json
// @Param id path int true "Organization ID"
// @Success 200 {object} dto.OrganizationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/organizations/{id} [get]
func (c *AdminController) FindOrganization(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.orgService.Find(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// AddOrganizationMember godoc
// @Summary (Admin) Add a user to an organization
// @Tags Admin - Organizations
// @Accept json
// @Param id path int true "Organization ID"
// @Param member body dto.AddOrganizationMemberDTO true "Member data"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/organizations/{id}/users [post]
func (c *AdminController) AddOrganizationMember(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	var req dto.AddOrganizationMemberDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	if err := c.orgService.AddMember(id, req.UserID); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Member added successfully"})
}

// DeleteOrganization godoc
// @Summary (Admin) Delete an organization
// @Tags Admin - Organizations
// @Param id path int true "Organization ID"
// @Success 204
// @Router /admin/organizations/{id} [delete]
func (c *AdminController) DeleteOrganization(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.orgService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
