package admin

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/rs/zerolog/log"
)

// CreateUser godoc
// @Summary (Admin) Create a new user
// @Tags Admin - Users
// @Accept json
// @Produce json
// @Param user body dto.CreateUserDTO true "User data"
// @Success 201 {object} dto.UserResponse
// @Router /admin/users [post]
func (c *AdminController) CreateUser(ctx *gin.Context) {
	var req dto.CreateUserDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.userService.Create(req)
	if err != nil {
		log.Error().Err(err).Msg("Admin CreateUser: service error")
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusCreated, resp)
}

// FindUsers godoc
// @Summary (Admin) Get all users
// @Tags Admin - Users
// @Produce json
// @Success 200 {array} dto.UserResponse
// @Router /admin/users [get]
func (c *AdminController) FindUsers(ctx *gin.Context) {
	resp, err := c.userService.FindAll()
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// FindUser godoc
// @Summary (Admin) Get a user by ID
// @Tags Admin - Users
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /admin/users/{id} [get]
func (c *AdminController) FindUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	resp, err := c.userService.Find(id)
	if err != nil {
		respondError(ctx, err)
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// DeleteUser godoc
// @Summary (Admin) Delete a user
// @Tags Admin - Users
// @Param id path int true "User ID"
// @Success 204
// @Router /admin/users/{id} [delete]
func (c *AdminController) DeleteUser(ctx *gin.Context) {
	id, ok := parseID(ctx, "id")
	if !ok {
		return
	}
	if err := c.userService.Delete(id); err != nil {
		respondError(ctx, err)
		return
	}
	ctx.Status(http.StatusNoContent)
}
