package user

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lshigami/canvassing/internal/dto"
	"github.com/lshigami/canvassing/internal/middleware"
	"github.com/lshigami/canvassing/internal/service"
	"github.com/rs/zerolog/log"
)

// UserController exposes login plus the partner-facing account and
// submission endpoints.
type UserController struct {
	authService       service.AuthService
	userService       service.UserService
	submissionService service.SubmissionService
}

func NewUserController(
	authService service.AuthService,
	userService service.UserService,
	submissionService service.SubmissionService,
) *UserController {
	return &UserController{
		authService:       authService,
		userService:       userService,
		submissionService: submissionService,
	}
}

// Login godoc
// @Summary Login with username/password to obtain a JWT token
// @Tags Auth
// @Accept json
// @Produce json
// @Param credentials body dto.SignInDTO true "Credentials"
// @Success 200 {object} dto.TokenResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (c *UserController) Login(ctx *gin.Context) {
	var req dto.SignInDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}
	resp, err := c.authService.SignIn(req.Username, req.Password)
	if err != nil {
		log.Warn().Err(err).Str("username", req.Username).Msg("Login failed")
		ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// Logout godoc
// @Summary Logout the current user
// @Tags Auth
// @Produce json
// @Success 200 {object} dto.MessageResponse
// @Router /auth/logout [post]
func (c *UserController) Logout(ctx *gin.Context) {
	// Tokens are stateless; logout is an acknowledgment for clients that
	// discard their token.
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Logged out"})
}

// MyAccount godoc
// @Summary Partner: Get account info for the logged in user
// @Tags Partner
// @Produce json
// @Success 200 {object} dto.UserResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/myaccount [get]
func (c *UserController) MyAccount(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "missing user context"})
		return
	}
	resp, err := c.userService.Account(userID)
	if err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Internal server error", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, resp)
}

// SubmitAnswer godoc
// @Summary Partner: Submit one answer to a questionnaire/addresslist
// @Description Validates the membership chain, stores the answer with its
// inline reference snapshot, and notifies newAnswer subscribers.
// @Tags Partner
// @Accept json
// @Produce json
// @Param submission body dto.SubmitAnswerDTO true "Submission data"
// @Success 200 {object} dto.MessageResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /user/answers/submit [post]
func (c *UserController) SubmitAnswer(ctx *gin.Context) {
	userID, ok := middleware.CurrentUserID(ctx)
	if !ok {
		ctx.JSON(http.StatusUnauthorized, dto.ErrorResponse{Message: "missing user context"})
		return
	}
	var req dto.SubmitAnswerDTO
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, dto.ErrorResponse{Message: "Invalid request body", Details: []string{err.Error()}})
		return
	}

	if _, err := c.submissionService.SubmitAnswer(userID, req); err != nil {
		if errors.Is(err, service.ErrNotFound) {
			ctx.JSON(http.StatusNotFound, dto.ErrorResponse{Message: err.Error()})
			return
		}
		log.Error().Err(err).Uint("userID", userID).Msg("SubmitAnswer: service error")
		ctx.JSON(http.StatusInternalServerError, dto.ErrorResponse{Message: "Failed to submit answer", Details: []string{err.Error()}})
		return
	}
	ctx.JSON(http.StatusOK, dto.MessageResponse{Message: "Answer submitted successfully"})
}
