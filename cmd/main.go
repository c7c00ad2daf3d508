package main

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/graphql-go/graphql"
	"github.com/lshigami/canvassing/config"
	"github.com/lshigami/canvassing/database"
	"github.com/lshigami/canvassing/internal/auth"
	adminctrl "github.com/lshigami/canvassing/internal/controller/admin"
	partnerctrl "github.com/lshigami/canvassing/internal/controller/partner"
	userctrl "github.com/lshigami/canvassing/internal/controller/user"
	gqlapi "github.com/lshigami/canvassing/internal/graphql"
	"github.com/lshigami/canvassing/internal/logger"
	"github.com/lshigami/canvassing/internal/middleware"
	"github.com/lshigami/canvassing/internal/model"
	"github.com/lshigami/canvassing/internal/pubsub"
	"github.com/lshigami/canvassing/internal/repository"
	"github.com/lshigami/canvassing/internal/service"
	"github.com/rs/zerolog/log"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

// @title Canvassing API
// @version 1.0
// @description Door-to-door canvassing backend: organizations, questionnaires, address lists and answer submission.
// @host localhost:8080
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @securityDefinitions.apikey OrgApiKey
// @in header
// @name X-API-Key
func main() {
	logger.Init()

	app := fx.New(
		fx.Provide(
			config.NewConfig,
			database.NewDatabase,
			NewGinEngine,
			pubsub.NewBroker,
			func(cfg *config.Config) *auth.JWTService {
				return auth.NewJWTService(cfg.JWT.Secret, cfg.JWT.ExpireHours)
			},
		),

		fx.Provide(
			repository.NewUserRepository,
			repository.NewOrganizationRepository,
			repository.NewQuestionnaireRepository,
			repository.NewQuestionRepository,
			repository.NewAddressListRepository,
			repository.NewAddressRepository,
			repository.NewAnswerRepository,
		),

		fx.Provide(
			service.NewAuthService,
			service.NewUserService,
			service.NewOrganizationService,
			service.NewQuestionnaireService,
			service.NewAddressService,
			service.NewAnswerService,
			service.NewSubmissionService,
		),

		fx.Provide(
			adminctrl.NewAdminController,
			userctrl.NewUserController,
			partnerctrl.NewPartnerController,
			gqlapi.NewResolver,
			gqlapi.NewSchema,
		),

		fx.Invoke(RegisterRoutesAndStartServer),
		fx.Invoke(AutoMigrateDB),
	)

	if err := app.Start(context.Background()); err != nil {
		log.Fatal().Err(err).Msg("Failed to start application")
	}

	<-app.Done()
	log.Info().Msg("Application shutting down gracefully...")
}

func NewGinEngine() *gin.Engine {
	r := gin.New()

	r.Use(gin.LoggerWithFormatter(func(param gin.LogFormatterParams) string {
		log.Info().
			Str("client_ip", param.ClientIP).
			Str("method", param.Method).
			Str("path", param.Path).
			Int("status_code", param.StatusCode).
			Dur("latency", param.Latency).
			Str("error_message", param.ErrorMessage).
			Msg("gin_request")
		return ""
	}))
	r.Use(gin.Recovery())

	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-API-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	// Swagger UI at /swagger/index.html once docs have been generated.
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	return r
}

// RegisterRoutesAndStartServer wires every HTTP surface and manages the
// server lifecycle.
func RegisterRoutesAndStartServer(
	lc fx.Lifecycle,
	router *gin.Engine,
	cfg *config.Config,
	jwtService *auth.JWTService,
	orgRepo repository.OrganizationRepository,
	adminCtrl *adminctrl.AdminController,
	userCtrl *userctrl.UserController,
	partnerCtrl *partnerctrl.PartnerController,
	schema graphql.Schema,
) {
	router.GET("/", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Canvassing API"})
	})

	authGroup := router.Group("/auth")
	{
		authGroup.POST("/login", userCtrl.Login)
		authGroup.POST("/logout", userCtrl.Logout)
	}

	adminGroup := router.Group("/admin")
	adminGroup.Use(middleware.JWT(jwtService), middleware.RequireRole(model.RoleAdmin))
	{
		adminGroup.POST("/organizations", adminCtrl.CreateOrganization)
		adminGroup.GET("/organizations", adminCtrl.FindOrganizations)
		adminGroup.GET("/organizations/:id", adminCtrl.FindOrganization)
		adminGroup.POST("/organizations/:id/users", adminCtrl.AddOrganizationMember)
		adminGroup.DELETE("/organizations/:id", adminCtrl.DeleteOrganization)

		adminGroup.POST("/questionnaires", adminCtrl.CreateQuestionnaire)
		adminGroup.GET("/questionnaires", adminCtrl.FindQuestionnaires)
		adminGroup.GET("/questionnaires/:id", adminCtrl.FindQuestionnaire)
		adminGroup.DELETE("/questionnaires/:id", adminCtrl.DeleteQuestionnaire)

		adminGroup.POST("/questions", adminCtrl.CreateQuestion)
		adminGroup.GET("/questions", adminCtrl.FindQuestions)
		// Singular path kept for client compatibility.
		adminGroup.GET("/question/:id", adminCtrl.FindQuestion)
		adminGroup.DELETE("/question/:id", adminCtrl.DeleteQuestion)

		adminGroup.POST("/addresslists", adminCtrl.CreateAddressList)
		adminGroup.GET("/addresslists", adminCtrl.FindAddressLists)
		adminGroup.GET("/addresslists/:id", adminCtrl.FindAddressList)
		adminGroup.POST("/addresslists/:id/addresses", adminCtrl.AddListAddress)
		adminGroup.DELETE("/addresslists/:id", adminCtrl.DeleteAddressList)

		adminGroup.POST("/addresses", adminCtrl.CreateAddress)
		adminGroup.GET("/addresses", adminCtrl.FindAddresses)
		adminGroup.GET("/addresses/:id", adminCtrl.FindAddress)
		adminGroup.DELETE("/addresses/:id", adminCtrl.DeleteAddress)

		adminGroup.POST("/answers", adminCtrl.CreateAnswer)
		adminGroup.GET("/answers", adminCtrl.FindAnswers)
		adminGroup.GET("/answers/:id", adminCtrl.FindAnswer)
		adminGroup.DELETE("/answers/:id", adminCtrl.DeleteAnswer)

		adminGroup.POST("/users", adminCtrl.CreateUser)
		adminGroup.GET("/users", adminCtrl.FindUsers)
		adminGroup.GET("/users/:id", adminCtrl.FindUser)
		adminGroup.DELETE("/users/:id", adminCtrl.DeleteUser)
	}

	userGroup := router.Group("/user")
	userGroup.Use(middleware.JWT(jwtService))
	{
		userGroup.GET("/myaccount", userCtrl.MyAccount)
		userGroup.POST("/answers/submit", userCtrl.SubmitAnswer)
	}

	partnerGroup := router.Group("/partner")
	partnerGroup.Use(middleware.OrganizationKey(orgRepo))
	{
		partnerGroup.POST("/questionnaires/:questionnaireId/submit", partnerCtrl.SubmitBatch)
	}

	// GraphQL accepts either identity: a JWT (mutations) or an organization
	// API key (the organization query). Both middlewares run in optional
	// mode so unauthenticated queries still work.
	router.Any("/graphql", optionalJWT(jwtService), optionalOrganizationKey(orgRepo), gqlapi.GinHandler(schema))

	server := &http.Server{
		Addr:    ":" + cfg.Server.Port,
		Handler: router,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info().Msgf("Canvassing API server starting on port %s", cfg.Server.Port)
			go func() {
				if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal().Err(err).Msg("Server ListenAndServe failed")
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("Server shutting down...")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	})
}

// optionalJWT resolves a bearer token when present but never rejects the
// request; resolvers decide which operations need a user.
func optionalJWT(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if after, ok := cutBearer(header); ok {
			if claims, err := jwtService.Validate(after); err == nil {
				c.Set(middleware.ContextUserID, claims.UserID)
				c.Set(middleware.ContextUserRole, claims.Role)
				c.Set(middleware.ContextUsername, claims.Username)
			}
		}
		c.Next()
	}
}

// optionalOrganizationKey resolves X-API-Key when present without gating
// the request.
func optionalOrganizationKey(orgRepo repository.OrganizationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		if key := c.GetHeader("X-API-Key"); key != "" {
			if org, err := orgRepo.FindByAPIKey(key); err == nil {
				c.Set(middleware.ContextOrganizationID, org.ID)
			}
		}
		c.Next()
	}
}

func cutBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if len(header) > len(prefix) && header[:len(prefix)] == prefix {
		return header[len(prefix):], true
	}
	return "", false
}

func AutoMigrateDB(db *gorm.DB) error {
	log.Info().Msg("Running database migrations...")
	err := db.AutoMigrate(
		&model.User{},
		&model.Organization{},
		&model.Questionnaire{},
		&model.Question{},
		&model.AddressList{},
		&model.Address{},
		&model.Answer{},
	)
	if err != nil {
		log.Error().Err(err).Msg("Database migration failed")
		return err
	}
	log.Info().Msg("Database migration completed successfully.")
	return nil
}
