package controller

import (
	_ "aihub-backend/docs"
	"aihub-backend/middelware"
	"aihub-backend/models"
	"aihub-backend/services"
	"aihub-backend/utils/logger"
	"aihub-backend/utils/swagger"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/swaggo/swag"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

type Controller struct {
	Lead           *LeadController
	Bot            *BotController
	Activity       *ActivityController
	Auth           *AuthController
	Infrastructure *InfrastructureController

	config     *models.Config
	logger     logger.Logger
	jwtManager *middelware.JWTManager
	infra      services.InfrastructureServiceInterface
}

func NewController(cfg *models.Config, svc services.ServiceContainerInterface, log logger.Logger) *Controller {
	jwtManager := middelware.NewJWTManager(cfg, log)

	return &Controller{
		Lead:           NewLeadController(svc.GetLeadService(), log),
		Bot:            NewBotController(svc.GetBotService(), log),
		Activity:       NewActivityController(svc.GetActivityService(), log),
		Auth:           NewAuthController(jwtManager, svc.GetActivityService(), log),
		Infrastructure: NewInfrastructureController(svc.GetInfrastructureService(), log),
		config:         cfg,
		logger:         log,
		jwtManager:     jwtManager,
		infra:          svc.GetInfrastructureService(),
	}
}

// RegisterRoutes installs the middleware chain, operational endpoints and the API under config.BasePath
func (c *Controller) RegisterRoutes(r *gin.Engine) {
	logging := middelware.NewLoggingMiddleware(c.logger)
	r.Use(
		logging.Recovery(),
		otelgin.Middleware(c.config.AppName),
		middelware.Metrics(),
		logging.StructuredLogger(),
		middelware.NewCORSMiddleware(c.config).CORS(),
		middelware.NewRateLimiter(c.config.RateLimitRequestsPerMinute).Middleware(),
	)

	r.GET("/health", c.health)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	swaggerUI := swagger.ServeSwaggerUI(swagger.SwaggerConfig{
		Title:         c.config.AppName + " API",
		SwaggerDocURL: "/swagger/doc.json",
		AuthURL:       c.config.BasePath + "/auth/login",
	})
	r.GET("/swagger", swaggerUI)
	r.GET("/swagger/index.html", swaggerUI)
	r.GET("/swagger/doc.json", func(ctx *gin.Context) {
		doc, err := swag.ReadDoc()
		if err != nil {
			c.logger.Errorf("Failed to read swagger document: %v", err)
			ctx.JSON(http.StatusInternalServerError, models.APIResponse{Error: true, Message: "Swagger document unavailable"})
			return
		}
		ctx.Data(http.StatusOK, "application/json; charset=utf-8", []byte(doc))
	})

	api := r.Group(c.config.BasePath)
	private := c.jwtManager.AuthMiddleware()

	if c.config.AuthEnabled {
		auth := api.Group("/auth")
		auth.POST("/login", c.Auth.Login)
		auth.POST("/logout", private, c.Auth.Logout)
	}

	leads := api.Group("/leads")
	leads.POST("", c.Lead.CreateContact)
	leads.POST("/demo", c.Lead.BookDemo)
	leads.GET("/availability", c.Lead.Availability)
	leads.GET("", private, c.Lead.ListLeads)
	leads.GET("/stats", private, c.Lead.Statistics)
	leads.GET("/export", private, c.Lead.ExportCSV)
	leads.GET("/demo/slots", private, c.Lead.DemoSlots)
	leads.GET("/:id", private, c.Lead.GetLead)
	leads.PUT("/:id", private, c.Lead.UpdateLead)
	leads.PUT("/:id/reschedule", private, c.Lead.RescheduleDemo)
	leads.DELETE("/:id", private, c.Lead.ArchiveLead)

	bots := api.Group("/bots")
	bots.POST("/:id/chat", c.Bot.Chat)
	bots.POST("/:id/feedback", c.Bot.SubmitFeedback)
	bots.POST("", private, c.Bot.CreateBot)
	bots.GET("", private, c.Bot.ListBots)
	bots.GET("/:id", private, c.Bot.GetBot)
	bots.PUT("/:id", private, c.Bot.UpdateBot)
	bots.POST("/:id/train", private, c.Bot.TrainBot)
	bots.GET("/:id/performance", private, c.Bot.Performance)
	bots.DELETE("/:id", private, c.Bot.ArchiveBot)

	activity := api.Group("/activity")
	activity.POST("", c.Activity.LogActivity)
	activity.GET("/stats", private, c.Activity.Stats)
	activity.GET("/recent", private, c.Activity.Recent)

	infra := api.Group("/infrastructure", private)
	infra.GET("/worker/status", c.Infrastructure.GetWorkerStatus)
	infra.POST("/worker/reminders", c.Infrastructure.RunReminders)
}

// health handles GET /health
// @Summary Service health
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /health [get]
func (c *Controller) health(ctx *gin.Context) {
	healthy, reason, err := c.infra.IsWorkerHealthy()
	worker := gin.H{"healthy": healthy, "reason": reason}
	if err != nil {
		worker["error"] = err.Error()
	}

	status := "healthy"
	if !healthy {
		status = "degraded"
	}
	ctx.JSON(http.StatusOK, gin.H{
		"status":  status,
		"version": c.config.AppVersion,
		"service": c.config.AppName,
		"worker":  worker,
	})
}
