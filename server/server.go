// Package server wires the store, the services and the HTTP routes.
package server

import (
	"log"
	"os"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/fiscalis/dgi-api/config"
	"github.com/fiscalis/dgi-api/constants"
	"github.com/fiscalis/dgi-api/handlers"
	"github.com/fiscalis/dgi-api/logger"
	"github.com/fiscalis/dgi-api/middleware"
	"github.com/fiscalis/dgi-api/services"
	"github.com/fiscalis/dgi-api/store"
)

// Handler definitions
var (
	healthHandler        *handlers.HealthHandler
	taxpayerHandler      *handlers.TaxpayerHandler
	municipalityHandler  *handlers.MunicipalityHandler
	establishmentHandler *handlers.EstablishmentHandler
	declarationHandler   *handlers.DeclarationHandler
	paymentHandler       *handlers.PaymentHandler
	noticeHandler        *handlers.NoticeHandler
	enforcementHandler   *handlers.EnforcementHandler
	notificationHandler  *handlers.NotificationHandler
	dashboardHandler     *handlers.DashboardHandler
	fiscalHandler        *handlers.FiscalHandler

	cfg *config.Config
)

// InitializeHandlers loads the configuration, initializes the logger, builds
// the seeded store and wires every service and handler.
func InitializeHandlers() {
	// .env is optional; deployed environments set variables directly.
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("Warning: Error loading .env file: %v", err)
	}

	stage := os.Getenv("STAGE")
	if stage == "" {
		stage = constants.StageLocal
	}
	if !constants.IsValidStage(stage) {
		log.Fatalf("Invalid STAGE environment variable: '%s'. Must be one of: %s, %s, %s",
			stage, constants.StageProd, constants.StageDev, constants.StageLocal)
	}

	logger.InitLogger(stage)
	logger.Info("Initializing handlers", zap.String("stage", stage))

	var err error
	cfg, err = config.Load()
	if err != nil {
		logger.Fatal("Failed to load configuration", zap.Error(err))
	}

	st, err := store.NewFromSeed()
	if err != nil {
		logger.Fatal("Failed to load seed data", zap.Error(err))
	}
	logger.Info("Store initialized from seed", zap.Int("collections", st.CollectionCount()))

	healthHandler = handlers.NewHealthHandler(st)
	taxpayerHandler = handlers.NewTaxpayerHandler(services.NewTaxpayerService(st))
	municipalityHandler = handlers.NewMunicipalityHandler(services.NewMunicipalityService(st))
	establishmentHandler = handlers.NewEstablishmentHandler(services.NewEstablishmentService(st))
	declarationHandler = handlers.NewDeclarationHandler(services.NewDeclarationService(st))
	paymentHandler = handlers.NewPaymentHandler(services.NewPaymentService(st))
	noticeHandler = handlers.NewNoticeHandler(services.NewNoticeService(st))
	enforcementHandler = handlers.NewEnforcementHandler(services.NewEnforcementService(st))
	notificationHandler = handlers.NewNotificationHandler(services.NewNotificationService(st))
	dashboardHandler = handlers.NewDashboardHandler(services.NewDashboardService(st))
	fiscalHandler = handlers.NewFiscalHandler(services.NewFiscalService(st))
}

// InitializeRoutes attaches the middleware chain and every route to the
// router.
func InitializeRoutes(router *gin.Engine) {
	router.Use(configureCORS())
	router.Use(middleware.CorrelationIDMiddleware())
	router.Use(middleware.RequestLoggingMiddleware())

	router.GET("/", healthHandler.AppBanner)

	api := router.Group("/api")
	{
		api.GET("/health", healthHandler.HealthCheck)

		api.GET("/contribuables", taxpayerHandler.ListTaxpayers)
		api.GET("/contribuables/:id", taxpayerHandler.GetTaxpayer)
		api.POST("/contribuables", taxpayerHandler.CreateTaxpayer)
		api.PUT("/contribuables/:id", taxpayerHandler.UpdateTaxpayer)
		api.DELETE("/contribuables/:id", taxpayerHandler.DeactivateTaxpayer)
		api.GET("/contribuables/:id/declarations", taxpayerHandler.ListTaxpayerDeclarations)
		api.GET("/contribuables/:id/avis-imposition", taxpayerHandler.ListTaxpayerNotices)
		api.GET("/contribuables/:id/notifications", taxpayerHandler.ListTaxpayerNotifications)
		api.GET("/contribuables/:id/AMR", taxpayerHandler.ListTaxpayerEnforcements)
		api.GET("/contribuables/:id/etablissements", taxpayerHandler.ListTaxpayerEstablishments)

		api.GET("/communes", municipalityHandler.ListMunicipalities)
		api.POST("/communes", municipalityHandler.CreateMunicipality)

		api.GET("/etablissements", establishmentHandler.ListEstablishments)
		api.GET("/etablissements/:id", establishmentHandler.GetEstablishment)
		api.POST("/etablissements", establishmentHandler.CreateEstablishment)
		api.PUT("/etablissements/:id", establishmentHandler.UpdateEstablishment)

		api.GET("/declarations", declarationHandler.ListDeclarations)
		api.GET("/declarations/:id", declarationHandler.GetDeclaration)
		api.POST("/declarations", declarationHandler.CreateDeclaration)
		api.PUT("/declarations/:id", declarationHandler.UpdateDeclaration)
		api.PATCH("/declarations/:id/statut", declarationHandler.ChangeDeclarationStatus)
		api.GET("/declarations/:id/paiements", declarationHandler.ListDeclarationPayments)

		api.GET("/paiements", paymentHandler.ListPayments)
		api.GET("/paiements/:id", paymentHandler.GetPayment)
		api.POST("/paiements", paymentHandler.RecordPayment)
		api.GET("/paiements/:id/beneficiaires", paymentHandler.ListPaymentBeneficiaries)

		api.GET("/avis-imposition", noticeHandler.ListNotices)
		api.GET("/avis-imposition/:id", noticeHandler.GetNotice)

		api.GET("/AMR", enforcementHandler.ListEnforcements)
		api.GET("/AMR/:id", enforcementHandler.GetEnforcement)
		api.POST("/AMR", enforcementHandler.CreateEnforcement)
		api.PATCH("/AMR/:id/statut", enforcementHandler.ChangeEnforcementStatus)

		api.GET("/notifications", notificationHandler.ListNotifications)
		api.PATCH("/notifications/:id/lire", notificationHandler.MarkNotificationRead)
		api.PATCH("/notifications/lire-tout", notificationHandler.MarkAllNotificationsRead)

		api.GET("/dashboard/stats", dashboardHandler.GetStats)
		api.GET("/dashboard/recettes-par-commune", dashboardHandler.GetRevenueByMunicipality)
		api.GET("/dashboard/declarations-par-type", dashboardHandler.GetDeclarationsByType)

		api.POST("/fiscal/calculer-patente", fiscalHandler.ComputeLicenseTax)
		api.POST("/fiscal/calculer-TDL", fiscalHandler.ComputeLocalDevelopmentTax)
	}
}

// Port returns the configured listen port.
func Port() int {
	return cfg.Server.Port
}

// configureCORS returns a configured CORS middleware
func configureCORS() gin.HandlerFunc {
	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = cfg.CORS.AllowedOrigins
	corsConfig.AllowMethods = cfg.CORS.AllowedMethods
	corsConfig.AllowHeaders = cfg.CORS.AllowedHeaders
	corsConfig.AllowCredentials = cfg.CORS.AllowCredentials
	return cors.New(corsConfig)
}
