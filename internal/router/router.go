package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/mongo"
	"go.uber.org/zap"

	"github.com/Saty-27/IskconJuhuWebsite-sub002/config"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/domain"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/handler"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/middleware"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/notify"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/internal/repository"
	"github.com/Saty-27/IskconJuhuWebsite-sub002/pkg/payment"
)

func Setup(cfg *config.Config, db *mongo.Database, log *zap.Logger) *gin.Engine {
	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{cfg.Frontend.BaseURL},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimit(middleware.NewFixedWindowLimiter(100, time.Minute)))

	// Repositories
	donationRepo := repository.NewDonationRepository(db)
	userRepo := repository.NewUserRepository(db)

	// Gateways and services
	payu := payment.NewPayUAdapter(
		cfg.PayU.MerchantKey,
		cfg.PayU.Salt,
		cfg.PayU.BaseURL,
		cfg.PayU.SuccessURL,
		cfg.PayU.FailureURL,
	)
	upi := payment.NewUPIAdapter(cfg.UPI.PayeeAddress, cfg.UPI.PayeeName, cfg.UPI.StatusURL)
	whatsapp := notify.NewWhatsAppService(cfg.WhatsApp, log)
	if whatsapp == nil {
		log.Info("whatsapp alerts disabled: set TWILIO_ACCOUNT_SID, TWILIO_AUTH_TOKEN, TWILIO_WHATSAPP_FROM to enable")
	}

	// Handlers
	donationHandler := handler.NewDonationHandler(donationRepo, payu, log)
	callbackHandler := handler.NewCallbackHandler(cfg, donationRepo, payu, whatsapp, log)
	upiHandler := handler.NewUPIHandler(donationRepo, upi, log)
	adminHandler := handler.NewAdminHandler(cfg, userRepo, donationRepo, log)

	authMw := middleware.AuthRequired(&cfg.JWT)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	api := r.Group("/api/v1")
	{
		api.POST("/auth/login", adminHandler.Login)

		payments := api.Group("/payments")
		{
			payments.POST("/payu/initiate", donationHandler.Initiate)
			payments.GET("/payu/success", callbackHandler.Success)
			payments.POST("/payu/success", callbackHandler.Success)
			payments.GET("/payu/failure", callbackHandler.Failure)
			payments.POST("/payu/failure", callbackHandler.Failure)

			payments.POST("/upi/initiate", upiHandler.Initiate)
			payments.GET("/upi/intent", upiHandler.Intent)
			payments.POST("/upi/verify", upiHandler.Verify)

			payments.GET("/outcomes/:category", donationHandler.DescribeOutcome)
		}

		api.GET("/donations/:txnid", donationHandler.GetByTxnID)

		admin := api.Group("/admin")
		admin.Use(authMw, middleware.RequireRole(domain.RoleAdmin))
		{
			admin.GET("/donations", adminHandler.ListDonations)
			admin.GET("/donations/:txnid", adminHandler.GetDonation)
		}
	}

	return r
}
