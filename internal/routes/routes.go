package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"gorm.io/gorm"

	"github.com/glowbook/salon-api/internal/audit"
	"github.com/glowbook/salon-api/internal/clock"
	"github.com/glowbook/salon-api/internal/config"
	"github.com/glowbook/salon-api/internal/handlers"
	infraRepo "github.com/glowbook/salon-api/internal/infra/repository"
	"github.com/glowbook/salon-api/internal/mailer"
	"github.com/glowbook/salon-api/internal/middleware"
	"github.com/glowbook/salon-api/internal/storage"
	"github.com/glowbook/salon-api/internal/token"
	ucBooking "github.com/glowbook/salon-api/internal/usecase/booking"
)

func RegisterRoutes(r *gin.Engine, db *gorm.DB, rdb *redis.Client, cfg *config.Config) {

	// ======================================================
	// INFRA (SINGLETONS)
	// ======================================================
	bookingRepo := infraRepo.NewBookingGormRepository(db)
	catalogRepo := infraRepo.NewCatalogGormRepository(db)

	tokens := token.NewStore(db)
	mail := mailer.New(cfg)
	images := storage.NewImageStore(cfg)
	clk := clock.System{}

	auditLogger := audit.New(db)
	auditDispatcher := audit.NewDispatcher(auditLogger)

	// ======================================================
	// USE CASES — BOOKINGS
	// ======================================================
	createBookingUC := ucBooking.NewCreateBooking(
		bookingRepo,
		catalogRepo,
		clk,
		auditDispatcher,
	)

	listBookingsUC := ucBooking.NewListBookings(
		bookingRepo,
		clk,
	)

	cancelBookingUC := ucBooking.NewCancelBooking(
		bookingRepo,
		auditDispatcher,
	)

	updateStatusUC := ucBooking.NewUpdateBookingStatus(
		bookingRepo,
		auditDispatcher,
	)

	deleteBookingUC := ucBooking.NewDeleteBooking(
		bookingRepo,
		auditDispatcher,
	)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(db, tokens, mail, cfg)
	verifyHandler := handlers.NewVerifyEmailHandler(db, mail)
	profileHandler := handlers.NewProfileHandler(db, images)

	serviceHandler := handlers.NewServiceHandler(db, images)
	userAdminHandler := handlers.NewUserAdminHandler(db)
	aestheticianHandler := handlers.NewAestheticianHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		createBookingUC,
		listBookingsUC,
		cancelBookingUC,
		updateStatusUC,
		deleteBookingUC,
	)

	auditLogsHandler := handlers.NewAuditLogsHandler(db)

	// ======================================================
	// API
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// PUBLIC AUTH
		// ------------------------------
		api.POST("/register", authHandler.Register)
		api.POST("/login", authHandler.Login)
		api.POST("/forgot-password", authHandler.ForgotPassword)
		api.POST("/reset-password", authHandler.ResetPassword)

		// ------------------------------
		// AUTHENTICATED (token required)
		// ------------------------------
		authed := api.Group("/")
		authed.Use(middleware.AuthMiddleware(tokens))
		{
			authed.POST("/logout", authHandler.Logout)

			authed.POST("/verify-email-code", verifyHandler.Verify)
			authed.POST("/resend-verification-code",
				middleware.RateLimit(rdb, "resend-code", 6, time.Minute),
				verifyHandler.Resend,
			)

			// ------------------------------
			// VERIFIED EMAIL REQUIRED
			// ------------------------------
			verified := authed.Group("/")
			verified.Use(middleware.RequireVerifiedEmail())
			{
				verified.GET("/profile", profileHandler.Show)
				verified.PUT("/profile", profileHandler.Update)
				verified.POST("/profile", profileHandler.Update)
				verified.POST("/profile/change-password", profileHandler.ChangePassword)

				verified.GET("/services", serviceHandler.PublicList)
				verified.GET("/services/:id", serviceHandler.Show)

				verified.GET("/aestheticians", aestheticianHandler.List)

				// ------------------------------
				// BOOKINGS
				// ------------------------------
				verified.GET("/bookings", bookingHandler.List)
				verified.POST("/bookings", bookingHandler.Create)
				verified.POST("/bookings/:id/cancel", bookingHandler.Cancel)
				verified.PUT("/bookings/:id/status", bookingHandler.UpdateStatus)
				verified.DELETE("/bookings/:id", bookingHandler.Delete)

				// ------------------------------
				// ADMIN
				// ------------------------------
				admin := verified.Group("/admin")
				admin.Use(middleware.RequireAdmin())
				{
					admin.GET("/users", userAdminHandler.List)
					admin.POST("/users", userAdminHandler.Create)
					admin.GET("/users/:id", userAdminHandler.Show)
					admin.PUT("/users/:id", userAdminHandler.Update)
					admin.DELETE("/users/:id", userAdminHandler.Delete)

					admin.GET("/services", serviceHandler.AdminList)
					admin.POST("/services", serviceHandler.Create)
					admin.PUT("/services/:id", serviceHandler.Update)
					admin.DELETE("/services/:id", serviceHandler.Delete)

					admin.GET("/audit-logs", auditLogsHandler.List)
				}
			}
		}
	}
}
