package routes

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/healthhub-scheduler/internal/audit"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/config"
	doctorDomain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/doctor"
	paymentDomain "github.com/BruksfildServices01/healthhub-scheduler/internal/domain/payment"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/handlers"
	infraPayment "github.com/BruksfildServices01/healthhub-scheduler/internal/infra/payment"
	infraRepo "github.com/BruksfildServices01/healthhub-scheduler/internal/infra/repository"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/infra/storage"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/middleware"
	"github.com/BruksfildServices01/healthhub-scheduler/internal/models"
	ucAppointment "github.com/BruksfildServices01/healthhub-scheduler/internal/usecase/appointment"
	ucDoctor "github.com/BruksfildServices01/healthhub-scheduler/internal/usecase/doctor"
	ucPayment "github.com/BruksfildServices01/healthhub-scheduler/internal/usecase/payment"
	ucUser "github.com/BruksfildServices01/healthhub-scheduler/internal/usecase/user"
)

// Deps are the process-wide collaborators built in main.
type Deps struct {
	DB       *gorm.DB
	Config   *config.Config
	Log      *zap.Logger
	Audit    *audit.Dispatcher
	Location *time.Location

	// Redis is optional; without it requests are not rate limited.
	Redis *redis.Client
}

func RegisterRoutes(r *gin.Engine, d Deps) {

	// ======================================================
	// INFRA
	// ======================================================
	appointmentRepo := infraRepo.NewAppointmentGormRepository(d.DB)
	doctorRepo := infraRepo.NewDoctorGormRepository(d.DB)
	paymentRepo := infraRepo.NewPaymentGormRepository(d.DB)
	userRepo := infraRepo.NewUserGormRepository(d.DB)

	// Interfaces stay nil when the integration is not configured; the use
	// cases answer with payments_disabled / storage_disabled.
	var gateway paymentDomain.Gateway
	if d.Config.PaymentsEnabled() {
		mp, err := infraPayment.NewMercadoPago(d.Config.MercadoPagoAccessToken, d.Config.PaymentNotificationURL)
		if err != nil {
			d.Log.Warn("payment gateway disabled", zap.Error(err))
		} else {
			gateway = mp
		}
	}

	var store doctorDomain.ObjectStore
	if d.Config.StorageEnabled() {
		store = storage.NewS3Store(d.Config)
	}

	limit := func(c *gin.Context) { c.Next() }
	if d.Redis != nil {
		limit = middleware.RateLimit(
			middleware.NewRedisCounter(d.Redis),
			d.Config.RateLimitPerMinute,
			time.Minute,
			"rl:api",
			d.Log,
		)
	}

	// ======================================================
	// USE CASES
	// ======================================================
	bookUC := ucAppointment.NewBookAppointment(appointmentRepo, d.Audit, d.Location)
	editUC := ucAppointment.NewEditAppointment(appointmentRepo, d.Audit, d.Location)
	cancelUC := ucAppointment.NewCancelAppointment(appointmentRepo, d.Audit, d.Location)
	completeUC := ucAppointment.NewCompleteAppointment(appointmentRepo, d.Audit, d.Location)
	deleteUC := ucAppointment.NewDeleteAppointment(appointmentRepo, d.Audit)
	listUC := ucAppointment.NewListAppointments(appointmentRepo)
	slotsUC := ucAppointment.NewGetFreeSlots(appointmentRepo, d.Location)

	getDoctorUC := ucDoctor.NewGetDoctor(doctorRepo)
	listWindowsUC := ucDoctor.NewListAvailabilities(doctorRepo)
	replaceWindowsUC := ucDoctor.NewReplaceAvailabilities(doctorRepo, d.Audit)
	avatarUC := ucDoctor.NewUploadAvatar(doctorRepo, store, d.Audit)

	currency := d.Config.PaymentCurrency
	checkoutUC := ucPayment.NewCheckoutAppointment(appointmentRepo, paymentRepo, gateway, currency, d.Audit, d.Log)
	chargeUC := ucPayment.NewChargeAppointment(appointmentRepo, paymentRepo, gateway, currency, d.Audit, d.Log)
	verifyUC := ucPayment.NewVerifyPayment(paymentRepo, gateway)

	listUsersUC := ucUser.NewListUsers(userRepo)
	profileUC := ucUser.NewGetProfile(userRepo)
	deleteUserUC := ucUser.NewDeleteUser(userRepo, d.Audit)

	// ======================================================
	// HANDLERS
	// ======================================================
	authHandler := handlers.NewAuthHandler(d.DB, d.Config, d.Log)
	meHandler := handlers.NewMeHandler(d.DB, d.Log)
	patientHandler := handlers.NewPatientHandler(d.DB, d.Log)
	auditLogsHandler := handlers.NewAuditLogsHandler(d.DB, d.Log)

	appointmentHandler := handlers.NewAppointmentHandler(
		bookUC,
		editUC,
		cancelUC,
		completeUC,
		deleteUC,
		listUC,
		d.Log,
	)

	doctorHandler := handlers.NewDoctorHandler(
		getDoctorUC,
		listWindowsUC,
		replaceWindowsUC,
		avatarUC,
		slotsUC,
		d.Log,
	)

	paymentHandler := handlers.NewPaymentHandler(checkoutUC, chargeUC, verifyUC, d.Log)
	userHandler := handlers.NewUserHandler(listUsersUC, profileUC, deleteUserUC, d.Log)

	// ======================================================
	// API (JSON)
	// ======================================================
	api := r.Group("/api")
	{
		// ------------------------------
		// AUTH
		// ------------------------------
		api.POST("/auth/register", limit, authHandler.Register)
		api.POST("/auth/login", limit, authHandler.Login)

		// ------------------------------
		// SECURED
		// ------------------------------
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(d.Config))
		{
			secured.GET("/me", meHandler.GetMe)

			admin := middleware.RequireRole(models.RoleAdmin)
			users := secured.Group("/users")
			{
				users.GET("/all", admin, userHandler.List)
				users.GET("/:userId/profile", userHandler.Profile)
				users.DELETE("/:userId", admin, limit, userHandler.Delete)
			}

			appointments := secured.Group("/appointments")
			{
				appointments.POST("/book", limit, appointmentHandler.Book)
				appointments.GET("/all", appointmentHandler.ListAll)
				appointments.GET("/doctor/:doctorId", appointmentHandler.ListByDoctor)
				appointments.GET("/patient/:patientId", appointmentHandler.ListByPatient)
				appointments.GET("/:appointmentId", appointmentHandler.Get)
				appointments.PATCH("/:appointmentId", limit, appointmentHandler.Edit)
				appointments.PATCH("/:appointmentId/cancel", limit, appointmentHandler.Cancel)
				appointments.PATCH("/:appointmentId/complete", limit, appointmentHandler.Complete)
				appointments.DELETE("/:appointmentId", limit, appointmentHandler.Delete)
			}

			doctors := secured.Group("/doctors")
			{
				doctors.GET("/:doctorId", doctorHandler.Get)
				doctors.GET("/:doctorId/slots", doctorHandler.FreeSlots)
				doctors.GET("/:doctorId/availabilities", doctorHandler.ListAvailabilities)
				doctors.PUT("/:doctorId/availabilities", limit, doctorHandler.ReplaceAvailabilities)
				doctors.PUT("/:doctorId/avatar", limit, doctorHandler.UploadAvatar)
			}

			patients := secured.Group("/patients")
			{
				patients.GET("", middleware.RequireRole(models.RoleDoctor, models.RoleAdmin), patientHandler.List)
				patients.GET("/:patientId", patientHandler.Get)
			}

			payments := secured.Group("/payments")
			{
				payments.POST("/appointments/:appointmentId/checkout", limit, paymentHandler.Checkout)
				payments.POST("/appointments/:appointmentId/charge", limit, paymentHandler.Charge)
				payments.GET("/verify/:reference", paymentHandler.Verify)
			}

			secured.GET("/audit-logs", admin, auditLogsHandler.List)
		}
	}
}
