package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zatekoja/dentaldesk/internal/adapters/memory"
	"github.com/zatekoja/dentaldesk/internal/api/handlers"
	"github.com/zatekoja/dentaldesk/internal/api/middleware"
	"github.com/zatekoja/dentaldesk/internal/domain/providers"
	"github.com/zatekoja/dentaldesk/pkg/config"
)

// NewRouter builds the fake dental backend over store. Rate limit counters
// are kept in counters, or in process memory when it is nil.
func NewRouter(store *memory.Store, cfg *config.FakeAPIConfig, counters providers.CacheProvider) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Tracing())
	router.Use(middleware.Logging())
	router.Use(middleware.CORS(cfg.AllowedOrigins))

	patientHandler := handlers.NewPatientHandler(store.Patients())
	appointmentHandler := handlers.NewAppointmentHandler(store.Appointments())
	catalogHandler := handlers.NewCatalogHandler(store.Dentists(), store.Treatments(), store.Stats())
	authHandler := handlers.NewAuthHandler(cfg.JWTSecret, cfg.TokenTTL, nil)

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	router.POST("/auth/token", authHandler.IssueToken)

	api := router.Group("")
	api.Use(middleware.Faults(cfg.FaultRate, cfg.Latency, nil))
	api.Use(middleware.Auth(cfg.JWTSecret))
	api.Use(middleware.RateLimit(counters, cfg.RateLimit, cfg.RateWindow, nil))
	{
		patients := api.Group("/patients")
		{
			patients.GET("", patientHandler.List)
			patients.GET("/search", patientHandler.Search)
			patients.GET("/:id", patientHandler.Get)
			patients.POST("", patientHandler.Create)
			patients.PUT("/:id", patientHandler.Update)
			patients.DELETE("/:id", patientHandler.Delete)
		}

		appointments := api.Group("/appointments")
		{
			appointments.GET("", appointmentHandler.List)
			appointments.GET("/upcoming", appointmentHandler.ListUpcoming)
			appointments.GET("/today", appointmentHandler.ListToday)
			appointments.GET("/patient/:id", appointmentHandler.ListByPatient)
			appointments.GET("/:id", appointmentHandler.Get)
			appointments.POST("", appointmentHandler.Create)
			appointments.PUT("/:id", appointmentHandler.Update)
			appointments.DELETE("/:id", appointmentHandler.Delete)
		}

		api.GET("/dentists", catalogHandler.ListDentists)
		api.GET("/dentists/:id", catalogHandler.GetDentist)
		api.POST("/dentists", catalogHandler.CreateDentist)

		api.GET("/treatments", catalogHandler.ListTreatments)
		api.GET("/treatments/:id", catalogHandler.GetTreatment)
		api.POST("/treatments", catalogHandler.CreateTreatment)

		api.GET("/stats", catalogHandler.Stats)
	}

	router.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"message": "route not found", "code": "NOT_FOUND"})
	})

	return router
}
