package router

import (
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/bugemco/multimedia-request-hub/config"
	"github.com/bugemco/multimedia-request-hub/controllers"
	"github.com/bugemco/multimedia-request-hub/middlewares"
	"github.com/bugemco/multimedia-request-hub/services"
)

func SetupRouter(db *gorm.DB, cfg config.AppConfig, sessions *services.SessionService) *gin.Engine {
	r := gin.Default()

	// Uploaded request assets are served straight off disk.
	r.Static("/uploads", cfg.UploadDir)

	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddlewares())
	r.Use(middlewares.LoggerMiddleware())
	// Registered before any route: gin snapshots each route's handler
	// chain at registration time, so a limiter added later never runs.
	r.Use(middlewares.NewRateLimiter(50, 1).RateLimit())

	storage := services.NewStorageService(cfg.UploadDir, cfg.BaseURL)
	mailer := services.GetMailerService()

	authCtrl := controllers.NewAuthController(sessions)
	employeeCtrl := controllers.NewEmployeeController(db)
	requestCtrl := controllers.NewRequestController(db, storage, mailer)
	reportCtrl := controllers.NewReportController(db)

	// ----------------------------------------------------------------
	//                      PUBLIC ROUTES
	// ----------------------------------------------------------------
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(200, gin.H{"message": "pong"})
	})

	// Employee submission form, no login needed
	r.POST("/requests", requestCtrl.CreateRequest)

	login := r.Group("/")
	login.Use(middlewares.NewStrictRateLimiter())
	{
		login.POST("/admin/login", authCtrl.Login)
	}

	// ----------------------------------------------------------------
	//                      ADMIN ROUTES
	// ----------------------------------------------------------------
	admin := r.Group("/admin")
	admin.Use(middlewares.SessionAuth(sessions))
	{
		admin.POST("/logout", authCtrl.Logout)

		admin.GET("/employees", employeeCtrl.GetAllEmployees)

		admin.GET("/requests", requestCtrl.GetAllRequests)
		admin.PATCH("/requests/:request_id/status", requestCtrl.UpdateRequestStatus)
		admin.DELETE("/requests/:request_id", requestCtrl.DeleteRequest)

		admin.GET("/reports/export", reportCtrl.ExportReport)
	}

	return r
}
