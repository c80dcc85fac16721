package api

import (
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	swaggerfiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	"github.com/usmcsd/mycsd-api/docs"
	v1 "github.com/usmcsd/mycsd-api/internal/api/handler/v1"
	"github.com/usmcsd/mycsd-api/internal/api/middleware"
	"github.com/usmcsd/mycsd-api/internal/config"
	"github.com/usmcsd/mycsd-api/internal/repository"
	"github.com/usmcsd/mycsd-api/internal/repository/dao"
	"github.com/usmcsd/mycsd-api/internal/service"
)

type Server struct {
	Config *config.AppConfig
	Router *gin.Engine
}

func NewServer(conf *config.AppConfig, db *gorm.DB) *Server {
	gin.SetMode(conf.Gin.Mode)
	engine := gin.New()

	s := &Server{
		Config: conf,
		Router: engine,
	}

	s.MountMiddlewares()

	profileRepo := repository.NewProfileRepository(dao.NewProfileDAO(db))
	eventRepo := repository.NewEventRepository(dao.NewEventDAO(db))
	attendanceRepo := repository.NewAttendanceRepository(dao.NewAttendanceDAO(db))
	pointsRepo := repository.NewPointsRepository(dao.NewPointsDAO(db))

	uSvc := service.NewUserService(profileRepo)
	pointsSvc := service.NewPointsService(pointsRepo, eventRepo)

	authHandler := v1.NewAuthHandler(s.Config.API, service.NewAuthService(profileRepo, s.Config.API.AdminEmail))
	userHandler := v1.NewUserHandler(uSvc)
	eventHandler := v1.NewEventHandler(service.NewEventService(eventRepo, s.Config.API.BaseURL), uSvc)
	attendanceHandler := v1.NewAttendanceHandler(service.NewAttendanceService(eventRepo, attendanceRepo, profileRepo), uSvc)
	pointsHandler := v1.NewPointsHandler(pointsSvc, uSvc)
	goalHandler := v1.NewGoalHandler(service.NewGoalService(repository.NewGoalRepository(dao.NewGoalDAO(db)), pointsSvc), uSvc)
	reminderHandler := v1.NewReminderHandler(service.NewReminderService(repository.NewReminderRepository(dao.NewReminderDAO(db))), uSvc)
	statsHandler := v1.NewStatsHandler(service.NewStatsService(eventRepo, pointsRepo, profileRepo), uSvc)

	s.MountHandlers(authHandler, userHandler, eventHandler, attendanceHandler, pointsHandler, goalHandler, reminderHandler, statsHandler)

	return s
}

func (s *Server) MountMiddlewares() {
	// Logger and Recovery are needed unless we use gin.Default().
	s.Router.Use(gin.Logger())
	s.Router.Use(gin.Recovery())
	s.Router.Use(requestid.New())
	s.Router.Use(middleware.ConfigCORS(s.Config.API.AllowedCORSDomains))
}

func (s *Server) MountHandlers(
	authHandler *v1.AuthHandler,
	userHandler *v1.UserHandler,
	eventHandler *v1.EventHandler,
	attendanceHandler *v1.AttendanceHandler,
	pointsHandler *v1.PointsHandler,
	goalHandler *v1.GoalHandler,
	reminderHandler *v1.ReminderHandler,
	statsHandler *v1.StatsHandler,
) {
	const basePath = "/api/v1"

	auth := s.Router.Group(basePath)
	{
		auth.POST("/auth/signup", authHandler.HandleSignup)
		auth.POST("/auth/login", authHandler.HandleLogin)
	}

	// The check-in page resolves its event before the student logs in.
	s.Router.GET(basePath+"/event-attendance/:token", attendanceHandler.HandleResolveEvent)

	verified := s.Router.Group(basePath, middleware.NewAuthenticator(s.Config.API.JWTSigningKey).VerifyJWT())
	{
		verified.GET("/me", userHandler.HandleGetMe)
		verified.GET("/users/:userID", userHandler.HandleGetUser)

		verified.POST("/events", eventHandler.HandleSubmitProposal)
		verified.GET("/events", eventHandler.HandleListEvents)
		verified.POST("/events/:eventID/decision", eventHandler.HandleDecide)
		verified.POST("/events/:eventID/complete", eventHandler.HandleMarkCompleted)
		verified.GET("/events/:eventID/qr", eventHandler.HandleAttendanceQR)
		verified.GET("/events/:eventID/attendees", attendanceHandler.HandleListAttendees)
		verified.POST("/events/:eventID/assign-points", pointsHandler.HandleAssignPoints)

		verified.POST("/event-attendance/:token", attendanceHandler.HandleRecordAttendance)

		verified.GET("/me/points", pointsHandler.HandleMyPoints)
		verified.GET("/me/credits", pointsHandler.HandleMyCredits)

		verified.POST("/me/goals", goalHandler.HandleCreateGoal)
		verified.GET("/me/goals", goalHandler.HandleListGoals)
		verified.PUT("/me/goals/:goalID", goalHandler.HandleUpdateGoal)
		verified.DELETE("/me/goals/:goalID", goalHandler.HandleDeleteGoal)

		verified.POST("/me/reminders", reminderHandler.HandleCreateReminder)
		verified.GET("/me/reminders", reminderHandler.HandleListReminders)
		verified.PUT("/me/reminders/:reminderID", reminderHandler.HandleUpdateReminder)
		verified.DELETE("/me/reminders/:reminderID", reminderHandler.HandleDeleteReminder)

		verified.GET("/admin/stats", statsHandler.HandleAdminStats)
		verified.GET("/admin/stats/trend", statsHandler.HandleMonthlyTrend)
		verified.GET("/admin/stats/distribution", statsHandler.HandleEventTypeDistribution)
	}

	s.Router.GET("/", v1.HandleHealthcheck)

	// Setup Swagger UI.
	docs.SwaggerInfo.Host = s.Config.API.BaseURL
	docs.SwaggerInfo.BasePath = basePath
	docs.SwaggerInfo.Title = "MyCSD API"
	docs.SwaggerInfo.Description = "Co-curricular event and point tracking API."
	docs.SwaggerInfo.Version = "1.0"
	s.Router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerfiles.Handler))
}
