package main

import (
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"admin-console/config"
	"admin-console/handlers"
	"admin-console/middleware"
	"admin-console/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Warn(".env file not found, using system environment variables")
	}

	cfg := config.Load()

	sessions, err := services.NewSessionStore(cfg.SessionFile)
	if err != nil {
		log.WithError(err).Fatal("failed to initialize session store")
	}

	client := services.NewClient(cfg.APIBaseURL,
		time.Duration(cfg.HTTPTimeoutSeconds)*time.Second, sessions)
	tasks := services.NewTaskService(client)

	hub := services.NewDashboardHub(client,
		time.Duration(cfg.DashboardRefreshSeconds)*time.Second)
	hub.Start()
	defer hub.Stop()

	authHandlers := handlers.NewAuthHandlers(client, sessions)
	dashboardHandlers := handlers.NewDashboardHandlers(client)
	reportHandlers := handlers.NewReportHandlers(client)
	taskHandlers := handlers.NewTaskHandlers(tasks)
	directoryHandlers := handlers.NewDirectoryHandlers(client)
	wsHandlers := handlers.NewWebSocketHandlers(hub)

	r := gin.Default()
	corsCfg := cors.Config{
		AllowMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders: []string{"Content-Type", "Authorization", "X-Requested-With"},
		MaxAge:       24 * time.Hour,
	}
	if len(cfg.CORSOrigins) == 1 && cfg.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = cfg.CORSOrigins
		corsCfg.AllowCredentials = true
	}
	r.Use(cors.New(corsCfg))

	// Public routes
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "healthy", "service": "admin-console"})
	})
	r.POST("/login", authHandlers.Login)
	r.POST("/register", authHandlers.Register)

	// Console routes behind the session guard
	protected := r.Group("/")
	protected.Use(middleware.SessionRequired(sessions))
	{
		protected.POST("/logout", authHandlers.Logout)
		protected.GET("/me", authHandlers.Me)
		protected.PATCH("/me", authHandlers.UpdateMe)
		protected.PUT("/me/password", authHandlers.ChangePassword)

		protected.GET("/dashboard", dashboardHandlers.Metrics)
		protected.GET("/ws/dashboard", wsHandlers.DashboardStream)
		protected.GET("/ws/health", wsHandlers.Health)

		protected.GET("/reports", reportHandlers.List)
		protected.POST("/reports", reportHandlers.Create)
		protected.GET("/reports/:id", reportHandlers.Detail)
		protected.PATCH("/reports/:id", reportHandlers.Update)
		protected.GET("/reports/:id/comments", reportHandlers.Comments)
		protected.POST("/reports/:id/comments", reportHandlers.AddComment)

		protected.GET("/tasks", taskHandlers.List)
		protected.PATCH("/tasks/:id/status", taskHandlers.UpdateStatus)
		protected.PATCH("/tasks/:id/team", taskHandlers.AssignTeam)

		protected.GET("/categories", directoryHandlers.ListCategories)
		protected.POST("/categories", directoryHandlers.CreateCategory)
		protected.PATCH("/categories/:id", directoryHandlers.UpdateCategory)
		protected.DELETE("/categories/:id", directoryHandlers.DeleteCategory)

		protected.GET("/teams", directoryHandlers.ListTeams)
		protected.POST("/teams", directoryHandlers.CreateTeam)
		protected.PATCH("/teams/:id", directoryHandlers.UpdateTeam)
		protected.DELETE("/teams/:id", directoryHandlers.DeleteTeam)

		protected.GET("/users", directoryHandlers.ListUsers)
		protected.GET("/users/:id", directoryHandlers.GetUser)
		protected.PATCH("/users/:id", directoryHandlers.UpdateUser)
		protected.DELETE("/users/:id", directoryHandlers.DeleteUser)
		protected.POST("/users/:id/role", directoryHandlers.SetUserRole)
		protected.POST("/users/:id/team", directoryHandlers.SetUserTeam)
	}

	log.Infof("Starting admin console on %s:%s (backend %s)", cfg.Host, cfg.Port, cfg.APIBaseURL)
	if err := r.Run(cfg.Host + ":" + cfg.Port); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
