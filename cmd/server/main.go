package main

import (
	"context"
	"log"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/barnhand/stable-api/internal/authz"
	"github.com/barnhand/stable-api/internal/config"
	"github.com/barnhand/stable-api/internal/database"
	"github.com/barnhand/stable-api/internal/handlers"
	"github.com/barnhand/stable-api/internal/middleware"
	"github.com/barnhand/stable-api/internal/repository"
	"github.com/barnhand/stable-api/internal/services"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Set Gin mode
	gin.SetMode(cfg.GinMode)

	// Connect to database
	if err := database.Connect(cfg); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// Run migrations
	if err := database.Migrate(); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Immutable role table, built once and injected
	registry := authz.NewRegistry()
	checker := authz.NewChecker(registry)

	// Notification sink: Redis queue when configured, log otherwise
	var notifier services.Notifier
	if cfg.RedisAddr != "" {
		notifier = services.NewRedisNotifier(cfg.RedisAddr)
		log.Printf("Notifications queued to Redis at %s", cfg.RedisAddr)
	} else {
		notifier = services.NewLogNotifier()
	}

	// Repositories
	db := database.GetDB()
	employeeRepo := repository.NewEmployeeRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	approvalRepo := repository.NewApprovalRepository(db)
	horseRepo := repository.NewHorseRepository(db)

	// Services
	jwtSecret := []byte(cfg.JWTSecret)
	authService := services.NewAuthService(employeeRepo, registry, jwtSecret)
	employeeService := services.NewEmployeeService(employeeRepo, registry)
	taskService := services.NewTaskService(taskRepo, employeeRepo, horseRepo, checker, notifier, cfg.ApprovalSLA)
	approvalService := services.NewApprovalService(taskRepo, approvalRepo, checker, notifier, cfg.ApprovalSLA, cfg.MissedGracePeriod)

	// Background escalation sweep, stopped on shutdown
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	approvalService.StartSweeper(ctx, cfg.EscalationInterval)

	// Handlers
	authHandler := handlers.NewAuthHandler(authService)
	employeeHandler := handlers.NewEmployeeHandler(employeeService)
	taskHandler := handlers.NewTaskHandler(authService, taskService, approvalService)
	horseHandler := handlers.NewHorseHandler()
	attendanceHandler := handlers.NewAttendanceHandler(checker)
	inventoryHandler := handlers.NewInventoryHandler()
	fineHandler := handlers.NewFineHandler(checker)
	inspectionHandler := handlers.NewInspectionHandler()
	meetingHandler := handlers.NewMeetingHandler(checker)
	seedHandler := handlers.NewSeedHandler(cfg.SeedToken)

	// Initialize Gin router
	r := gin.Default()

	// CORS allow-list from configuration
	if cfg.CORSOrigin != "" {
		corsConfig := cors.DefaultConfig()
		corsConfig.AllowOrigins = strings.Split(cfg.CORSOrigin, ",")
		corsConfig.AllowHeaders = append(corsConfig.AllowHeaders, "Authorization")
		r.Use(cors.New(corsConfig))
	}

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"status":  "ok",
			"message": "Stable API is running",
		})
	})

	requireAuth := middleware.RequireAuth(jwtSecret)
	requireAccess := middleware.RequireEndpointAccess(checker)

	// API routes
	api := r.Group("/api")
	{
		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/register", authHandler.Register)
			auth.POST("/login", authHandler.Login)
			auth.GET("/me", requireAuth, requireAccess, authHandler.GetCurrentUser)
		}

		// Staff administration (protected)
		employees := api.Group("/employees")
		employees.Use(requireAuth, requireAccess)
		{
			employees.GET("", employeeHandler.ListEmployees)
			employees.GET("/:id", employeeHandler.GetEmployee)
			employees.PATCH("/:id", employeeHandler.UpdateEmployee)
			employees.PATCH("/:id/approve", employeeHandler.ApproveEmployee)
			employees.DELETE("/:id", employeeHandler.DeleteEmployee)
		}

		// Task lifecycle and approvals (protected)
		tasks := api.Group("/tasks")
		tasks.Use(requireAuth, requireAccess)
		{
			tasks.GET("", taskHandler.ListTasks)
			tasks.POST("", taskHandler.CreateTask)
			tasks.GET("/:id", taskHandler.GetTask)
			tasks.PATCH("/:id/start", taskHandler.StartTask)
			tasks.PATCH("/:id/submit-completion", taskHandler.SubmitCompletion)
			tasks.POST("/:id/approve", taskHandler.ApproveTask)
			tasks.POST("/:id/reject", taskHandler.RejectTask)
			tasks.PATCH("/:id/cancel", taskHandler.CancelTask)
			tasks.DELETE("/:id", taskHandler.DeleteTask)
			tasks.GET("/:id/approvals", taskHandler.ListApprovals)
		}

		// Horse records (protected)
		horses := api.Group("/horses")
		horses.Use(requireAuth, requireAccess)
		{
			horses.GET("", horseHandler.ListHorses)
			horses.GET("/:id", horseHandler.GetHorse)
			horses.POST("", horseHandler.CreateHorse)
			horses.PATCH("/:id", horseHandler.UpdateHorse)
			horses.DELETE("/:id", horseHandler.DeleteHorse)
		}

		// Attendance (protected)
		attendance := api.Group("/attendance")
		attendance.Use(requireAuth, requireAccess)
		{
			attendance.POST("/check-in", attendanceHandler.CheckIn)
			attendance.PATCH("/check-out", attendanceHandler.CheckOut)
			attendance.GET("", attendanceHandler.ListAttendance)
		}

		// Inventory (protected)
		inventory := api.Group("/inventory")
		inventory.Use(requireAuth, requireAccess)
		{
			inventory.GET("", inventoryHandler.ListItems)
			inventory.POST("", inventoryHandler.CreateItem)
			inventory.PATCH("/:id", inventoryHandler.UpdateItem)
			inventory.PATCH("/:id/adjust", inventoryHandler.AdjustQuantity)
			inventory.DELETE("/:id", inventoryHandler.DeleteItem)
		}

		// Fines (protected)
		fines := api.Group("/fines")
		fines.Use(requireAuth, requireAccess)
		{
			fines.POST("", fineHandler.IssueFine)
			fines.GET("", fineHandler.ListFines)
			fines.PATCH("/:id", fineHandler.UpdateFineStatus)
		}

		// Inspections (protected)
		inspections := api.Group("/inspections")
		inspections.Use(requireAuth, requireAccess)
		{
			inspections.POST("", inspectionHandler.CreateInspection)
			inspections.GET("", inspectionHandler.ListInspections)
		}

		// Meetings (protected)
		meetings := api.Group("/meetings")
		meetings.Use(requireAuth, requireAccess)
		{
			meetings.POST("", meetingHandler.CreateMeeting)
			meetings.GET("", meetingHandler.ListMeetings)
			meetings.DELETE("/:id", meetingHandler.DeleteMeeting)
		}

		// Seed endpoint, gated by X-Seed-Token only
		api.POST("/admin/seed", seedHandler.Seed)
	}

	// Start server
	log.Printf("Server starting on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
