package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"time"

	_ "hotelcluster/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"hotelcluster/internal/actor"
	"hotelcluster/internal/auth"
	"hotelcluster/internal/cache"
	"hotelcluster/internal/config"
	"hotelcluster/internal/db"
	"hotelcluster/internal/guard"
	"hotelcluster/internal/handler"
	"hotelcluster/internal/model"
	"hotelcluster/internal/repository"
	"hotelcluster/internal/resolver"
	"hotelcluster/internal/router"
	"hotelcluster/internal/service"
)

// @title Hotel Cluster Management API
// @version 1.0
// @description Role gated management service for a cluster of hotels.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	cfg := config.Load()

	e := echo.New()
	e.Use(middleware.RequestID())

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("database init: %v", err)
	}

	// Drop tables if RESET_DB environment variable is set
	if os.Getenv("RESET_DB") == "true" {
		log.Println("RESET_DB=true detected, dropping all tables...")
		tables := []interface{}{
			&model.TaskComment{},
			&model.TaskAssignment{},
			&model.TaskHotel{},
			&model.Task{},
			&model.DailyReport{},
			&model.EmergencyRecipient{},
			&model.Emergency{},
			&model.AuditLog{},
			&model.UserProfile{},
			&model.Hotel{},
		}
		for _, table := range tables {
			if err := gormDB.Migrator().DropTable(table); err != nil {
				log.Printf("Warning: Failed to drop table (may not exist): %v", err)
			}
		}
		log.Println("Tables dropped")
	}

	// Run migrations for all models
	if err := gormDB.AutoMigrate(
		&model.Hotel{},
		&model.UserProfile{},
		&model.Task{},
		&model.TaskHotel{},
		&model.TaskAssignment{},
		&model.TaskComment{},
		&model.AuditLog{},
		&model.DailyReport{},
		&model.Emergency{},
		&model.EmergencyRecipient{},
	); err != nil {
		log.Fatalf("auto-migrate: %v", err)
	}

	cacheClient := cache.New(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)

	// Initialize repositories
	userRepo := repository.NewUserRepository(gormDB)
	hotelRepo := repository.NewHotelRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)
	auditRepo := repository.NewAuditRepository(gormDB)
	reportRepo := repository.NewReportRepository(gormDB)
	emergencyRepo := repository.NewEmergencyRepository(gormDB)

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.JWTSecret)
	sessionStore := auth.NewSessionStore(cacheClient)
	sessionService := service.NewSessionService(jwtService, sessionStore, cfg.LoginTimeout)

	// The guard holds every request in its initializing state until the
	// session store answers, so keep trying until it does.
	go func() {
		for {
			err := sessionService.Bootstrap(context.Background())
			if err == nil {
				return
			}
			log.Printf("Warning: session store not reachable yet: %v", err)
			time.Sleep(time.Second)
		}
	}()

	// Initialize services
	auditService := service.NewAuditService(auditRepo, userRepo)
	userService := service.NewUserService(userRepo, hotelRepo, auditService, cfg.AdminBootstrapToken)
	hotelService := service.NewHotelService(hotelRepo, userRepo, auditService)
	taskService := service.NewTaskService(taskRepo, hotelRepo, userRepo, auditService)
	reportService := service.NewReportService(reportRepo, hotelRepo, userRepo, auditService)
	emergencyService := service.NewEmergencyService(emergencyRepo, hotelRepo, userRepo, auditService)

	// Connection handles and cached identity answers
	binder := actor.NewBackendBinder(actor.Services{
		Users:       userService,
		Hotels:      hotelService,
		Tasks:       taskService,
		Audit:       auditService,
		Reports:     reportService,
		Emergencies: emergencyService,
	}, sessionStore)
	registry := actor.NewRegistry(binder)
	queryCache := cache.NewQueryCache(cacheClient, cfg.ProfileCacheTTL)
	res := resolver.New(queryCache)
	navigator := guard.NewNavigator()

	guardDeps := guard.Deps{
		Sessions:  sessionService,
		Registry:  registry,
		Resolver:  res,
		Routes:    router.DefaultRoutes,
		Navigator: navigator,
	}

	// Initialize handlers
	authHandler := handler.NewAuthHandler(sessionService, userService, registry, res, navigator, router.DefaultRoutes)
	profileHandler := handler.NewProfileHandler(res)
	userHandler := handler.NewUserHandler(res)
	hotelHandler := handler.NewHotelHandler()
	taskHandler := handler.NewTaskHandler()
	reportHandler := handler.NewReportHandler()
	emergencyHandler := handler.NewEmergencyHandler()
	auditHandler := handler.NewAuditHandler()

	// Register routes
	router.Register(
		e,
		cfg,
		guardDeps,
		authHandler,
		profileHandler,
		userHandler,
		hotelHandler,
		taskHandler,
		reportHandler,
		emergencyHandler,
		auditHandler,
	)

	if cfg.SwaggerHost != "" {
		log.Printf("Swagger documentation available at: %s/swagger/index.html", cfg.SwaggerHost)
	} else {
		log.Printf("Swagger documentation available at: http://localhost:%s/swagger/index.html", cfg.ServerPort)
	}

	addr := ":" + cfg.ServerPort
	if err := e.Start(addr); err != nil && err != http.ErrServerClosed {
		log.Fatalf("server start: %v", err)
	}
}
