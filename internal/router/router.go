package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"hotelcluster/internal/auth"
	"hotelcluster/internal/config"
	"hotelcluster/internal/guard"
	"hotelcluster/internal/handler"
	"hotelcluster/internal/model"
)

// DefaultRoutes are the navigation targets the guard redirects to.
var DefaultRoutes = guard.Routes{
	Login:        "/api/auth/login",
	ProfileSetup: "/api/profile",
	AdminHome:    "/api/admin",
	UserHome:     "/api/hotel",
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	deps guard.Deps,
	authHandler *handler.AuthHandler,
	profileHandler *handler.ProfileHandler,
	userHandler *handler.UserHandler,
	hotelHandler *handler.HotelHandler,
	taskHandler *handler.TaskHandler,
	reportHandler *handler.ReportHandler,
	emergencyHandler *handler.EmergencyHandler,
	auditHandler *handler.AuditHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/login", authHandler.Login)

	// Session routes only need a verified token, not a full admission
	// decision.
	session := api.Group("/auth", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return new(auth.Claims)
		},
	}))
	session.POST("/logout", authHandler.Logout)
	session.GET("/session", authHandler.Session)

	// Staff routes, any role. Profile setup sits in the same group; the
	// admission decision keys on the route path to let a caller without a
	// profile through to it and nothing else.
	staff := api.Group("", guard.Middleware(deps, ""))
	staff.GET("/profile", profileHandler.GetProfile)
	staff.PUT("/profile", profileHandler.SaveProfile)
	staff.GET("/profile/role", profileHandler.GetRole)

	staff.GET("/hotel", hotelHandler.ListHotels)
	staff.GET("/tasks/mine", taskHandler.ListMyTasks)
	staff.GET("/tasks/:id", taskHandler.GetTask)
	staff.POST("/tasks/:id/comments", taskHandler.AddComment)
	staff.GET("/tasks/:id/comments", taskHandler.ListComments)
	staff.POST("/reports", reportHandler.SubmitReport)
	staff.GET("/reports/mine", reportHandler.ListMyReports)
	staff.POST("/emergencies", emergencyHandler.SubmitEmergency)

	// Admin routes.
	admin := api.Group("/admin", guard.Middleware(deps, model.RoleAdmin))
	admin.GET("", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"dashboard": "admin"})
	})
	admin.GET("/users", userHandler.ListUsers)
	admin.GET("/users/:principal", userHandler.GetUser)
	admin.POST("/users", userHandler.CreateUser)
	admin.PUT("/users", userHandler.UpdateUser)
	admin.DELETE("/users/:principal", userHandler.DeleteUser)

	admin.GET("/hotels", hotelHandler.ListHotels)
	admin.POST("/hotels", hotelHandler.CreateHotel)
	admin.POST("/hotels/manual", hotelHandler.CreateManualHotel)
	admin.PUT("/hotels/:id", hotelHandler.UpdateHotel)
	admin.DELETE("/hotels/:id", hotelHandler.DeleteHotel)

	admin.GET("/tasks", taskHandler.ListTasks)
	admin.POST("/tasks", taskHandler.CreateTask)
	admin.POST("/tasks/:id/assignees", taskHandler.AssignUser)
	admin.POST("/tasks/:id/hotels", taskHandler.AssignHotels)
	admin.POST("/tasks/:id/hotels/:hotelID", taskHandler.AssignHotel)

	admin.GET("/reports", reportHandler.ListAllReports)

	admin.GET("/emergencies", emergencyHandler.ListEmergencies)
	admin.GET("/emergencies/recipients", emergencyHandler.ListRecipients)
	admin.POST("/emergencies/recipients", emergencyHandler.AddRecipient)
	admin.DELETE("/emergencies/recipients/:contact", emergencyHandler.RemoveRecipient)

	admin.GET("/audit", auditHandler.ListLogs)
	admin.GET("/audit/export", auditHandler.ExportLogs)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
