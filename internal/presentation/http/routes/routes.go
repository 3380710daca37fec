package routes

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zaylabs/dryclean-api/internal/config"
	"github.com/zaylabs/dryclean-api/internal/domain/entity"
	domainRepo "github.com/zaylabs/dryclean-api/internal/domain/repository"
	"github.com/zaylabs/dryclean-api/internal/infrastructure/database"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/handler"
	"github.com/zaylabs/dryclean-api/internal/presentation/http/middleware"
	"github.com/zaylabs/dryclean-api/pkg/utils"
)

// Handlers holds all the HTTP handlers used for route registration.
type Handlers struct {
	Auth          *handler.AuthHandler
	Booking       *handler.BookingHandler
	Item          *handler.ItemHandler
	Branch        *handler.BranchHandler
	Customer      *handler.CustomerHandler
	Configuration *handler.ConfigurationHandler
	Problem       *handler.ProblemHandler
	Setting       *handler.SettingHandler
	Location      *handler.LocationHandler
	Report        *handler.ReportHandler
	User          *handler.UserHandler
	Printer       *handler.PrinterHandler
}

// Deps holds shared dependencies needed by the routes.
type Deps struct {
	JWTManager      *utils.JWTManager
	Cfg             *config.Config
	IdempotencyRepo domainRepo.IdempotencyRepository
	// Clock stamps idempotency keys; nil means time.Now
	Clock func() time.Time
	// Stop ends the rate limiter cleanup loop
	Stop <-chan struct{}
}

// Setup creates the Gin router and registers all routes.
func Setup(h *Handlers, deps *Deps) *gin.Engine {
	router := gin.New()

	// Global middleware
	router.Use(gin.Recovery())
	router.Use(middleware.LoggerMiddleware())
	router.Use(middleware.CORSMiddleware(&deps.Cfg.CORS))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"service": deps.Cfg.App.Name,
		})
	})

	v1 := router.Group("/api/v1")
	{
		// Public routes (no authentication required)
		v1.POST("/auth/login", h.Auth.Login)

		// Protected routes (authentication required)
		protected := v1.Group("")
		protected.Use(middleware.AuthMiddleware(deps.JWTManager))

		// Per-branch rate limiter; runs after auth so the branch is known
		rateLimiter := middleware.NewBranchRateLimiter(
			middleware.RateLimiterConfigFrom(deps.Cfg.RateLimit.Requests, deps.Cfg.RateLimit.Duration),
			deps.Stop,
		)
		protected.Use(rateLimiter.Middleware())

		registerProtectedRoutes(protected, h, deps)
	}

	return router
}

func registerProtectedRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	// Counter
	registerBookingRoutes(protected, h, deps)
	registerCustomerRoutes(protected, h)

	// Shop setup
	registerItemRoutes(protected, h)
	registerBranchRoutes(protected, h)
	registerConfigurationRoutes(protected, h)
	registerProblemRoutes(protected, h)
	registerSettingRoutes(protected, h)
	registerLocationRoutes(protected, h)

	// Reports
	registerReportRoutes(protected, h)

	// Access control
	registerUserRoutes(protected, h)
	registerRoleRoutes(protected, h)
	registerPermissionRoutes(protected, h)

	// Printer
	registerPrinterRoutes(protected, h)
}

func registerBookingRoutes(protected *gin.RouterGroup, h *Handlers, deps *Deps) {
	bookings := protected.Group("/bookings")
	{
		pos := bookings.Group("")
		pos.Use(middleware.RequirePermission(database.PermAccessPOS))
		pos.GET("/pos", h.Booking.POS)
		pos.POST("/quote", h.Booking.Quote)
		// Booking creation uses idempotency middleware to prevent duplicate tickets
		pos.POST("", middleware.IdempotencyRequired(middleware.IdempotencyConfig{
			Repo: deps.IdempotencyRepo,
			Now:  deps.Clock,
		}), h.Booking.Create)
		pos.GET("", h.Booking.List)
		pos.GET("/:id", h.Booking.Get)
		pos.POST("/:id/print", h.Booking.Print)

		bookings.PUT("/:id/status", middleware.RequirePermission(database.PermUpdateBookings), h.Booking.UpdateStatus)
	}
}

func registerCustomerRoutes(protected *gin.RouterGroup, h *Handlers) {
	customers := protected.Group("/customers")
	customers.Use(middleware.RequirePermission(database.PermManageCustomers))
	{
		customers.GET("", h.Customer.List)
		customers.POST("", h.Customer.Create)
		customers.GET("/phone/:phone", h.Customer.Lookup)
		customers.GET("/:id", h.Customer.Get)
		customers.PUT("/:id", h.Customer.Update)
		customers.DELETE("/:id", h.Customer.Delete)
	}
}

func registerItemRoutes(protected *gin.RouterGroup, h *Handlers) {
	items := protected.Group("/items")
	items.Use(middleware.RequirePermission(database.PermManageItems))
	{
		items.GET("", h.Item.List)
		items.POST("", h.Item.Create)
		items.GET("/:id", h.Item.Get)
		items.PUT("/:id", h.Item.Update)
		items.DELETE("/:id", h.Item.Delete)
	}
}

func registerBranchRoutes(protected *gin.RouterGroup, h *Handlers) {
	branches := protected.Group("/branches")
	branches.Use(middleware.RequirePermission(database.PermManageBranches))
	{
		branches.GET("", h.Branch.List)
		branches.POST("", h.Branch.Create)
		branches.GET("/:id", h.Branch.Get)
		branches.PUT("/:id", h.Branch.Update)
		branches.DELETE("/:id", h.Branch.Delete)
	}
}

func registerConfigurationRoutes(protected *gin.RouterGroup, h *Handlers) {
	configuration := protected.Group("/configuration")
	configuration.Use(middleware.RequirePermission(database.PermManageConfiguration))
	{
		configuration.GET("", h.Configuration.Get)
		configuration.PUT("", h.Configuration.Save)
		configuration.DELETE("", h.Configuration.Delete)
	}
}

func registerProblemRoutes(protected *gin.RouterGroup, h *Handlers) {
	problems := protected.Group("/problems")
	problems.Use(middleware.RequirePermission(database.PermManageProblems))
	{
		problems.GET("", h.Problem.List)
		problems.POST("", h.Problem.Create)
		problems.GET("/:id", h.Problem.Get)
		problems.PUT("/:id", h.Problem.Update)
		problems.DELETE("/:id", h.Problem.Delete)
	}
}

// Branding is readable by every signed-in user so the front end can theme itself
func registerSettingRoutes(protected *gin.RouterGroup, h *Handlers) {
	settings := protected.Group("/settings")
	{
		settings.GET("", h.Setting.Get)
		settings.PUT("", middleware.RequirePermission(database.PermManageSettings), h.Setting.Save)
	}
}

func registerLocationRoutes(protected *gin.RouterGroup, h *Handlers) {
	locations := protected.Group("/locations")
	{
		locations.GET("", h.Location.List)
		locations.GET("/:id", h.Location.Get)

		manage := locations.Group("")
		manage.Use(middleware.RequirePermission(database.PermManageLocations))
		manage.POST("", h.Location.Create)
		manage.PUT("/:id", h.Location.Update)
		manage.DELETE("/:id", h.Location.Delete)
	}
}

func registerReportRoutes(protected *gin.RouterGroup, h *Handlers) {
	reports := protected.Group("/reports")
	reports.Use(middleware.RequirePermission(database.PermViewReports))
	{
		reports.GET("/bookings", h.Report.Bookings)
	}
}

func registerUserRoutes(protected *gin.RouterGroup, h *Handlers) {
	users := protected.Group("/users")
	users.Use(middleware.RequirePermission(database.PermManageUsers))
	{
		users.GET("", h.User.List)
		users.POST("", h.User.Create)
		users.GET("/:id", h.User.Get)
		users.PUT("/:id", h.User.Update)
		users.PUT("/:id/roles", h.User.UpdateRoles)
		users.DELETE("/:id", h.User.Delete)
	}
}

func registerRoleRoutes(protected *gin.RouterGroup, h *Handlers) {
	roles := protected.Group("/roles")
	roles.Use(middleware.RequirePermission(database.PermManageRoles))
	{
		roles.GET("", h.User.ListRoles)
		roles.POST("", h.User.CreateRole)
		roles.PUT("/:id", h.User.UpdateRole)
		roles.DELETE("/:id", h.User.DeleteRole)
	}
}

func registerPermissionRoutes(protected *gin.RouterGroup, h *Handlers) {
	permissions := protected.Group("/permissions")
	permissions.Use(middleware.RequireRole(entity.RoleSuperAdmin))
	permissions.Use(middleware.RequirePermission(database.PermManagePermissions))
	{
		permissions.GET("", h.User.ListPermissions)
		permissions.POST("", h.User.CreatePermission)
		permissions.PUT("/:id", h.User.UpdatePermission)
		permissions.DELETE("/:id", h.User.DeletePermission)
	}
}

func registerPrinterRoutes(protected *gin.RouterGroup, h *Handlers) {
	printerGroup := protected.Group("/printer")
	printerGroup.Use(middleware.RequirePermission(database.PermAccessPOS))
	{
		printerGroup.GET("/status", h.Printer.GetStatus)
		printerGroup.POST("/test", h.Printer.TestPrint)
	}
}
