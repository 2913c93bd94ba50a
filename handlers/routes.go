package handlers

import (
	"context"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"versusfut/middleware"
	"versusfut/services"
)

// Services is everything the HTTP surface calls into
type Services struct {
	Matches    *services.MatchService
	Attendance *services.AttendanceService
	Squads     *services.SquadService
	Ledger     *services.LedgerService
	Stats      *services.StatsService
	Players    *services.PlayerService
	Reports    *services.ReportService
}

// Pinger reports database liveness for /health
type Pinger interface {
	Ping(ctx context.Context) error
}

type AppOptions struct {
	ServiceToken   string
	AllowedOrigins []string
}

// NewApp builds the fiber app with the global middleware chain and every route
func NewApp(svc Services, db Pinger, opts AppOptions) *fiber.App {
	app := fiber.New(fiber.Config{
		ErrorHandler:          ErrorHandler,
		DisableStartupMessage: true,
		BodyLimit:             1 * 1024 * 1024,
	})

	origins := opts.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}

	app.Use(middleware.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     strings.Join(origins, ","),
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS,PATCH,HEAD",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, X-Requested-With, X-Request-ID, X-User-ID, X-User-Roles",
		AllowCredentials: true,
		MaxAge:           86400,
	}))
	// Only gateway requests allowed
	app.Use(middleware.GatewayAuthMiddleware(opts.ServiceToken))
	app.Use(middleware.UserContextMiddleware())

	SetupRoutes(app, svc, db)
	return app
}

func SetupRoutes(app *fiber.App, svc Services, db Pinger) {
	app.Get("/health", healthCheck(db))

	owner := middleware.RequireOwner()
	SetupMatchRoutes(app, svc.Matches, svc.Reports, owner)
	SetupAttendanceRoutes(app, svc.Attendance, owner)
	SetupSquadRoutes(app, svc.Squads, owner)
	SetupGameRoutes(app, svc.Ledger, owner)
	SetupTeamRoutes(app, svc.Stats, svc.Players, owner)
}

func healthCheck(db Pinger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
		defer cancel()
		if err := db.Ping(ctx); err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"status": "unhealthy", "error": "database unreachable"})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
