package handler

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"
	"github.com/sirupsen/logrus"

	"bffmvp/internal/logging"
	"bffmvp/internal/model"
	"bffmvp/internal/routeview"
	"bffmvp/internal/service"
)

// Deps carries what the HTTP layer needs. DB is nil when routes live in memory.
type Deps struct {
	DB        *sql.DB
	Routes    service.RouteService
	Logs      service.RequestLogService
	Snapshots service.SnapshotService
	// NewView builds a fresh, unmounted route view for each page load.
	NewView    func() *routeview.View
	RenderWait time.Duration
	Log        logrus.FieldLogger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app. The dynamic route
// fallback is registered last so fixed routes always win.
func RegisterRoutes(app *fiber.App, d Deps) {
	if d.Log == nil {
		d.Log = logrus.StandardLogger()
	}

	app.Get("/health", HealthCheck(d.DB))
	app.Get("/healthz", LivenessProbe())

	app.Get("/", RouteConfigPage(d.NewView, d.RenderWait))

	api := app.Group("/api")
	api.Get("/routes", ListRoutes(d.Routes))
	api.Post("/routes", AddRoute(d.Routes))
	api.Post("/routes/snapshot", ExportSnapshot(d.Snapshots))
	api.Get("/logs", ListLogs(d.Logs))

	app.Use(DynamicRoute(d.Routes, d.Logs, d.Log))
}

// HealthCheck reports readiness; with a database it also pings it.
func HealthCheck(db *sql.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if db != nil {
			ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
			defer cancel()
			if err := db.PingContext(ctx); err != nil {
				return writeError(c, fiber.StatusServiceUnavailable, "SERVICE_UNAVAILABLE", "dependency unavailable")
			}
		}
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"status": "healthy"})
	}
}

// LivenessProbe always answers 200.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}

// RouteConfigPage hosts a route view for one page load: it mounts the view,
// waits at most wait for the fetch to settle and renders whatever state the view
// is in. The view is unmounted when the handler returns.
func RouteConfigPage(newView func() *routeview.View, wait time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		v := newView()
		defer v.Unmount()

		ctx := c.UserContext()
		v.Mount(ctx)

		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-v.Done():
		case <-timer.C:
		case <-ctx.Done():
		}

		var buf bytes.Buffer
		if err := v.RenderPage(&buf); err != nil {
			return writeError(c, fiber.StatusInternalServerError, "RENDER_ERROR", "unable to render page")
		}
		c.Type("html", "utf-8")
		return c.Send(buf.Bytes())
	}
}

// ListRoutes godoc
// @Summary List configured routes
// @Produce json
// @Success 200 {array} model.RouteConfig
// @Router /api/routes [get]
func ListRoutes(routes service.RouteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := routes.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// AddRoute godoc
// @Summary Register a route
// @Accept json
// @Produce json
// @Param route body model.RouteConfig true "route"
// @Success 201 {string} string "ok"
// @Router /api/routes [post]
func AddRoute(routes service.RouteService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		route, err := model.DecodeRouteConfig(c.Body())
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "body must be a route config object")
		}

		if err := routes.Register(c.UserContext(), route); err != nil {
			if errors.Is(err, service.ErrInvalidRoute) {
				return writeError(c, fiber.StatusBadRequest, "INVALID_ROUTE", err.Error())
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON("ok")
	}
}

// ExportSnapshot godoc
// @Summary Archive the route table to object storage
// @Produce json
// @Success 201 {object} service.SnapshotResult
// @Failure 503 {object} errorPayload
// @Router /api/routes/snapshot [post]
func ExportSnapshot(snapshots service.SnapshotService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := snapshots.Export(c.UserContext())
		if err != nil {
			if errors.Is(err, service.ErrSnapshotsDisabled) {
				return writeError(c, fiber.StatusServiceUnavailable, "SNAPSHOTS_DISABLED", "snapshot storage is not configured")
			}
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

// ListLogs godoc
// @Summary List requests answered by dynamic routes
// @Produce json
// @Success 200 {array} model.RequestLog
// @Router /api/logs [get]
func ListLogs(logs service.RequestLogService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := logs.List(c.UserContext())
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		return c.JSON(res)
	}
}

// DynamicRoute answers requests whose method and path match a registered route
// and records them in the request log. Anything else is a 404.
func DynamicRoute(routes service.RouteService, logs service.RequestLogService, log logrus.FieldLogger) fiber.Handler {
	log = logging.Component(log, "dynamic_route")

	return func(c *fiber.Ctx) error {
		// Fiber reuses request buffers; the log outlives this request.
		method, path := utils.CopyString(c.Method()), utils.CopyString(c.Path())

		_, ok, err := routes.Match(c.UserContext(), method, path)
		if err != nil {
			return writeError(c, fiber.StatusInternalServerError, "INTERNAL_ERROR", "internal server error")
		}
		if !ok {
			return fiber.ErrNotFound
		}

		if err := logs.Record(c.UserContext(), method, path, fiber.StatusOK); err != nil {
			log.WithFields(logrus.Fields{
				"event":  "request_log_failed",
				"method": method,
				"path":   path,
			}).WithError(err).Warn("unable to record request")
		}

		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"message": "Dynamic route matched",
			"path":    path,
			"method":  method,
		})
	}
}
