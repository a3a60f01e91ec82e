package transport

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
)

// ServerOptions tunes the HTTP surface around the catalog routes.
type ServerOptions struct {
	// StaticDir, when set, is served under /ui for the browser front end.
	StaticDir string
}

// NewServer builds the echo instance with middleware and every catalog route.
func NewServer(h *CatalogHandler, opts ServerOptions) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []slog.Attr{
				slog.String("method", v.Method),
				slog.String("uri", v.URI),
				slog.Int("status", v.Status),
				slog.Duration("latency", v.Latency),
				slog.String("requestId", v.RequestID),
			}
			if v.Error != nil {
				attrs = append(attrs, slog.Any("error", v.Error))
			}
			slog.LogAttrs(c.Request().Context(), slog.LevelDebug, "http request", attrs...)
			return nil
		},
	}))

	e.GET("/", serviceInfo)
	e.GET("/healthz", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("/api")
	api.GET("/authors", h.ListAuthors)
	api.GET("/authors/:id", h.GetAuthor)
	api.POST("/authors", h.CreateAuthor)
	api.PUT("/authors/:id", h.UpdateAuthor)
	api.DELETE("/authors/:id", h.DeleteAuthor)

	api.GET("/publishers", h.ListPublishers)
	api.GET("/publishers/:id", h.GetPublisher)
	api.POST("/publishers", h.CreatePublisher)
	api.PUT("/publishers/:id", h.UpdatePublisher)
	api.DELETE("/publishers/:id", h.DeletePublisher)

	if opts.StaticDir != "" {
		e.Static("/ui", opts.StaticDir)
	}
	return e
}

func serviceInfo(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"message": "bookstore API running",
		"endpoints": map[string]string{
			"authors":    "/api/authors",
			"publishers": "/api/publishers",
		},
	})
}
