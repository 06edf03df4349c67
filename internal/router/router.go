// Package router maps the HTTP surface onto the handlers. Routes are
// grouped by resource; the public read endpoints additionally run the
// Redis response cache.
package router

import (
	"github.com/labstack/echo/v4"

	"github.com/eventease/eventease/internal/handler"
)

// Handlers bundles every handler the router needs.
type Handlers struct {
	Venues   *handler.VenueHandler
	Events   *handler.EventHandler
	Bookings *handler.BookingHandler
	Images   *handler.ImageHandler
}

// RegisterRoutes registers the full API on the provided Echo instance.
// cache is the response-cache middleware applied to the public catalog
// reads; pass the pass-through variant to disable caching.
func RegisterRoutes(e *echo.Echo, h Handlers, cache echo.MiddlewareFunc) {
	// Health check for load balancers and monitoring.
	e.GET("/healthz", handler.Health)

	v1 := e.Group("/v1")

	// Catalog reads are cached; everything returned here is public data
	// that changes rarely compared to how often it is browsed.
	browse := v1.Group("", cache)
	browse.GET("/venues", h.Venues.List)
	browse.GET("/venues/:id", h.Venues.Get)
	browse.GET("/events", h.Events.List)
	browse.GET("/events/:id", h.Events.Get)
	browse.GET("/event-types", h.Events.ListTypes)

	// Venue management.
	v1.POST("/venues", h.Venues.Create)
	v1.PUT("/venues/:id", h.Venues.Update)
	v1.DELETE("/venues/:id", h.Venues.Delete)

	// Event management.
	v1.POST("/events", h.Events.Create)
	v1.PUT("/events/:id", h.Events.Update)
	v1.DELETE("/events/:id", h.Events.Delete)

	// Bookings are per-customer, so reads stay uncached.
	v1.GET("/bookings", h.Bookings.List)
	v1.GET("/bookings/:id", h.Bookings.Get)
	v1.POST("/bookings", h.Bookings.Create)
	v1.DELETE("/bookings/:id", h.Bookings.Delete)

	// Image access by object key.
	v1.GET("/images/:key", h.Images.Download)
	v1.GET("/images/:key/url", h.Images.SignedURL)
}
