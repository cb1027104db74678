package httpapi

import (
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/Likhithpsdas17/weather-forecast/internal/dashboard"
)

var validate = validator.New()

// RegisterRoutes wires the dashboard handlers into the Fiber app. These
// routes are the event wiring of the page: search, geolocation, unit toggle,
// and the history selector all land here.
func RegisterRoutes(app *fiber.App, service *dashboard.Service) {
	v1 := app.Group("/api/v1")

	// Current page state, rendered from the stored snapshot.
	v1.Get("/dashboard", func(c *fiber.Ctx) error {
		return c.JSON(service.Dashboard())
	})

	// History list for the recent-searches selector.
	v1.Get("/history", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"cities": service.Dashboard().History,
		})
	})

	// Search by city name. Blank input is rejected before any resolution.
	v1.Post("/search", func(c *fiber.Ctx) error {
		var req searchRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		req.City = strings.TrimSpace(req.City)
		if req.City == "" {
			return fiber.NewError(fiber.StatusBadRequest, "please enter a city name to search")
		}

		return c.JSON(service.SearchCity(c.UserContext(), req.City))
	})

	// Geolocation result from the browser: either a coordinate pair or a
	// permission/support failure to surface.
	v1.Post("/locate", func(c *fiber.Ctx) error {
		var req locateRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		if req.Error != "" {
			return c.JSON(service.LocateDenied())
		}

		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}

		return c.JSON(service.Locate(c.UserContext(), *req.Lat, *req.Lon))
	})

	// Unit glyph click: flip °C/°F and re-render, no refetch.
	v1.Post("/units/toggle", func(c *fiber.Ctx) error {
		return c.JSON(service.ToggleUnit())
	})
}

type searchRequest struct {
	City string `json:"city"`
}

// locateRequest carries either coordinates or the geolocation failure the
// browser reported. Pointers so 0 is a valid coordinate.
type locateRequest struct {
	Lat   *float64 `json:"lat" validate:"required"`
	Lon   *float64 `json:"lon" validate:"required"`
	Error string   `json:"error" validate:"-"`
}
