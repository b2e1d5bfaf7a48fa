package main

import (
	"net/http"

	"ManageMyLunchAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPickupRoutes(g *echo.Group, ps *services.PickupWindowService) {
	g.GET("/pickup-windows", func(c echo.Context) error {
		windows, err := ps.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, windows)
	})
}
