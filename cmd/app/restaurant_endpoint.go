package main

import (
	"net/http"
	"strconv"

	"ManageMyLunchAPI/internal/middleware"
	"ManageMyLunchAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type restaurantRequest struct {
	Name       string `json:"name" validate:"required"`
	DailyLimit int    `json:"daily_limit" validate:"required,gt=0"`
	AuthID     *int64 `json:"auth_id"`
}

func registerRestaurantRoutes(g *echo.Group, rs *services.RestaurantService) {
	p := g.Group("/restaurants")

	// public listing; clients hide restaurants with is_busy set
	p.GET("", func(c echo.Context) error {
		list, err := rs.List(c.Request().Context())
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, list)
	})

	p.GET("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid restaurant id"})
		}
		rst, err := rs.GetByID(c.Request().Context(), id)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, rst)
	})

	// manager-only administration
	admin := p.Group("", middleware.JWTMiddleware(), middleware.ManagerOnly)

	admin.POST("", func(c echo.Context) error {
		req := new(restaurantRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return err
		}
		id, err := rs.Create(c.Request().Context(), req.Name, req.DailyLimit, req.AuthID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"restaurant_id": id})
	})

	admin.PUT("/:id", func(c echo.Context) error {
		id, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || id <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid restaurant id"})
		}
		req := new(restaurantRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return err
		}
		if err := rs.Update(c.Request().Context(), id, req.Name, req.DailyLimit); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})
}
