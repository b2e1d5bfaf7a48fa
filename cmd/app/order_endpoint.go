package main

import (
	"net/http"
	"strconv"

	"ManageMyLunchAPI/internal/middleware"
	"ManageMyLunchAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type collectRequest struct {
	Pin string `json:"pin" validate:"required,len=4"`
}

func registerOrderRoutes(g *echo.Group, os *services.OrderService, rs *services.RestaurantService) {

	// student order history
	p := g.Group("/orders")
	p.Use(middleware.JWTMiddleware())

	p.GET("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		orders, err := os.History(c.Request().Context(), cl.UserID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, orders)
	})

	// restaurant-facing queue and lifecycle transitions
	r := g.Group("/restaurant/orders")
	r.Use(middleware.JWTMiddleware())
	r.Use(middleware.RestaurantOnly)

	r.GET("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		rst, err := rs.GetByAuthID(c.Request().Context(), cl.UserID)
		if err != nil {
			return c.JSON(http.StatusNotFound, map[string]string{"error": err.Error()})
		}
		orders, err := os.Queue(c.Request().Context(), rst.RestaurantID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, orders)
	})

	r.POST("/:orderId/accept", func(c echo.Context) error {
		orderID, err := parseOrderID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		pin, err := os.Accept(c.Request().Context(), orderID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"pickup_pin": pin})
	})

	r.POST("/:orderId/ready", func(c echo.Context) error {
		orderID, err := parseOrderID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		if err := os.MarkReady(c.Request().Context(), orderID); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "ready"})
	})

	r.POST("/:orderId/collect", func(c echo.Context) error {
		orderID, err := parseOrderID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		req := new(collectRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return err
		}
		if err := os.Collect(c.Request().Context(), orderID, req.Pin); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "collected"})
	})

	r.POST("/:orderId/cancel", func(c echo.Context) error {
		orderID, err := parseOrderID(c)
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid order id"})
		}
		if err := os.Cancel(c.Request().Context(), orderID); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "cancelled"})
	})
}

func parseOrderID(c echo.Context) (int64, error) {
	return strconv.ParseInt(c.Param("orderId"), 10, 64)
}
