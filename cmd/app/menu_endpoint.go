package main

import (
	"net/http"
	"strconv"

	"ManageMyLunchAPI/internal/middleware"
	"ManageMyLunchAPI/internal/model"
	"ManageMyLunchAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type menuItemRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	Price       float64 `json:"price" validate:"required,gt=0"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url"`
}

func registerMenuRoutes(g *echo.Group, ms *services.MenuService) {

	// public menu listing per restaurant
	g.GET("/restaurants/:id/menu", func(c echo.Context) error {
		restaurantID, err := strconv.ParseInt(c.Param("id"), 10, 64)
		if err != nil || restaurantID <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid restaurant id"})
		}
		items, err := ms.ListByRestaurant(c.Request().Context(), restaurantID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, items)
	})

	// restaurant-owner CRUD
	p := g.Group("/menu")
	p.Use(middleware.JWTMiddleware())
	p.Use(middleware.RestaurantOnly)

	p.POST("", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		req := new(menuItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return err
		}
		id, err := ms.CreateItem(c.Request().Context(), cl.UserID, &model.MenuItem{
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusCreated, echo.Map{"item_id": id})
	})

	p.PUT("/:itemid", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		itemID, err := strconv.ParseInt(c.Param("itemid"), 10, 64)
		if err != nil || itemID <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		}
		req := new(menuItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return err
		}
		err = ms.UpdateItem(c.Request().Context(), cl.UserID, &model.MenuItem{
			ItemID:      itemID,
			Name:        req.Name,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "updated"})
	})

	p.DELETE("/:itemid", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		itemID, err := strconv.ParseInt(c.Param("itemid"), 10, 64)
		if err != nil || itemID <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		}
		if err := ms.DeleteItem(c.Request().Context(), cl.UserID, itemID); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "deleted"})
	})
}
