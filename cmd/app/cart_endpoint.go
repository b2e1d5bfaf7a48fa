package main

import (
	"errors"
	"net/http"
	"strconv"

	"ManageMyLunchAPI/internal/middleware"
	"ManageMyLunchAPI/internal/services"

	"github.com/labstack/echo/v4"
)

type addItemRequest struct {
	ItemID int64 `json:"item_id" validate:"required,gt=0"`
	Qty    int   `json:"quantity" validate:"omitempty,gt=0"`
}

type commentRequest struct {
	Comment string `json:"comment" validate:"max=500"`
}

type checkoutRequest struct {
	PickupWindowID  int64  `json:"pickup_window_id" validate:"required,gt=0"`
	PaymentIntentID string `json:"payment_intent_id" validate:"required"`
	PointsRedeemed  int    `json:"points_redeemed" validate:"gte=0"`
}

func registerCartRoutes(g *echo.Group, cs *services.CartService) {
	p := g.Group("/cart")
	p.Use(middleware.JWTMiddleware())

	// GET cart
	p.GET("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		cart, err := cs.Cart(c.Request().Context(), claims.UserID)
		if err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, cart)
	})

	// ADD item
	p.POST("/items", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(addItemRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return err
		}
		if req.Qty == 0 {
			req.Qty = 1
		}
		if err := cs.AddItem(c.Request().Context(), claims.UserID, req.ItemID, req.Qty); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusCreated, map[string]string{"message": "added"})
	})

	// REMOVE item (quantity query param, default 1)
	p.DELETE("/items/:itemid", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		itemID, err := strconv.ParseInt(c.Param("itemid"), 10, 64)
		if err != nil || itemID <= 0 {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid item id"})
		}
		qty := 1
		if q := c.QueryParam("quantity"); q != "" {
			if qty, err = strconv.Atoi(q); err != nil || qty <= 0 {
				return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid quantity"})
			}
		}
		if err := cs.RemoveItem(c.Request().Context(), claims.UserID, itemID, qty); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "removed"})
	})

	// SET comment
	p.PUT("/comment", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(commentRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return err
		}
		if err := cs.SetComment(c.Request().Context(), claims.UserID, req.Comment); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "saved"})
	})

	// CLEAR cart
	p.DELETE("", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		if err := cs.RemoveAllItems(c.Request().Context(), claims.UserID); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "cleared"})
	})

	// CHECKOUT
	p.POST("/checkout", func(c echo.Context) error {
		claims := middleware.GetClaims(c)
		req := new(checkoutRequest)
		if err := c.Bind(req); err != nil {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request"})
		}
		if err := c.Validate(req); err != nil {
			return err
		}
		if err := cs.CompleteOrder(c.Request().Context(), claims.UserID, req.PickupWindowID, req.PaymentIntentID, req.PointsRedeemed); err != nil {
			return cartError(c, err)
		}
		return c.JSON(http.StatusOK, map[string]string{"message": "order placed"})
	})
}

func cartError(c echo.Context, err error) error {
	if errors.Is(err, services.ErrNotAuthenticated) {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
}
