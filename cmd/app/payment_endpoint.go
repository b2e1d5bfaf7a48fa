package main

import (
	"io"
	"net/http"

	"ManageMyLunchAPI/internal/middleware"
	"ManageMyLunchAPI/internal/services"

	"github.com/labstack/echo/v4"
)

func registerPaymentRoutes(g *echo.Group, ps *services.PaymentService) {
	p := g.Group("/payments")

	// ============================
	// STRIPE WEBHOOK
	// (NO JWT, must be public)
	// ============================
	p.POST("/stripe/webhook", func(c echo.Context) error {
		payload, err := io.ReadAll(c.Request().Body)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
		}
		sig := c.Request().Header.Get("Stripe-Signature")

		if err := ps.HandleStripeWebhook(c.Request().Context(), payload, sig); err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
	})

	// ============================
	// PAYMENT INITIATION
	// (JWT protected)
	// ============================
	p.Use(middleware.JWTMiddleware())

	p.POST("/intent", func(c echo.Context) error {
		cl := middleware.GetClaims(c)
		intentID, clientSecret, err := ps.CreateIntent(c.Request().Context(), cl.UserID)
		if err != nil {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
		}
		return c.JSON(http.StatusOK, echo.Map{
			"payment_intent_id": intentID,
			"client_secret":     clientSecret,
		})
	})
}
