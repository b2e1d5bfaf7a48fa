package main

import (
	"net/http"
	"os"

	mystripe "ManageMyLunchAPI/external/stripe"
	"ManageMyLunchAPI/internal/db"
	"ManageMyLunchAPI/internal/repository"
	"ManageMyLunchAPI/internal/services"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i interface{}) error {
	if err := v.validate.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func main() {
	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()

	if err := godotenv.Load(); err != nil {
		logger.Info().Msg("no .env file, using process environment")
	}

	// ======================
	// INFRA
	// ======================
	pool, err := db.Connect()
	if err != nil {
		logger.Fatal().Err(err).Msg("database connection failed")
	}
	defer pool.Close()

	var rdb *redis.Client
	if addr := os.Getenv("REDIS_ADDR"); addr != "" {
		rdb = redis.NewClient(&redis.Options{Addr: addr})
	}

	// ======================
	// EXTERNALS
	// ======================
	mystripe.Init()

	// ======================
	// REPOSITORIES
	// ======================
	authRepo := repository.NewAuthRepository(pool)
	cartRepo := repository.NewCartRepository(pool)
	orderRepo := repository.NewOrderRepository(pool)
	menuRepo := repository.NewMenuRepository(pool)
	restaurantRepo := repository.NewRestaurantRepository(pool)
	pickupRepo := repository.NewPickupWindowRepository(pool)

	// ======================
	// SERVICES
	// ======================
	authSvc := services.NewAuthService(authRepo)
	cartSvc := services.NewCartService(cartRepo, restaurantRepo, menuRepo)
	orderSvc := services.NewOrderService(orderRepo)
	menuSvc := services.NewMenuService(menuRepo, restaurantRepo, rdb)
	restaurantSvc := services.NewRestaurantService(restaurantRepo)
	pickupSvc := services.NewPickupWindowService(pickupRepo)
	paymentSvc := services.NewPaymentService(cartSvc, orderRepo)

	// ======================
	// SCHEDULED JOBS
	// ======================
	scheduler := cron.New()
	if err := restaurantSvc.ScheduleDailyReset(scheduler); err != nil {
		logger.Fatal().Err(err).Msg("could not schedule daily reset")
	}
	scheduler.Start()
	defer scheduler.Stop()

	// ======================
	// ECHO
	// ======================
	e := echo.New()
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Validator = &requestValidator{validate: validator.New()}

	api := e.Group("/manage-my-lunch")

	// ======================
	// ROUTES (ONLY REGISTRATION)
	// ======================
	registerAuthRoutes(api, authSvc)
	registerCartRoutes(api, cartSvc)
	registerOrderRoutes(api, orderSvc, restaurantSvc)
	registerMenuRoutes(api, menuSvc)
	registerRestaurantRoutes(api, restaurantSvc)
	registerPickupRoutes(api, pickupSvc)
	registerPaymentRoutes(api, paymentSvc)

	// ======================
	// SERVER
	// ======================
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
