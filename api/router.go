package api

import (
	_ "embed"
	"io"
	"net/http"
	"time"

	"github.com/Domenick1991/flightdesk/internal/service/booking"
	"github.com/Domenick1991/flightdesk/internal/service/flights"
	"github.com/Domenick1991/flightdesk/internal/service/users"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	httpSwagger "github.com/swaggo/http-swagger"
)

//go:embed openapi.json
var openAPIDoc []byte

type RouterDeps struct {
	Flights  flights.FlightUseCase
	Bookings booking.BookingUseCase
	Users    users.UserUseCase
	Tokens   TokenParser

	// Idempotency may be nil; POST /api/bookings then ignores Idempotency-Key.
	Idempotency    IdempotencyStore
	IdempotencyTTL time.Duration

	AllowedOrigins []string
	Log            logrus.FieldLogger
}

func NewRouter(deps RouterDeps) *gin.Engine {
	log := deps.Log
	if log == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		log = discard
	}

	router := gin.New()
	router.Use(
		gin.Recovery(),
		RequestID(),
		RequestLogger(log),
		Metrics(),
		cors.New(corsConfig(deps.AllowedOrigins)),
	)

	router.GET("/metrics", gin.WrapH(promhttp.Handler()))
	router.GET("/openapi.json", func(c *gin.Context) {
		c.Data(http.StatusOK, "application/json; charset=utf-8", openAPIDoc)
	})
	router.GET("/swagger/*any", gin.WrapH(httpSwagger.Handler(httpSwagger.URL("/openapi.json"))))

	apiGroup := router.Group("/api")
	apiGroup.GET("/health", health)

	NewFlightHandler(deps.Flights).Register(apiGroup.Group("/flights"))

	userHandler := NewUserHandler(deps.Users)
	userHandler.RegisterAuth(apiGroup.Group("/auth"))

	protected := apiGroup.Group("", RequireAuth(deps.Tokens))
	userHandler.RegisterProfile(protected.Group("/users"))
	NewBookingHandler(deps.Bookings, deps.Flights).Register(
		protected.Group("/bookings"),
		Idempotency(deps.Idempotency, deps.IdempotencyTTL),
	)

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", "Idempotency-Key", "X-Request-ID"},
		ExposeHeaders: []string{"X-Request-ID", "X-Idempotency-Hit"},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cfg
}

func health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "OK",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}
