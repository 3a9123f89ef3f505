// Package routes wires the controllers, middleware and store into a gin
// engine.
package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/controllers"
	"github.com/pedaler/pedalerbackend/database"
	"github.com/pedaler/pedalerbackend/middleware"
	"github.com/pedaler/pedalerbackend/repository"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

const greeting = "Hello from pedaler"

type Dependencies struct {
	Store    *database.Store
	Payments controllers.PaymentGateway
	Logger   *zap.Logger
	Registry *prometheus.Registry

	AllowedOrigins []string
	JWTSecret      string
	RequestTimeout time.Duration
}

func New(deps Dependencies) *gin.Engine {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	registry := deps.Registry
	if registry == nil {
		registry = prometheus.NewRegistry()
	}
	metrics := middleware.NewMetrics(registry)

	r := gin.New()
	r.Use(corsMiddleware(deps.AllowedOrigins))
	r.Use(middleware.RequestLogger(logger))
	r.Use(metrics.Handler())
	r.Use(gin.Recovery())
	r.Use(middleware.Timeout(deps.RequestTimeout))

	products := repository.NewProducts(deps.Store.Products)
	orders := repository.NewOrders(deps.Store.Orders)
	reviews := repository.NewReviews(deps.Store.Reviews)
	users := repository.NewUsers(deps.Store.Users)

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, greeting)
	})
	r.GET("/healthz", func(c *gin.Context) {
		if err := deps.Store.Ping(c.Request.Context()); err != nil {
			middleware.Logger(c).Warn("health_check_failed", zap.Error(err))
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "kind": apperror.KindStoreUnavailable})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	r.POST("/create-payment-intent", controllers.CreatePaymentIntent(deps.Payments))

	r.PUT("/user/:email", controllers.UpsertUser(users))
	r.GET("/user/:email", controllers.GetUser(users))
	r.PATCH("/user/:email", controllers.UpdateUser(users))
	r.GET("/users", controllers.GetUsers(users))

	r.GET("/products", controllers.GetProducts(products))
	r.GET("/products/:id", controllers.GetProduct(products))
	r.GET("/category", controllers.GetProductsByCategory(products))

	admin := r.Group("/products")
	admin.Use(middleware.RequireAdmin(deps.JWTSecret))
	{
		admin.POST("", controllers.AddProduct(products))
		admin.PATCH("/:id", controllers.UpdateProduct(products))
		admin.DELETE("/:id", controllers.DeleteProduct(products))
	}

	r.POST("/orders", controllers.PlaceOrder(orders))
	r.GET("/orders", controllers.GetOrders(orders))
	r.GET("/orders/:id", controllers.GetOrder(orders))
	r.PATCH("/orders/:id", controllers.MarkOrderPaid(orders))
	r.DELETE("/orders/:id", controllers.DeleteOrder(orders))
	r.GET("/userorders", controllers.GetUserOrders(orders))

	r.POST("/reviews", controllers.AddReview(reviews))
	r.GET("/reviews", controllers.GetReviews(reviews))

	return r
}

// corsMiddleware allows every origin when none are configured, matching a
// bare cors() setup.
func corsMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:  []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", "Authorization", middleware.HeaderRequestID},
		ExposeHeaders: []string{"Content-Length", middleware.HeaderRequestID},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
		cfg.AllowCredentials = true
	}
	return cors.New(cfg)
}
