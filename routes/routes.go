package routes

import (
	"time"

	"happyhotel/handlers"
	"happyhotel/middleware"
	"happyhotel/utils"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// NewRouter builds the gin engine with middleware and every route.
// rateStore, when set, shares rate limit counters across instances.
func NewRouter(h *handlers.BookingHandler, requestsPerMin int, rateStore *redis.Client) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(middleware.RequestLogger(h.Logger))
	router.Use(cors.New(cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}))
	router.Use(middleware.RateLimitMiddleware(requestsPerMin, rateStore))

	router.GET("/health", handlers.Health)
	RegisterBookingRoutes(router, h)
	return router
}
