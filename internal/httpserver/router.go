package httpserver

import (
	"log"
	"net/http"
	"strings"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"shophub/internal/payment"
	cartstore "shophub/internal/service/cart"
	"shophub/internal/service/catalog"
	"shophub/internal/service/checkout"
)

// Deps carries the services the router wires into handlers.
type Deps struct {
	Catalog     *catalog.Service
	Carts       *cartstore.Store
	Checkout    *checkout.Service
	Provider    payment.Provider
	BearerToken string
}

// buildRouter wires routes for the storefront API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowAllOrigins: true,
		AllowMethods:    []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodPatch, http.MethodDelete, http.MethodOptions},
		AllowHeaders:    []string{"Authorization", "X-Client-Info", "Apikey", "Content-Type"},
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	v1 := router.Group("/v1")
	v1.GET("/products", listProductsHandler(deps.Catalog))
	v1.GET("/categories", listCategoriesHandler(deps.Catalog))

	v1.POST("/sessions", createSessionHandler(deps.Carts))
	sess := v1.Group("/sessions/:sessionId")
	sess.GET("/cart", getCartHandler(deps.Carts))
	sess.POST("/cart/items", addCartItemHandler(deps.Carts, deps.Catalog))
	sess.PATCH("/cart/items/:productId", updateCartItemHandler(deps.Carts))
	sess.DELETE("/cart/items/:productId", removeCartItemHandler(deps.Carts))

	sess.POST("/checkout", beginCheckoutHandler(deps.Checkout))
	sess.GET("/checkout", getCheckoutHandler(deps.Checkout))
	sess.DELETE("/checkout", abandonCheckoutHandler(deps.Checkout))
	sess.PUT("/checkout/shipping", submitShippingHandler(deps.Checkout))
	sess.POST("/checkout/pay", payHandler(deps.Checkout))

	v1.POST("/create-payment-intent", bearerAuth(deps.BearerToken), createPaymentIntentHandler(deps.Provider, logger))

	return router
}

// bearerAuth guards a route with the static API bearer credential.
func bearerAuth(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		got := strings.TrimPrefix(c.GetHeader("Authorization"), "Bearer ")
		if token == "" || got == "" || got == c.GetHeader("Authorization") || got != token {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid bearer credential"})
			return
		}
		c.Next()
	}
}
