package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shophub/internal/domain"
	cartstore "shophub/internal/service/cart"
	"shophub/internal/service/catalog"
	"shophub/internal/service/order"
)

type cartResponse struct {
	SessionID string            `json:"sessionId"`
	LineItems []domain.CartLine `json:"lineItems"`
	Totals    order.Totals      `json:"totals"`
}

func toCartResponse(cart domain.Cart) cartResponse {
	return cartResponse{
		SessionID: cart.SessionID,
		LineItems: cart.Lines,
		Totals:    order.Calculate(cart.Lines),
	}
}

func createSessionHandler(carts *cartstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := carts.NewSession()
		c.JSON(http.StatusCreated, gin.H{"sessionId": id})
	}
}

func getCartHandler(carts *cartstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		cart := carts.Get(c.Param("sessionId"))
		c.JSON(http.StatusOK, toCartResponse(cart))
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" binding:"required"`
}

func addCartItemHandler(carts *cartstore.Store, cat *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req addItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "productId required"})
			return
		}
		product, err := cat.Get(c.Request.Context(), req.ProductID)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.JSON(http.StatusNotFound, gin.H{"error": "product not found"})
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
			return
		}
		sessionID := c.Param("sessionId")
		carts.Add(sessionID, *product)
		c.JSON(http.StatusOK, toCartResponse(carts.Get(sessionID)))
	}
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

func updateCartItemHandler(carts *cartstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req updateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "quantity required"})
			return
		}
		// negative quantities clamp to zero, which removes the line
		if req.Quantity < 0 {
			req.Quantity = 0
		}
		sessionID := c.Param("sessionId")
		carts.UpdateQuantity(sessionID, c.Param("productId"), req.Quantity)
		c.JSON(http.StatusOK, toCartResponse(carts.Get(sessionID)))
	}
}

func removeCartItemHandler(carts *cartstore.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID := c.Param("sessionId")
		carts.Remove(sessionID, c.Param("productId"))
		c.JSON(http.StatusOK, toCartResponse(carts.Get(sessionID)))
	}
}
