package httpserver

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"shophub/internal/domain"
	"shophub/internal/service/checkout"
)

func beginCheckoutHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view := svc.Begin(c.Param("sessionId"))
		c.JSON(http.StatusOK, view)
	}
}

func getCheckoutHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Get(c.Param("sessionId"))
		if err != nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "checkout not started"})
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func abandonCheckoutHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		svc.Abandon(c.Param("sessionId"))
		c.Status(http.StatusNoContent)
	}
}

func submitShippingHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		var addr domain.ShippingAddress
		if err := c.ShouldBindJSON(&addr); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "malformed shipping address"})
			return
		}
		view, err := svc.SubmitShipping(c.Param("sessionId"), addr)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "checkout not started"})
			case errors.Is(err, checkout.ErrInvalidStep):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			}
			return
		}
		c.JSON(http.StatusOK, view)
	}
}

func payHandler(svc *checkout.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		view, err := svc.Pay(c.Request.Context(), c.Param("sessionId"))
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				c.JSON(http.StatusNotFound, gin.H{"error": "checkout not started"})
			case errors.Is(err, checkout.ErrPaymentInProgress):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			case errors.Is(err, checkout.ErrInvalidStep):
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}
		// provider failures surface in the view, not as transport errors
		if view.Error != "" {
			c.JSON(http.StatusPaymentRequired, view)
			return
		}
		c.JSON(http.StatusOK, view)
	}
}
