package httpserver

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shophub/internal/domain"
	"shophub/internal/payment"
	"shophub/internal/service/order"
)

type paymentIntentItem struct {
	ID       string          `json:"id"`
	Name     string          `json:"name"`
	Price    decimal.Decimal `json:"price"`
	Category string          `json:"category"`
	Image    string          `json:"image"`
	Rating   float64         `json:"rating"`
	Quantity int64           `json:"quantity"`
}

type paymentIntentRequest struct {
	Items           []paymentIntentItem    `json:"items"`
	ShippingAddress domain.ShippingAddress `json:"shippingAddress"`
}

// createPaymentIntentHandler recomputes the order total from the items it
// receives and requests a payment intent for that amount. Client-supplied
// totals are never trusted.
func createPaymentIntentHandler(provider payment.Provider, logger *log.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req paymentIntentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		subtotal := decimal.Zero
		for _, item := range req.Items {
			subtotal = subtotal.Add(item.Price.Mul(decimal.NewFromInt(item.Quantity)))
		}
		totals := order.FromSubtotal(subtotal)

		meta := make(map[string]string, 2)
		if b, err := json.Marshal(req.ShippingAddress); err == nil {
			meta["shipping_address"] = string(b)
		}
		if b, err := json.Marshal(req.Items); err == nil {
			meta["items"] = string(b)
		}

		intent, err := provider.CreateIntent(c.Request.Context(), payment.IntentRequest{
			AmountMinor: totals.MinorUnits(),
			Currency:    "usd",
			Metadata:    meta,
		})
		if err != nil {
			logger.Printf("payment intent: amount=%d error=%v", totals.MinorUnits(), err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		logger.Printf("payment intent: created id=%s amount=%d", intent.ID, totals.MinorUnits())
		c.JSON(http.StatusOK, gin.H{"clientSecret": intent.ClientSecret})
	}
}
