package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"shophub/internal/service/catalog"
)

func listProductsHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		filter := catalog.FilterState{
			Category:      c.Query("category"),
			Search:        c.Query("search"),
			MinPriceCents: priceCentsQuery(c, "min_price"),
			MaxPriceCents: priceCentsQuery(c, "max_price"),
		}
		products, err := svc.List(c.Request.Context(), filter, c.Query("sort"))
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"results": products, "total": len(products)})
	}
}

// priceCentsQuery reads a decimal currency amount query param as cents.
// Malformed or absent values collapse to zero.
func priceCentsQuery(c *gin.Context, name string) int64 {
	raw := c.Query(name)
	if raw == "" {
		return 0
	}
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return 0
	}
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}

func listCategoriesHandler(svc *catalog.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		categories, err := svc.Categories(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "catalog unavailable"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"categories": categories})
	}
}
