package domain

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	PriceCents  int64     `json:"priceCents"`
	Category    string    `json:"category"`
	Image       string    `json:"image,omitempty"`
	Rating      float64   `json:"rating"`
	CreatedAt   time.Time `json:"createdAt"`
}
