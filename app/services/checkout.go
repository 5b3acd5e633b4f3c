package services

import (
	"fmt"

	"github.com/shashiranjanraj/kalaghar/pkg/apperr"
)

// PlatformFee is the flat checkout fee in rupees.
const PlatformFee int64 = 49

// MaxPrice bounds prices and order amounts so a quote total always fits in
// an int64. Keep the max= tags on ArtworkInput and OrderInput in step.
const MaxPrice int64 = 1_000_000_000_000

// Quote is the checkout breakdown for one artwork.
type Quote struct {
	Price       int64 `json:"price"`
	GST         int64 `json:"gst"`
	PlatformFee int64 `json:"platformFee"`
	Total       int64 `json:"total"`
}

// QuoteFor applies 5% GST, rounded half away from zero, plus the platform
// fee. Price must be within [0, MaxPrice].
func QuoteFor(price int64) Quote {
	gst := price / 20
	if price%20 >= 10 {
		gst++
	}
	return Quote{
		Price:       price,
		GST:         gst,
		PlatformFee: PlatformFee,
		Total:       price + gst + PlatformFee,
	}
}

// QuotePrice validates a caller-supplied price before quoting it.
func QuotePrice(price int64) (Quote, error) {
	if price < 0 {
		return Quote{}, apperr.Invalid(map[string]string{"price": "The price must be at least 0."})
	}
	if price > MaxPrice {
		return Quote{}, apperr.Invalid(map[string]string{
			"price": fmt.Sprintf("The price must not be greater than %d.", MaxPrice),
		})
	}
	return QuoteFor(price), nil
}
