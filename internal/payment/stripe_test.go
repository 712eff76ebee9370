package payment

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckoutSessionParams(t *testing.T) {
	params := &CheckoutParams{
		TourID:        "5c88fa8cf4afda39709c2951",
		TourName:      "The Sea Explorer Tour",
		TourSummary:   "Exploring the jaw-dropping US east coast by foot and by boat",
		ImageURL:      "http://localhost:8080/img/tours/tour-2-cover.jpg",
		Amount:        49700,
		Currency:      "usd",
		CustomerEmail: "jane@example.com",
		SuccessURL:    "http://localhost:8080/my-tours/",
		CancelURL:     "http://localhost:8080/tour/the-sea-explorer",
	}

	sp := checkoutSessionParams(params)

	require.Len(t, sp.LineItems, 1)
	product := sp.LineItems[0].PriceData.ProductData

	// The service already builds the display name; it must not be decorated
	// again here.
	assert.Equal(t, "The Sea Explorer Tour", *product.Name)
	assert.Equal(t, params.TourSummary, *product.Description)

	assert.Equal(t, int64(49700), *sp.LineItems[0].PriceData.UnitAmount)
	assert.Equal(t, "usd", *sp.LineItems[0].PriceData.Currency)
	assert.Equal(t, params.TourID, *sp.ClientReferenceID)
	assert.Equal(t, params.CustomerEmail, *sp.CustomerEmail)
	assert.Equal(t, params.SuccessURL, *sp.SuccessURL)
	assert.Equal(t, params.CancelURL, *sp.CancelURL)
}
