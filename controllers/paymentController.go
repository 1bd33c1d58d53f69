package controllers

import (
	"encoding/json"
	"fmt"
	"log"
	"math"
	"net/http"
	"os"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-resty/resty/v2"
)

const defaultStripeAPIURL = "https://api.stripe.com"

func stripeAPIURL() string {
	if url := os.Getenv("STRIPE_API_URL"); url != "" {
		return url
	}
	return defaultStripeAPIURL
}

func stripeSecretKey() (string, error) {
	key := os.Getenv("STRIPE_SECRET_KEY")
	if key == "" {
		return "", fmt.Errorf("stripe secret key is not set")
	}
	return key, nil
}

// CreatePaymentIntent stages a charge with the payment processor and
// hands the client secret back so the browser can confirm the card.
// The amount is whatever the client is about to pay; the order itself
// is priced server-side at creation time.
func CreatePaymentIntent(ctx *gin.Context) {
	userID, ok := currentUserID(ctx)
	if !ok {
		sendErrorResponse(ctx, http.StatusUnauthorized, "User not found in context")
		return
	}

	var body struct {
		Amount float64 `json:"amount" binding:"required,gt=0"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		sendErrorResponse(ctx, http.StatusBadRequest, msgInvalidInput)
		return
	}

	key, err := stripeSecretKey()
	if err != nil {
		log.Println("Payment configuration error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Missing payment configuration")
		return
	}

	// Processor amounts are integer cents.
	cents := int64(math.Round(body.Amount * 100))

	resp, err := resty.New().SetTimeout(30 * time.Second).R().
		SetHeader("Accept", "application/json").
		SetAuthToken(key).
		SetFormData(map[string]string{
			"amount":           fmt.Sprintf("%d", cents),
			"currency":         "usd",
			"metadata[userId]": fmt.Sprintf("%d", userID),
		}).
		Post(stripeAPIURL() + "/v1/payment_intents")
	if err != nil {
		log.Println("Payment intent request error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to reach payment processor")
		return
	}
	if resp.StatusCode() != http.StatusOK {
		log.Printf("Payment intent request failed with status %d: %s", resp.StatusCode(), resp.Body())
		sendErrorResponse(ctx, http.StatusBadGateway, "Payment processor rejected the request")
		return
	}

	var intent struct {
		ID           string `json:"id"`
		ClientSecret string `json:"client_secret"`
		Status       string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body(), &intent); err != nil || intent.ClientSecret == "" {
		sendErrorResponse(ctx, http.StatusBadGateway, "Invalid response from payment processor")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "", gin.H{
		"id":           intent.ID,
		"clientSecret": intent.ClientSecret,
	})
}

// GetPaymentIntent re-queries the processor for the current status of
// an intent. This is the reconciliation hook for intents that were
// created but never made it onto an order.
func GetPaymentIntent(ctx *gin.Context) {
	intentID := ctx.Param("id")
	if intentID == "" {
		sendErrorResponse(ctx, http.StatusBadRequest, "Missing payment intent ID")
		return
	}

	key, err := stripeSecretKey()
	if err != nil {
		log.Println("Payment configuration error:", err)
		sendErrorResponse(ctx, http.StatusInternalServerError, "Missing payment configuration")
		return
	}

	resp, err := resty.New().SetTimeout(30 * time.Second).R().
		SetHeader("Accept", "application/json").
		SetAuthToken(key).
		Get(stripeAPIURL() + "/v1/payment_intents/" + intentID)
	if err != nil {
		log.Println("Payment intent status error:", err)
		sendErrorResponse(ctx, http.StatusBadGateway, "Failed to reach payment processor")
		return
	}
	if resp.StatusCode() == http.StatusNotFound {
		sendErrorResponse(ctx, http.StatusNotFound, "Payment intent not found")
		return
	}
	if resp.StatusCode() != http.StatusOK {
		log.Printf("Payment intent status failed with status %d: %s", resp.StatusCode(), resp.Body())
		sendErrorResponse(ctx, http.StatusBadGateway, "Payment processor rejected the request")
		return
	}

	var intent struct {
		ID     string `json:"id"`
		Amount int64  `json:"amount"`
		Status string `json:"status"`
	}
	if err := json.Unmarshal(resp.Body(), &intent); err != nil {
		sendErrorResponse(ctx, http.StatusBadGateway, "Invalid response from payment processor")
		return
	}

	sendSuccessResponse(ctx, http.StatusOK, "", gin.H{
		"id":     intent.ID,
		"amount": intent.Amount,
		"status": intent.Status,
	})
}
