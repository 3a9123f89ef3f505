package controllers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/dto"
)

type PaymentGateway interface {
	CreateIntent(ctx context.Context, price float64) (string, error)
}

// POST /create-payment-intent
func CreatePaymentIntent(gateway PaymentGateway) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.PaymentIntentDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, apperror.Invalidf("payments.CreateIntent", "price is required"))
			return
		}
		secret, err := gateway.CreateIntent(c.Request.Context(), *body.Price)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.PaymentIntentResponse{ClientSecret: secret})
	}
}
