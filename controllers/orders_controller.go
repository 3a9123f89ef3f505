package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/dto"
	"github.com/pedaler/pedalerbackend/repository"
)

func PlaceOrder(orders *repository.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindDocument(c, "orders.Create")
		if !ok {
			return
		}
		res, err := orders.Create(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

func GetOrders(orders *repository.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := orders.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// GET /userorders?email=X
func GetUserOrders(orders *repository.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q dto.EmailQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondError(c, apperror.Invalidf("orders.ListByUser", "a valid email query parameter is required"))
			return
		}
		docs, err := orders.ListByUser(c.Request.Context(), q.Email)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

func GetOrder(orders *repository.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := orders.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// PATCH /orders/:id marks the order paid with the given transaction id.
func MarkOrderPaid(orders *repository.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body dto.MarkPaidDTO
		if err := c.ShouldBindJSON(&body); err != nil {
			respondError(c, apperror.Invalidf("orders.MarkPaid", "transactionId is required"))
			return
		}
		res, err := orders.MarkPaid(c.Request.Context(), c.Param("id"), body.TransactionID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func DeleteOrder(orders *repository.Orders) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := orders.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
