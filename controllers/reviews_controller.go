package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedaler/pedalerbackend/repository"
)

func AddReview(reviews *repository.Reviews) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindDocument(c, "reviews.Create")
		if !ok {
			return
		}
		res, err := reviews.Create(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

func GetReviews(reviews *repository.Reviews) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := reviews.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}
