package controllers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/dto"
	"github.com/pedaler/pedalerbackend/models"
	"github.com/pedaler/pedalerbackend/repository"
)

// GET /products, optionally filtered with ?category=
func GetProducts(products *repository.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		var (
			docs []models.Document
			err  error
		)
		if category := strings.TrimSpace(c.Query("category")); category != "" {
			docs, err = products.ListByCategory(ctx, category)
		} else {
			docs, err = products.List(ctx)
		}
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

// GET /category?category=X
func GetProductsByCategory(products *repository.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		var q dto.CategoryQuery
		if err := c.ShouldBindQuery(&q); err != nil {
			respondError(c, apperror.Invalidf("products.ListByCategory", "category query parameter is required"))
			return
		}
		docs, err := products.ListByCategory(c.Request.Context(), q.Category)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}

func GetProduct(products *repository.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		doc, err := products.Get(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

func AddProduct(products *repository.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindDocument(c, "products.Create")
		if !ok {
			return
		}
		res, err := products.Create(c.Request.Context(), body)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, res)
	}
}

func UpdateProduct(products *repository.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		body, ok := bindDocument(c, "products.Update")
		if !ok {
			return
		}
		res, err := products.Update(c.Request.Context(), c.Param("id"), body)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func DeleteProduct(products *repository.Products) gin.HandlerFunc {
	return func(c *gin.Context) {
		res, err := products.Delete(c.Request.Context(), c.Param("id"))
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}
