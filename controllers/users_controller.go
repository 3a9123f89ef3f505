package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/dto"
	"github.com/pedaler/pedalerbackend/repository"
)

func bindEmail(c *gin.Context, op string) (string, bool) {
	var uri dto.EmailURI
	if err := c.ShouldBindUri(&uri); err != nil {
		respondError(c, apperror.Invalidf(op, "invalid email %q", c.Param("email")))
		return "", false
	}
	return uri.Email, true
}

// PUT /user/:email
func UpsertUser(users *repository.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := bindEmail(c, "users.Upsert")
		if !ok {
			return
		}
		body, ok := bindDocument(c, "users.Upsert")
		if !ok {
			return
		}
		res, err := users.Upsert(c.Request.Context(), email, body)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

// GET /user/:email
func GetUser(users *repository.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := bindEmail(c, "users.Get")
		if !ok {
			return
		}
		doc, err := users.Get(c.Request.Context(), email)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, doc)
	}
}

// PATCH /user/:email
func UpdateUser(users *repository.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		email, ok := bindEmail(c, "users.Update")
		if !ok {
			return
		}
		body, ok := bindDocument(c, "users.Update")
		if !ok {
			return
		}
		res, err := users.Update(c.Request.Context(), email, body)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, res)
	}
}

func GetUsers(users *repository.Users) gin.HandlerFunc {
	return func(c *gin.Context) {
		docs, err := users.ListAll(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, docs)
	}
}
