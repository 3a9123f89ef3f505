package controllers

import (
	"github.com/gin-gonic/gin"
	"github.com/pedaler/pedalerbackend/apperror"
	"github.com/pedaler/pedalerbackend/dto"
	"github.com/pedaler/pedalerbackend/middleware"
	"github.com/pedaler/pedalerbackend/models"
	"go.uber.org/zap"
)

// respondError maps err onto an HTTP status and a structured body.
func respondError(c *gin.Context, err error) {
	kind := apperror.KindOf(err)
	status := apperror.HTTPStatus(kind)
	if status >= 500 {
		middleware.Logger(c).Error("request_failed", zap.String("kind", string(kind)), zap.Error(err))
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.ErrorResponse{Error: apperror.Message(err), Kind: string(kind)})
}

func bindDocument(c *gin.Context, op string) (models.Document, bool) {
	var body models.Document
	if err := c.ShouldBindJSON(&body); err != nil {
		respondError(c, apperror.Invalidf(op, "invalid JSON body: %v", err))
		return nil, false
	}
	if body == nil {
		body = models.Document{}
	}
	return body, true
}
