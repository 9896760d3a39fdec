package http

import (
	"net/http"

	"watchstore/internal/apperrors"

	"github.com/gin-gonic/gin"
)

// ApiResponse is the uniform JSON envelope for every endpoint.
type ApiResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func ok(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, ApiResponse{Success: true, Message: message, Data: data})
}

func created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, ApiResponse{Success: true, Message: message, Data: data})
}

func badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, ApiResponse{Success: false, Message: message})
}

func respondError(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case apperrors.IsNotFound(err):
		status = http.StatusNotFound
	case apperrors.IsBusiness(err):
		status = http.StatusBadRequest
	case apperrors.IsConflict(err):
		status = http.StatusConflict
	}
	c.JSON(status, ApiResponse{Success: false, Message: err.Error()})
}
