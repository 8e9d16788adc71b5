package response

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/durianpy/events-backend/pkg/apperr"
)

// Body is the standard API response envelope. Message carries the
// human-readable error text, or an informational note on success
// (e.g. "no update").
type Body struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
}

// OK sends a 200 JSON response with data.
func OK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data})
}

// OKWithMessage sends a 200 JSON response with data and an informational message.
func OKWithMessage(c *gin.Context, data interface{}, message string) {
	c.JSON(http.StatusOK, Body{Success: true, Data: data, Message: message})
}

// Created sends a 201 JSON response with data.
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Body{Success: true, Data: data})
}

// BadRequest sends 400 with error message.
func BadRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Body{Success: false, Message: message})
}

// NotFound sends 404.
func NotFound(c *gin.Context, message string) {
	c.JSON(http.StatusNotFound, Body{Success: false, Message: message})
}

// Internal sends 500.
func Internal(c *gin.Context, message string) {
	c.JSON(http.StatusInternalServerError, Body{Success: false, Message: message})
}

// AppError sends the status code and message carried by an apperr.Error.
func AppError(c *gin.Context, err *apperr.Error) {
	c.JSON(err.Code, Body{Success: false, Message: err.Message})
}
