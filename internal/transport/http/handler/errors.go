package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	errInternalServer     = "Internal server error"
	errTaskNotFound       = "Task not found"
	errUserNotFound       = "User not found"
	errEmailTaken         = "Email already registered"
	errInvalidCredentials = "Invalid credentials"
	errMissingFields      = "Email and password are required"
)

// bindError distinguishes a malformed payload (422) from input that
// parsed but failed validation (400).
func bindError(c *gin.Context, err error) {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &syntaxErr) || errors.As(err, &typeErr) ||
		errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
