package http

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

// Request limits
const (
	MaxRequestSize = 64 * 1024 // 64KB - selection and batch bodies are small
	MaxNameLength  = 255
	MaxPathLength  = 4096
)

var errBodyTooLarge = errors.New("request body too large")

// validateName checks that name is a single path segment
func validateName(name string) error {
	if name == "" {
		return errors.New("entry is required")
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("entry name exceeds %d bytes", MaxNameLength)
	}
	if name == "." || name == ".." || strings.ContainsAny(name, "/\\\x00") {
		return fmt.Errorf("invalid entry name: %q", name)
	}
	return nil
}

// validatePath checks a client supplied path
func validatePath(path, field string) error {
	if len(path) > MaxPathLength {
		return fmt.Errorf("%s exceeds %d bytes", field, MaxPathLength)
	}
	if strings.ContainsRune(path, '\x00') {
		return fmt.Errorf("%s contains a NUL byte", field)
	}
	return nil
}

// bindJSON decodes an optional JSON body into v, capping its size
func bindJSON(c *gin.Context, v interface{}) error {
	if c.Request.ContentLength > MaxRequestSize {
		return errBodyTooLarge
	}
	if c.Request.Body == nil || c.Request.ContentLength == 0 {
		return nil
	}
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, MaxRequestSize)
	if err := c.ShouldBindJSON(v); err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return errBodyTooLarge
		}
		return fmt.Errorf("invalid request body: %w", err)
	}
	return nil
}

func badRequest(c *gin.Context, err error) {
	status := http.StatusBadRequest
	if errors.Is(err, errBodyTooLarge) {
		status = http.StatusRequestEntityTooLarge
	}
	c.JSON(status, gin.H{"error": err.Error()})
}
