package http

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/GriffinCanCode/filedesk/internal/domain/filemanager"
	"github.com/GriffinCanCode/filedesk/internal/providers/filesystem"
)

// TransferRequest is the body of copy and move requests
type TransferRequest struct {
	Destination string `json:"destination"`
}

// ListFiles loads a directory into the session and returns its entries
func (h *Handlers) ListFiles(c *gin.Context) {
	path := c.Query("path")
	if path == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "path parameter is required"})
		return
	}
	if err := validatePath(path, "path"); err != nil {
		badRequest(c, err)
		return
	}

	detectMime := false
	if raw := c.Query("mime"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "mime must be a boolean"})
			return
		}
		detectMime = parsed
	}

	ctx := c.Request.Context()
	if !h.fs.Exists(ctx, path) {
		c.JSON(http.StatusNotFound, gin.H{"error": fmt.Sprintf("path not found: %s", path)})
		return
	}
	if !h.fs.IsDirectory(ctx, path) {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("not a directory: %s", path)})
		return
	}

	names, err := h.host.Load(ctx, path)
	if err != nil {
		respondLoadError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"path":    path,
		"entries": h.describer.Describe(ctx, path, names, detectMime),
	})
}

// DeleteFiles deletes the selected entries
func (h *Handlers) DeleteFiles(c *gin.Context) {
	result, err := h.host.Delete(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	// An empty result means the selection was empty when the lock was taken
	if len(result.Processed)+len(result.Failures) == 0 {
		c.JSON(http.StatusOK, gin.H{
			"success":       true,
			"deleted_count": 0,
			"message":       "no entries selected",
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":       !result.Failed(),
		"deleted_count": len(result.Processed),
		"errors":        failureMessages(result),
	})
}

// CopyFiles copies the selected entries
func (h *Handlers) CopyFiles(c *gin.Context) {
	h.transfer(c, filemanager.OpCopy, "copied_count")
}

// MoveFiles moves the selected entries
func (h *Handlers) MoveFiles(c *gin.Context) {
	h.transfer(c, filemanager.OpMove, "moved_count")
}

func (h *Handlers) transfer(c *gin.Context, op, countKey string) {
	var req TransferRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}
	if err := validatePath(req.Destination, "destination"); err != nil {
		badRequest(c, err)
		return
	}

	ctx := c.Request.Context()
	var (
		result *filemanager.Result
		err    error
	)
	switch op {
	case filemanager.OpMove:
		result, err = h.host.Move(ctx, req.Destination)
	default:
		result, err = h.host.Copy(ctx, req.Destination)
	}

	if err != nil {
		if errors.Is(err, filemanager.ErrNoDirectory) {
			c.JSON(http.StatusConflict, gin.H{"error": "no directory loaded and no destination given"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":     !result.Failed(),
		"destination": result.Destination,
		countKey:      len(result.Processed),
		"errors":      failureMessages(result),
	})
}

func respondLoadError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, filesystem.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, filesystem.ErrNotADirectory):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// failureMessages formats per-entry failures as "name: message"
func failureMessages(result *filemanager.Result) []string {
	messages := make([]string, 0, len(result.Failures))
	for _, failure := range result.Failures {
		messages = append(messages, fmt.Sprintf("%s: %v", failure.Name, failure.Err))
	}
	return messages
}
