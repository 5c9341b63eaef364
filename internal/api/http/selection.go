package http

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Selection actions accepted by UpdateSelection
const (
	ActionSelect        = "select"
	ActionDeselect      = "deselect"
	ActionSelectAll     = "select_all"
	ActionDeselectAll   = "deselect_all"
	ActionSelectPattern = "select_pattern"
)

// SelectionRequest is the body of a selection update
type SelectionRequest struct {
	Action  string `json:"action"`
	Entry   string `json:"entry,omitempty"`
	Pattern string `json:"pattern,omitempty"`
}

// GetSelection returns the selected entries
func (h *Handlers) GetSelection(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"selection": h.host.Selection()})
}

// UpdateSelection applies one selection action
func (h *Handlers) UpdateSelection(c *gin.Context) {
	var req SelectionRequest
	if err := bindJSON(c, &req); err != nil {
		badRequest(c, err)
		return
	}

	body := gin.H{"success": true}

	switch req.Action {
	case "":
		badRequest(c, errors.New("action is required"))
		return

	case ActionSelect:
		if err := validateName(req.Entry); err != nil {
			badRequest(c, err)
			return
		}
		if !h.host.Select(req.Entry) {
			badRequest(c, fmt.Errorf("unknown entry: %s", req.Entry))
			return
		}

	case ActionDeselect:
		if err := validateName(req.Entry); err != nil {
			badRequest(c, err)
			return
		}
		body["success"] = h.host.Deselect(req.Entry)

	case ActionSelectAll:
		h.host.SelectAll()

	case ActionDeselectAll:
		h.host.DeselectAll()

	case ActionSelectPattern:
		if req.Pattern == "" {
			badRequest(c, errors.New("pattern is required"))
			return
		}
		matched, err := h.host.SelectMatching(req.Pattern)
		if err != nil {
			badRequest(c, err)
			return
		}
		body["matched"] = matched

	default:
		badRequest(c, fmt.Errorf("unknown action: %s", req.Action))
		return
	}

	body["selection"] = h.host.Selection()
	c.JSON(http.StatusOK, body)
}
