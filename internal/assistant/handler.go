package assistant

import (
	"net/http"

	"neighborhood_insights/platform/apperr"
	"neighborhood_insights/platform/httpkit"
	"neighborhood_insights/platform/sanitize"

	"github.com/gin-gonic/gin"
)

const msgQueryRequired = "field 'query' is required"

// AskRequest is the body of POST /assistant/ask.
type AskRequest struct {
	Query string `json:"query" binding:"required,max=2000"`
}

// AskResponse carries the assistant's answer.
type AskResponse struct {
	Answer string `json:"answer"`
}

// Handler exposes the assistant endpoint. A nil gateway means the assistant
// is switched off.
type Handler struct {
	gateway Gateway
}

func NewHandler(gateway Gateway) *Handler {
	return &Handler{gateway: gateway}
}

// Ask handles POST /api/v1/assistant/ask
func (h *Handler) Ask(c *gin.Context) {
	if h.gateway == nil {
		httpkit.HandleError(c, apperr.Unavailable("assistant is disabled"))
		return
	}

	var req AskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgQueryRequired, nil)
		return
	}
	query := sanitize.Text(req.Query)
	if query == "" {
		httpkit.Error(c, http.StatusBadRequest, msgQueryRequired, nil)
		return
	}

	answer, err := h.gateway.Ask(c.Request.Context(), query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, AskResponse{Answer: answer})
}
