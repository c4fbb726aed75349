package profile

import (
	"errors"
	"net/http"

	"neighborhood_insights/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	msgInvalidPlace    = "query 'place' must be a place name"
	msgInvalidCompare  = "queries 'place1' and 'place2' must be place names"
	msgUnresolvedPlace = "could not locate place"
)

// Handler exposes profile endpoints.
type Handler struct {
	svc *Service
}

func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

// Get handles GET /api/v1/profiles?place=...
func (h *Handler) Get(c *gin.Context) {
	var req ProfileRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidPlace, nil)
		return
	}

	profile, err := h.svc.Aggregate(c.Request.Context(), req.Place)
	if err != nil {
		var unresolved *ResolutionFailedError
		if errors.As(err, &unresolved) {
			httpkit.Error(c, http.StatusNotFound, msgUnresolvedPlace, gin.H{"place": unresolved.Place})
			return
		}
		httpkit.HandleError(c, err)
		return
	}

	httpkit.OK(c, profile)
}

// Compare handles GET /api/v1/profiles/compare?place1=...&place2=...
// Each place succeeds or fails on its own; the response is always 200.
func (h *Handler) Compare(c *gin.Context) {
	var req CompareRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidCompare, nil)
		return
	}

	outcomes := h.svc.Compare(c.Request.Context(), req.Place1, req.Place2)
	resp := CompareResponse{Results: make([]CompareResult, 0, len(outcomes))}
	for _, o := range outcomes {
		result := CompareResult{Place: o.Place, Profile: o.Profile}
		if o.Err != nil {
			result.Error = errorMessage(o.Err)
		}
		resp.Results = append(resp.Results, result)
	}

	httpkit.OK(c, resp)
}

func errorMessage(err error) string {
	var unresolved *ResolutionFailedError
	if errors.As(err, &unresolved) {
		return msgUnresolvedPlace
	}
	return err.Error()
}
