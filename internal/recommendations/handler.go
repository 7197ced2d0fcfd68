package recommendations

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"ecofootprint-backend/internal/shared/server/middleware"
	"ecofootprint-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the recommendations service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches recommendation routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("/recommendations", h.createRecommendations)
}

func (h *Handler) createRecommendations(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)

	var input FootprintInput
	if err := c.ShouldBindJSON(&input); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid footprint payload", nil)
		return
	}

	outcome := h.Svc.Generate(c.Request.Context(), input, userID)
	if outcome.Failed() {
		c.Set("outcomeKind", failureCode(outcome.Kind))
		respond.Error(c, http.StatusServiceUnavailable, failureCode(outcome.Kind),
			"Failed to generate recommendations: "+outcome.Message, nil)
		return
	}

	c.Set("outcomeKind", "success")
	respond.OK(c, outcome.Result)
}

func failureCode(kind FailureKind) string {
	switch kind {
	case FailureModel:
		return "model_unavailable"
	case FailureFormat:
		return "model_output_malformed"
	case FailureStructure:
		return "model_output_invalid"
	default:
		return "internal_error"
	}
}
