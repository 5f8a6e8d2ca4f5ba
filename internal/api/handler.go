package api

import (
	"go-postdate/internal/candidate"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

type resolveRequest struct {
	Now        string            `json:"now"`
	Candidates []candidateRecord `json:"candidates"`
}

type candidateRecord struct {
	Provenance string `json:"provenance"`
	Value      string `json:"value"`
}

type Handler struct {
	policy *candidate.Policy
	logger zerolog.Logger
}

func NewHandler(policy *candidate.Policy, logger zerolog.Logger) *Handler {
	return &Handler{policy: policy, logger: logger}
}

// Router wires the health check and the resolve endpoint.
func (h *Handler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())

	r.GET("/", h.health)
	r.POST("/v1/resolve", h.resolve)
	return r
}

func (h *Handler) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message": "postdate API is running!",
		"status":  "healthy",
	})
}

func (h *Handler) resolve(c *gin.Context) {
	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid JSON body: " + err.Error()})
		return
	}

	var ref time.Time
	if req.Now != "" {
		t, err := time.Parse(time.RFC3339Nano, req.Now)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "now must be RFC 3339"})
			return
		}
		ref = t
	}

	candidates := make([]candidate.Candidate, 0, len(req.Candidates))
	for _, rec := range req.Candidates {
		p, err := candidate.ParseProvenance(rec.Provenance)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		candidates = append(candidates, candidate.Candidate{Provenance: p, Value: rec.Value})
	}

	//no recognizer over HTTP, there is no page to capture
	res, ok := h.policy.Select(c.Request.Context(), ref, candidates, nil)
	if !ok {
		h.logger.Debug().Int("candidates", len(candidates)).Msg("no candidate resolved")
		c.JSON(http.StatusOK, nil)
		return
	}
	c.JSON(http.StatusOK, res)
}
