package gin

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/rohancyriac029/reviewcord/errors"
	"github.com/rohancyriac029/reviewcord/models"
	"github.com/rohancyriac029/reviewcord/oracle"
	"github.com/rohancyriac029/reviewcord/services"
)

// ToolHandler exposes the ingestion steps as standalone endpoints, so a
// client can extract, check or summarize without submitting anything.
type ToolHandler struct {
	Extractor  services.Extractor
	Resolver   services.Resolver
	Summarizer services.Summarizer
}

func (h *ToolHandler) RegisterRoutes(router *gin.Engine) {
	router.POST("/api/extract-paper", JSONFormatter(h.Extract))
	router.POST("/api/check-duplicate", JSONFormatter(h.CheckDuplicate))
	router.POST("/api/generate-summary", JSONFormatter(h.Summarize))
}

func (h *ToolHandler) Extract(c *gin.Context) (interface{}, error) {
	var body struct {
		URL string `json:"url"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errors.New("could not decode request", errors.BadRequest(), errors.WithCause(err))
	}

	if strings.TrimSpace(body.URL) == "" {
		return nil, errors.New("url is required", errors.BadRequest())
	}

	md, err := h.Extractor.Extract(c.Request.Context(), body.URL)
	if err != nil {
		return nil, err
	}

	return map[string]interface{}{
		"data": md,
	}, nil
}

func (h *ToolHandler) CheckDuplicate(c *gin.Context) (interface{}, error) {
	var body struct {
		NewPaper       oracle.Comparison   `json:"newPaper"`
		ExistingPapers []oracle.Comparison `json:"existingPapers"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errors.New("could not decode request", errors.BadRequest(), errors.WithCause(err))
	}

	// Nothing to compare against.
	if len(body.ExistingPapers) == 0 {
		return map[string]interface{}{
			"data": models.Verdict{IsDuplicate: false},
		}, nil
	}

	verdict := h.Resolver.Resolve(c.Request.Context(), body.NewPaper, body.ExistingPapers)

	return map[string]interface{}{
		"data": verdict,
	}, nil
}

func (h *ToolHandler) Summarize(c *gin.Context) (interface{}, error) {
	var body struct {
		Title    string `json:"title"`
		Link     string `json:"link"`
		Abstract string `json:"abstract"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		return nil, errors.New("could not decode request", errors.BadRequest(), errors.WithCause(err))
	}

	if strings.TrimSpace(body.Title) == "" &&
		strings.TrimSpace(body.Link) == "" &&
		strings.TrimSpace(body.Abstract) == "" {
		return nil, errors.New("nothing to summarize: provide a title, a link or an abstract", errors.BadRequest())
	}

	summary, raw, err := h.Summarizer.Summarize(c.Request.Context(), body.Title, body.Link, body.Abstract)
	if err != nil {
		return nil, errors.New("could not generate summary", errors.WithCause(err))
	}

	return map[string]interface{}{
		"data": map[string]string{
			"summary": summary,
			"raw":     raw,
		},
	}, nil
}
