package http

import (
	_ "embed"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/faqbot/internal/domain/faq"
	"github.com/yanqian/faqbot/pkg/util"
)

const notFoundAnswer = "I couldn't find a matching answer. Please try rephrasing your question."

//go:embed index.html
var indexPage []byte

// Handler wires the HTTP transport to the FAQ service.
type Handler struct {
	faqSvc faq.Service
	logger *slog.Logger
	now    func() string
}

// NewHandler constructs the root HTTP handler.
func NewHandler(faqSvc faq.Service, logger *slog.Logger) *Handler {
	return &Handler{
		faqSvc: faqSvc,
		logger: logger.With("component", "http.handler"),
		now: func() string {
			return util.Timestamp(util.NowUTC())
		},
	}
}

type chatRequest struct {
	Query string `json:"query"`
}

type chatResponse struct {
	Query           string  `json:"query"`
	Answer          string  `json:"answer"`
	Confidence      float64 `json:"confidence"`
	MatchedQuestion *string `json:"matchedQuestion"`
	Timestamp       string  `json:"timestamp"`
}

// Index serves the chat page.
func (h *Handler) Index(c *gin.Context) {
	c.Data(http.StatusOK, "text/html; charset=utf-8", indexPage)
}

// Chat answers a free-text question with the closest FAQ entry.
func (h *Handler) Chat(c *gin.Context) {
	var req chatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.faqSvc.Answer(c.Request.Context(), faq.Request{Query: req.Query})
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}

	body := chatResponse{
		Query:           resp.Query,
		Answer:          resp.Answer,
		Confidence:      resp.Confidence,
		MatchedQuestion: resp.MatchedQuestion,
		Timestamp:       h.now(),
	}
	if !resp.Found {
		body.Answer = notFoundAnswer
		c.JSON(http.StatusNotFound, body)
		return
	}
	c.JSON(http.StatusOK, body)
}

// FAQs lists the corpus.
func (h *Handler) FAQs(c *gin.Context) {
	items, err := h.faqSvc.FAQs(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"faqs": items, "count": len(items)})
}

// Health reports whether a corpus snapshot is being served.
func (h *Handler) Health(c *gin.Context) {
	if err := h.faqSvc.Ready(c.Request.Context()); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "timestamp": h.now()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "healthy", "timestamp": h.now()})
}

// Stats returns corpus and lookup counters.
func (h *Handler) Stats(c *gin.Context) {
	stats, err := h.faqSvc.Stats(c.Request.Context())
	if err != nil {
		abortWithError(c, fromAppError(err))
		return
	}
	c.JSON(http.StatusOK, stats)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
