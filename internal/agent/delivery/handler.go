package delivery

import (
	"errors"
	"log"
	"net/http"

	"dealersync-backend/internal/agent/domain"
	"dealersync-backend/internal/agent/usecase"
	"dealersync-backend/pkg/ai"

	"github.com/gin-gonic/gin"
)

// AgentHandler handles reply-suggestion HTTP requests
type AgentHandler struct {
	replyUsecase usecase.ReplyUsecase
}

// NewAgentHandler creates a new AgentHandler
func NewAgentHandler(replyUsecase usecase.ReplyUsecase) *AgentHandler {
	return &AgentHandler{
		replyUsecase: replyUsecase,
	}
}

// ReplyRequest is the body for POST /agent/reply
type ReplyRequest struct {
	Messages []domain.Turn `json:"messages"`
	Lead     *domain.Lead  `json:"lead,omitempty"`
	Page     *domain.Page  `json:"page,omitempty"`
}

// Reply drafts 1-3 candidate replies for a conversation transcript.
// The response always carries a suggestions array so the chat UI has a
// stable shape to render against.
// POST /agent/reply
func (h *AgentHandler) Reply(c *gin.Context) {
	var req ReplyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"suggestions": []string{},
			"error":       "invalid request body",
		})
		return
	}

	if len(req.Messages) == 0 {
		c.JSON(http.StatusBadRequest, gin.H{
			"suggestions": []string{},
			"error":       "messages is required",
		})
		return
	}

	suggestions, err := h.replyUsecase.SuggestReplies(c.Request.Context(), req.Messages, req.Lead, req.Page)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyTranscript) {
			c.JSON(http.StatusBadRequest, gin.H{
				"suggestions": []string{},
				"error":       err.Error(),
			})
			return
		}
		if errors.Is(err, usecase.ErrNotConfigured) {
			c.JSON(http.StatusInternalServerError, gin.H{
				"suggestions": []string{},
				"error":       err.Error(),
			})
			return
		}
		category := ai.Classify(err)
		// The raw upstream error stays in the log; callers get the category
		log.Printf("[AGENT] reply generation failed (%s): %v", category, err)
		c.JSON(ai.HTTPStatus(category), gin.H{
			"suggestions": []string{},
			"error":       ai.UserMessage(category),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"suggestions": suggestions,
		"aiGenerated": true,
	})
}
