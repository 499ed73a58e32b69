package delivery

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dealersync-backend/internal/agent/domain"
	"dealersync-backend/internal/agent/usecase"
	"dealersync-backend/pkg/ai"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testToken = "test-token"

// fakeReplyUsecase counts invocations so tests can assert the auth
// middleware rejects before any upstream work happens.
type fakeReplyUsecase struct {
	suggestions []string
	err         error
	calls       int
}

func (f *fakeReplyUsecase) SuggestReplies(ctx context.Context, turns []domain.Turn, lead *domain.Lead, page *domain.Page) ([]string, error) {
	f.calls++
	return f.suggestions, f.err
}

func newTestRouter(uc usecase.ReplyUsecase, token string) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	agent := r.Group("/agent")
	agent.Use(BearerAuth(token))
	agent.POST("/reply", NewAgentHandler(uc).Reply)
	return r
}

func postReply(r *gin.Engine, token string, body interface{}) *httptest.ResponseRecorder {
	raw, _ := json.Marshal(body)
	req := httptest.NewRequest(http.MethodPost, "/agent/reply", bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type replyResponse struct {
	Suggestions []string `json:"suggestions"`
	AIGenerated bool     `json:"aiGenerated"`
	Error       string   `json:"error"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) replyResponse {
	t.Helper()
	var resp replyResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func validBody() map[string]interface{} {
	return map[string]interface{}{
		"messages": []map[string]string{{"sender": "customer", "text": "Is the Silverado available?"}},
	}
}

func TestReplyMissingToken(t *testing.T) {
	uc := &fakeReplyUsecase{suggestions: []string{"hi"}}
	r := newTestRouter(uc, testToken)

	w := postReply(r, "", validBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.NotNil(t, decode(t, w).Suggestions)
	assert.Zero(t, uc.calls)
}

func TestReplyWrongToken(t *testing.T) {
	uc := &fakeReplyUsecase{suggestions: []string{"hi"}}
	r := newTestRouter(uc, testToken)

	w := postReply(r, "wrong", validBody())
	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Zero(t, uc.calls)
}

func TestReplyTokenNotConfigured(t *testing.T) {
	uc := &fakeReplyUsecase{suggestions: []string{"hi"}}
	r := newTestRouter(uc, "")

	w := postReply(r, testToken, validBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Zero(t, uc.calls)
}

func TestReplyEmptyMessages(t *testing.T) {
	uc := &fakeReplyUsecase{suggestions: []string{"hi"}}
	r := newTestRouter(uc, testToken)

	w := postReply(r, testToken, map[string]interface{}{"messages": []string{}})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	resp := decode(t, w)
	assert.NotNil(t, resp.Suggestions)
	assert.Empty(t, resp.Suggestions)
	assert.Zero(t, uc.calls)
}

func TestReplySuccess(t *testing.T) {
	uc := &fakeReplyUsecase{suggestions: []string{"Happy to help!", "It sure is."}}
	r := newTestRouter(uc, testToken)

	w := postReply(r, testToken, validBody())
	assert.Equal(t, http.StatusOK, w.Code)

	resp := decode(t, w)
	assert.Equal(t, []string{"Happy to help!", "It sure is."}, resp.Suggestions)
	assert.True(t, resp.AIGenerated)
	assert.Equal(t, 1, uc.calls)
}

func TestReplyRateLimitedUpstream(t *testing.T) {
	uc := &fakeReplyUsecase{err: fmt.Errorf("upstream said too many requests")}
	r := newTestRouter(uc, testToken)

	w := postReply(r, testToken, validBody())
	assert.Equal(t, http.StatusTooManyRequests, w.Code)

	resp := decode(t, w)
	assert.Empty(t, resp.Suggestions)
	assert.Equal(t, ai.UserMessage(ai.CategoryRateLimit), resp.Error)
	// The raw upstream message never reaches the caller
	assert.NotContains(t, w.Body.String(), "upstream said")
}

func TestReplyGenericUpstreamError(t *testing.T) {
	uc := &fakeReplyUsecase{err: fmt.Errorf("model exploded")}
	r := newTestRouter(uc, testToken)

	w := postReply(r, testToken, validBody())
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, decode(t, w).Suggestions)
}

func TestReplyEmptyTranscriptError(t *testing.T) {
	uc := &fakeReplyUsecase{err: usecase.ErrEmptyTranscript}
	r := newTestRouter(uc, testToken)

	w := postReply(r, testToken, map[string]interface{}{
		"messages": []map[string]string{{"sender": "customer", "text": "   "}},
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, decode(t, w).Suggestions)
}
