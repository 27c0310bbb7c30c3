package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/zen-systems/pollgate/pkg/poll"
)

type answerRequest struct {
	Questions []poll.Question `json:"questions"`
	Context   string          `json:"context"`
}

type answerResponse struct {
	Answers []poll.Answer `json:"answers"`
	Stats   poll.Stats    `json:"stats"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": serviceName,
		"version": Version,
	})
}

func (s *Server) handleAnswerQuestions(w http.ResponseWriter, r *http.Request) {
	var req answerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if len(req.Questions) == 0 {
		writeError(w, http.StatusBadRequest, "no questions provided")
		return
	}

	answers, stats, err := s.svc.AnswerQuestions(r.Context(), req.Questions, req.Context)
	if err != nil {
		var verr *poll.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		zap.L().Error("answer-questions failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]any{
			"error":   err.Error(),
			"answers": []poll.Answer{},
			"stats":   map[string]any{},
		})
		return
	}

	writeJSON(w, http.StatusOK, answerResponse{Answers: answers, Stats: stats})
}

type testQuestionRequest struct {
	Text     string        `json:"text"`
	Type     poll.Type     `json:"type"`
	Options  []poll.Option `json:"options"`
	Required *bool         `json:"required"`
	Context  string        `json:"context"`
}

// handleTestQuestion answers a single ad-hoc question, filling in defaults
// for anything the request omits. An empty body exercises the pipeline with
// a canned yes-no question.
func (s *Server) handleTestQuestion(w http.ResponseWriter, r *http.Request) {
	var req testQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && err != io.EOF {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	q := poll.Question{
		ID:       "1",
		Text:     req.Text,
		Type:     req.Type,
		Options:  req.Options,
		Required: true,
	}
	if q.Text == "" {
		q.Text = "Do you like automated polls?"
	}
	if q.Type == "" {
		q.Type = poll.TypeYesNo
	}
	if q.Type.NeedsOptions() && len(q.Options) == 0 {
		q.Options = []poll.Option{
			{Value: "yes", Label: "Yes"},
			{Value: "no", Label: "No"},
		}
	}
	if req.Required != nil {
		q.Required = *req.Required
	}

	sharedContext := req.Context
	if sharedContext == "" {
		sharedContext = "This is a test question"
	}

	answers, stats, err := s.svc.AnswerQuestions(r.Context(), []poll.Question{q}, sharedContext)
	if err != nil {
		zap.L().Error("test-question failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{
			"error": "test failed",
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"question": q,
		"result":   answerResponse{Answers: answers, Stats: stats},
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"service":                  serviceName,
		"stats":                    s.svc.Stats(),
		"supported_question_types": poll.Types(),
	})
}

func (s *Server) handleResetStats(w http.ResponseWriter, r *http.Request) {
	s.svc.ResetStats()
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "reset",
		"stats":  s.svc.Stats(),
	})
}

func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusNotFound, map[string]any{
		"error": "endpoint not found",
		"available_endpoints": []string{
			"/health",
			"/answer-questions",
			"/test-question",
			"/stats",
			"/stats/reset",
		},
	})
}
