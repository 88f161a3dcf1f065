package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"wikibot/internal/domain"
	"wikibot/internal/service"
	"wikibot/internal/session"
)

const maxBodyBytes = 64 << 10

type topicRequest struct {
	Topic string `json:"topic"`
}

type topicResponse struct {
	Title     string `json:"title"`
	URL       string `json:"url"`
	Summary   string `json:"summary"`
	Sentences int    `json:"sentences"`
	Message   string `json:"message"`
}

type queryRequest struct {
	Query string `json:"query"`
}

type queryResponse struct {
	Matched  bool    `json:"matched"`
	Answer   string  `json:"answer,omitempty"`
	Position int     `json:"position"`
	Score    float64 `json:"score"`
	Message  string  `json:"message"`
}

type moreResponse struct {
	Paragraph string `json:"paragraph"`
}

type errorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
}

func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	id := s.sessions.Create()
	s.log.Info("session created", zap.String("session_id", id))
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	if !s.sessions.Delete(chi.URLParam(r, "sessionID")) {
		s.writeError(w, session.ErrSessionNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetTopic(w http.ResponseWriter, r *http.Request) {
	var req topicRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	var resp topicResponse
	err := s.sessions.With(chi.URLParam(r, "sessionID"), func(b *service.Bot) error {
		doc, err := b.SetTopic(r.Context(), req.Topic)
		if err != nil {
			return err
		}
		resp = topicResponse{
			Title:     doc.Title,
			URL:       doc.URL,
			Summary:   b.Summary(),
			Sentences: b.SentenceCount(),
			Message:   service.TopicSetMessage(doc.Title),
		}
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleQuery(w http.ResponseWriter, r *http.Request) {
	var req queryRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "bad_request", Message: err.Error()})
		return
	}
	var ans domain.Answer
	err := s.sessions.With(chi.URLParam(r, "sessionID"), func(b *service.Bot) error {
		var err error
		ans, err = b.Ask(req.Query)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	resp := queryResponse{Matched: ans.Matched, Answer: ans.Sentence, Position: ans.Position, Score: ans.Score}
	if ans.Matched {
		resp.Message = ans.Sentence
	} else {
		resp.Message = service.NoMatchMessage
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleMoreInfo(w http.ResponseWriter, r *http.Request) {
	var para string
	err := s.sessions.With(chi.URLParam(r, "sessionID"), func(b *service.Bot) error {
		var err error
		para, err = b.MoreInfo()
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, moreResponse{Paragraph: para})
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status, code := classify(err)
	if status >= http.StatusInternalServerError {
		s.log.Warn("request failed", zap.Int("status", status), zap.Error(err))
	}
	msg := service.Message(err)
	if errors.Is(err, session.ErrSessionNotFound) {
		msg = "Unknown or expired session."
	}
	writeJSON(w, status, errorResponse{Error: code, Message: msg})
}

func classify(err error) (int, string) {
	switch {
	case errors.Is(err, session.ErrSessionNotFound):
		return http.StatusNotFound, "session_not_found"
	case errors.Is(err, domain.ErrEmptyTopic), errors.Is(err, domain.ErrEmptyQuery):
		return http.StatusBadRequest, "bad_request"
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "not_found"
	case errors.Is(err, domain.ErrNetwork):
		return http.StatusBadGateway, "network"
	case errors.Is(err, domain.ErrNoTopicSet):
		return http.StatusConflict, "no_topic_set"
	case errors.Is(err, domain.ErrNoPriorAnswer):
		return http.StatusConflict, "no_prior_answer"
	default:
		return http.StatusInternalServerError, "internal"
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	return dec.Decode(v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
