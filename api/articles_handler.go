// Package api — saved-article endpoints. All routes here are scoped to
// the authenticated user.
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/newspulse/newspulse/internal/store"
	"github.com/newspulse/newspulse/pkg/models"
)

// SaveArticleRequest is the body for POST /api/v1/articles. The
// sentiment fields carry the score computed when the user hit save, so
// the saved view can render badges without re-scoring.
type SaveArticleRequest struct {
	Title       string  `json:"title"`
	Link        string  `json:"link"`
	Source      string  `json:"source,omitempty"`
	Category    string  `json:"category,omitempty"`
	ImageURL    string  `json:"image_url,omitempty"`
	PublishedAt string  `json:"published_at,omitempty"`
	Sentiment   string  `json:"sentiment,omitempty"`
	Score       float64 `json:"score,omitempty"`
}

func (s *Server) handleSaveArticle(w http.ResponseWriter, r *http.Request) {
	var req SaveArticleRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Title) == "" || strings.TrimSpace(req.Link) == "" {
		writeError(w, http.StatusBadRequest, "title and link are required")
		return
	}

	article := models.SavedArticle{
		Username:    currentUsername(r),
		Title:       req.Title,
		Link:        req.Link,
		Source:      req.Source,
		Category:    req.Category,
		ImageURL:    req.ImageURL,
		PublishedAt: req.PublishedAt,
		Sentiment:   req.Sentiment,
		Score:       req.Score,
	}

	if err := s.store.SaveArticle(r.Context(), &article); err != nil {
		if errors.Is(err, store.ErrDuplicateArticle) {
			writeError(w, http.StatusConflict, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusCreated, APIResponse{
		Success: true,
		Data:    article,
	})
}

func (s *Server) handleListArticles(w http.ResponseWriter, r *http.Request) {
	articles, err := s.store.ListSaved(r.Context(), currentUsername(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data: map[string]interface{}{
			"articles": articles,
			"count":    len(articles),
		},
	})
}

func (s *Server) handleDeleteArticle(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil || id < 1 {
		writeError(w, http.StatusBadRequest, "invalid article id")
		return
	}

	if err := s.store.DeleteSaved(r.Context(), currentUsername(r), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			writeError(w, http.StatusNotFound, "saved article not found")
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    map[string]int64{"deleted": id},
	})
}

func (s *Server) handleArticleStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.store.Stats(r.Context(), currentUsername(r))
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Data:    stats,
	})
}
