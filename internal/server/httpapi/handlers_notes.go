package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/dkurilov/notehub/internal/common"
	"github.com/dkurilov/notehub/internal/server/models"
	noterepo "github.com/dkurilov/notehub/internal/server/repositories/notes"
)

func noteIDParam(r *http.Request) (int64, error) {
	return strconv.ParseInt(chi.URLParam(r, "noteID"), 10, 64)
}

type noteCreateRequest struct {
	Title      string  `json:"title"`
	Content    string  `json:"content"`
	IsArchived bool    `json:"is_archived"`
	ThemeColor *string `json:"theme_color"`
	FontFamily *string `json:"font_family"`
}

func (s *Server) handleCreateNote(w http.ResponseWriter, r *http.Request) {
	var req noteCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	note := &models.Note{
		Title:      req.Title,
		Content:    req.Content,
		IsArchived: req.IsArchived,
		ThemeColor: req.ThemeColor,
		FontFamily: req.FontFamily,
	}
	created, err := s.notes.Create(r.Context(), currentUser(r).ID, note)
	if err != nil {
		s.logger.Error(r.Context(), "note creation failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(created))
}

func (s *Server) handleListNotes(w http.ResponseWriter, r *http.Request) {
	archived := false
	if v := r.URL.Query().Get("archived"); v != "" {
		parsed, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid archived filter")
			return
		}
		archived = parsed
	}

	notes, err := s.notes.List(r.Context(), currentUser(r).ID, archived)
	if err != nil {
		s.logger.Error(r.Context(), "note listing failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	result := make([]noteResponse, 0, len(notes))
	for _, n := range notes {
		result = append(result, toNoteResponse(n))
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleGetNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Note not found or you don't have permission to view it")
		return
	}

	note, err := s.notes.Get(r.Context(), currentUser(r).ID, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Note not found or you don't have permission to view it")
			return
		}
		s.logger.Error(r.Context(), "note fetch failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

// noteUpdateRequest is a partial patch. An explicit JSON null decodes to the
// same nil pointer as an absent field, so a set theme_color/font_family
// cannot be cleared through this endpoint.
type noteUpdateRequest struct {
	Title      *string `json:"title"`
	Content    *string `json:"content"`
	IsArchived *bool   `json:"is_archived"`
	ThemeColor *string `json:"theme_color"`
	FontFamily *string `json:"font_family"`
}

func (s *Server) handleUpdateNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Note not found or you don't have permission to edit it")
		return
	}

	var req noteUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	patch := noterepo.UpdateParams{
		Title:      req.Title,
		Content:    req.Content,
		IsArchived: req.IsArchived,
		ThemeColor: req.ThemeColor,
		FontFamily: req.FontFamily,
	}
	note, err := s.notes.Update(r.Context(), currentUser(r).ID, id, patch)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Note not found or you don't have permission to edit it")
			return
		}
		s.logger.Error(r.Context(), "note update failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := noteIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Note not found or you don't have permission to delete it")
		return
	}

	if err := s.notes.Delete(r.Context(), currentUser(r).ID, id); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Note not found or you don't have permission to delete it")
			return
		}
		s.logger.Error(r.Context(), "note deletion failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

type tagCreateRequest struct {
	Name string `json:"name"`
}

func (s *Server) handleAddTags(w http.ResponseWriter, r *http.Request) {
	id, err := noteIDParam(r)
	if err != nil {
		writeError(w, http.StatusNotFound, "Note not found or you don't have permission to edit it")
		return
	}

	var req []tagCreateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	names := make([]string, 0, len(req))
	for _, t := range req {
		names = append(names, t.Name)
	}

	note, err := s.notes.AddTags(r.Context(), currentUser(r).ID, id, names)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			writeError(w, http.StatusNotFound, "Note not found or you don't have permission to edit it")
			return
		}
		s.logger.Error(r.Context(), "tag attachment failed", "error", err.Error())
		writeError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	writeJSON(w, http.StatusOK, toNoteResponse(note))
}
