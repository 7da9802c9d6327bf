package api

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/dgallion1/chapterize/internal/chapter"
	"github.com/dgallion1/chapterize/internal/pipeline"
	"github.com/dgallion1/chapterize/internal/session"
	"github.com/go-chi/chi/v5"
)

type indexRequest struct {
	Index *int `json:"index"`
}

type cursorRequest struct {
	Offset *int `json:"offset"`
}

type createSessionRequest struct {
	Filename string            `json:"filename"`
	Chapters []chapter.Chapter `json:"chapters"`
}

// handleCreateSession opens a session over a chapter list supplied by the
// client, e.g. one saved from an earlier session.
func (s *Server) handleCreateSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.cfg.MaxUploadBytes)).Decode(&req); err != nil {
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return
	}

	chapters := make(chapter.List, 0, len(req.Chapters))
	for _, c := range req.Chapters {
		title := c.Title
		if strings.TrimSpace(title) == "" {
			title = chapter.UnnamedTitle
		}
		chapters = append(chapters, chapter.New(title, c.Content))
	}

	e := s.sessions.Create(pipeline.NewID(), "", sanitizeFilename(req.Filename), "provided", chapters)
	var st session.State
	e.Do(func(sess *session.Session) error {
		st = sess.State()
		return nil
	})
	writeJSON(w, http.StatusCreated, map[string]any{
		"session_id": e.ID,
		"state":      st,
	})
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	e := s.lookupSession(w, r)
	if e == nil {
		return
	}
	var (
		st      session.State
		updated time.Time
	)
	e.Do(func(sess *session.Session) error {
		st = sess.State()
		updated = e.UpdatedAt
		return nil
	})
	writeJSON(w, http.StatusOK, map[string]any{
		"session_id": e.ID,
		"doc_id":     e.DocID,
		"filename":   e.Filename,
		"strategy":   e.Strategy,
		"created_at": e.CreatedAt,
		"updated_at": updated,
		"state":      st,
	})
}

func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "sessionID")
	if !s.sessions.Delete(id) {
		jsonError(w, "session not found", http.StatusNotFound)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSelect(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Index == nil {
		jsonError(w, "index is required", http.StatusBadRequest)
		return
	}
	s.applyOp(w, r, func(sess *session.Session) (chapter.List, error) {
		return sess.SelectChapter(*req.Index)
	})
}

func (s *Server) handleCursor(w http.ResponseWriter, r *http.Request) {
	var req cursorRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Offset == nil {
		jsonError(w, "offset is required", http.StatusBadRequest)
		return
	}
	s.applyOp(w, r, func(sess *session.Session) (chapter.List, error) {
		return sess.StageCursor(*req.Offset)
	})
}

func (s *Server) handleInsertMarker(w http.ResponseWriter, r *http.Request) {
	s.applyOp(w, r, (*session.Session).InsertSplitMarker)
}

func (s *Server) handleSplit(w http.ResponseWriter, r *http.Request) {
	s.applyOp(w, r, (*session.Session).ExecuteSplit)
}

func (s *Server) handleCombine(w http.ResponseWriter, r *http.Request) {
	var req indexRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.Index == nil {
		jsonError(w, "index is required", http.StatusBadRequest)
		return
	}
	s.applyOp(w, r, func(sess *session.Session) (chapter.List, error) {
		return sess.CombineChapters(*req.Index)
	})
}

func (s *Server) handleDeleteChapter(w http.ResponseWriter, r *http.Request) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		jsonError(w, "index must be an integer", http.StatusBadRequest)
		return
	}
	s.applyOp(w, r, func(sess *session.Session) (chapter.List, error) {
		return sess.DeleteChapter(index)
	})
}

func (s *Server) handleUndo(w http.ResponseWriter, r *http.Request) {
	s.applyOp(w, r, (*session.Session).Undo)
}

func (s *Server) handleUndoPreview(w http.ResponseWriter, r *http.Request) {
	e := s.lookupSession(w, r)
	if e == nil {
		return
	}
	var (
		spans []session.Span
		op    string
		st    session.State
	)
	err := e.Do(func(sess *session.Session) error {
		var err error
		spans, op, err = sess.UndoPreview()
		st = sess.State()
		return err
	})
	if err != nil {
		writeOpError(w, err, st)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"op":    op,
		"spans": spans,
	})
}

// applyOp runs one edit operation under the session lock and replies with
// the resulting state. Precondition failures reply 409 with the unchanged
// state.
func (s *Server) applyOp(w http.ResponseWriter, r *http.Request, op func(*session.Session) (chapter.List, error)) {
	e := s.lookupSession(w, r)
	if e == nil {
		return
	}
	var st session.State
	err := e.Do(func(sess *session.Session) error {
		_, err := op(sess)
		st = sess.State()
		return err
	})
	if err != nil {
		writeOpError(w, err, st)
		return
	}
	writeJSON(w, http.StatusOK, st)
}

func writeOpError(w http.ResponseWriter, err error, st session.State) {
	code := http.StatusInternalServerError
	if session.IsPrecondition(err) {
		code = http.StatusConflict
	}
	writeJSON(w, code, map[string]any{
		"error": err.Error(),
		"state": st,
	})
}

func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) *session.Entry {
	e := s.sessions.Get(chi.URLParam(r, "sessionID"))
	if e == nil {
		jsonError(w, "session not found", http.StatusNotFound)
	}
	return e
}

// decodeBody reads an optional JSON body into v. It writes a 400 and
// returns false when the body is malformed.
func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(http.MaxBytesReader(w, r.Body, 1<<20)).Decode(v)
	if err != nil && !errors.Is(err, io.EOF) {
		jsonError(w, "invalid json: "+err.Error(), http.StatusBadRequest)
		return false
	}
	return true
}
