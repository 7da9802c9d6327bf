package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strconv"
	"time"

	"github.com/dgallion1/chapterize/internal/parser"
	"github.com/dgallion1/chapterize/internal/pipeline"
	"github.com/dgallion1/chapterize/internal/segment"
)

// handleSegment segments a manuscript sent as the raw request body. The
// "filename" query parameter picks the decoder (default .txt); "session=true"
// also opens an edit session over the result.
func (s *Server) handleSegment(w http.ResponseWriter, r *http.Request) {
	filename := sanitizeFilename(r.URL.Query().Get("filename"))
	if filepath.Ext(filename) == "" {
		filename += ".txt"
	}
	if !parser.IsSupportedExtension(filename) {
		jsonError(w, fmt.Sprintf("unsupported file type: %s", filepath.Ext(filename)), http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(io.LimitReader(r.Body, s.cfg.MaxUploadBytes+1))
	if err != nil {
		jsonError(w, "failed to read body", http.StatusBadRequest)
		return
	}
	if int64(len(data)) > s.cfg.MaxUploadBytes {
		jsonError(w, fmt.Sprintf("body exceeds max size (%d bytes)", s.cfg.MaxUploadBytes), http.StatusRequestEntityTooLarge)
		return
	}

	tree, err := parser.Decode(bytes.NewReader(data), filename, s.parseOptions())
	if err != nil {
		jsonError(w, "decode: "+err.Error(), http.StatusUnprocessableEntity)
		return
	}

	start := time.Now()
	chapters, strategy := segment.Analyze(tree.PlainText())
	s.orchestrator.Stats().Record(time.Since(start), strategy, len(chapters))

	resp := map[string]any{
		"title":    tree.Title,
		"strategy": strategy,
		"chapters": chapters,
	}
	if open, _ := strconv.ParseBool(r.URL.Query().Get("session")); open {
		e := s.sessions.Create(pipeline.NewID(), "", filename, strategy, chapters)
		resp["session_id"] = e.ID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) parseOptions() parser.Options {
	return parser.Options{
		FallbackEncoding:     s.cfg.FallbackEncoding,
		PDFFallbackPdftotext: s.cfg.PDFFallbackPdftotext,
	}
}
