package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"medsum/pipeline"
)

const maxUploadBytes = 32 << 20

type summarizeResponse struct {
	Summary string `json:"summary,omitempty"`
	Error   string `json:"error,omitempty"`
}

// SummarizeHandler accepts one multipart document upload and responds with
// exactly one of a final summary or a user-visible error message.
func (s *Server) SummarizeHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		writeJSON(w, http.StatusBadRequest, summarizeResponse{Error: "invalid multipart request"})
		return
	}

	upload, header, err := r.FormFile("document")
	if err != nil {
		writeJSON(w, http.StatusBadRequest, summarizeResponse{Error: "missing document field"})
		return
	}
	defer upload.Close()

	summary, err := s.pipeline.Process(r.Context(), header.Filename, upload)
	if err != nil {
		var runErr *pipeline.RunError
		if errors.As(err, &runErr) {
			writeJSON(w, http.StatusUnprocessableEntity, summarizeResponse{Error: runErr.Message})
			return
		}
		s.logger.Error("unexpected pipeline error", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, summarizeResponse{Error: "internal error"})
		return
	}

	writeJSON(w, http.StatusOK, summarizeResponse{Summary: summary})
}

func writeJSON(w http.ResponseWriter, status int, body summarizeResponse) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
