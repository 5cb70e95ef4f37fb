package importer

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/rpattn/rximport/internal/domain"
	"github.com/rpattn/rximport/internal/etl"
)

// Handler exposes the import pipelines over HTTP.
type Handler struct {
	service       *Service
	maxUploadSize int64
	logger        *zap.Logger
}

// NewHTTPHandler wraps the import service with multipart POST endpoints.
func NewHTTPHandler(service *Service, maxUploadSize int64, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{service: service, maxUploadSize: maxUploadSize, logger: logger}
}

// Routes mounts the import endpoints on a chi router.
func (h *Handler) Routes(r chi.Router) {
	r.Post("/api/imports/scripts", h.handleImport(domain.FileTypeScripts))
	r.Post("/api/imports/claims", h.handleImport(domain.FileTypeClaims))
	r.Get("/api/imports", h.handleList)
}

func (h *Handler) handleImport(fileType domain.FileType) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		r.Body = http.MaxBytesReader(w, r.Body, h.maxUploadSize)
		if err := r.ParseMultipartForm(h.maxUploadSize); err != nil {
			http.Error(w, fmt.Sprintf("invalid form data: %v", err), http.StatusBadRequest)
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			http.Error(w, fmt.Sprintf("file required: %v", err), http.StatusBadRequest)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			http.Error(w, fmt.Sprintf("failed to read file: %v", err), http.StatusBadRequest)
			return
		}

		summary, err := h.service.Import(r.Context(), Request{
			FileName: header.Filename,
			FileType: fileType,
			FileSize: header.Size,
			Data:     bytes.NewReader(data),
			OnProgress: func(p domain.Progress) {
				h.logger.Debug("import progress",
					zap.String("file", header.Filename),
					zap.Int("percentage", p.Percentage),
					zap.String("status", p.Status))
			},
		})
		if err != nil {
			if errors.Is(err, etl.ErrNoRecords) {
				http.Error(w, err.Error(), http.StatusUnprocessableEntity)
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, summary)
	}
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))

	logs, err := h.service.Logs(r.Context(), limit, offset)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(payload)
}
