// Package web serves the upload API: reseller workbooks are posted, run
// through the pipeline and stored; facts and the audit trail can be read
// back per upload.
package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"

	"sellout/importer"
	"sellout/storage"
)

const defaultMaxUploadBytes = 32 << 20

type Options struct {
	MaxUploadBytes int64
	BatchSize      int
	Logger         logrus.FieldLogger
}

type Server struct {
	store    *storage.SQLiteStore
	pipeline *importer.Pipeline
	opts     Options
	router   chi.Router
}

type uploadResponse struct {
	Upload          UploadView `json:"upload"`
	Transformations int        `json:"transformations"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func NewServer(store *storage.SQLiteStore, pipeline *importer.Pipeline, opts Options) http.Handler {
	if opts.MaxUploadBytes <= 0 {
		opts.MaxUploadBytes = defaultMaxUploadBytes
	}
	if opts.Logger == nil {
		discard := logrus.New()
		discard.SetOutput(io.Discard)
		opts.Logger = discard
	}

	server := &Server{store: store, pipeline: pipeline, opts: opts}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", server.handleHealth)
	r.Route("/uploads", func(r chi.Router) {
		r.Get("/", server.handleListUploads)
		r.Post("/", server.handleCreateUpload)
		r.Route("/{uploadID}", func(r chi.Router) {
			r.Get("/", server.handleGetUpload)
			r.Delete("/", server.handleDeleteUpload)
			r.Get("/facts", server.handleListFacts)
			r.Get("/transformations", server.handleListTransformations)
		})
	})
	server.router = r

	return server
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleCreateUpload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.opts.MaxUploadBytes)
	if err := r.ParseMultipartForm(s.opts.MaxUploadBytes); err != nil {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("parse multipart form: %v", err))
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "missing file upload")
		return
	}
	defer file.Close()

	tmp, err := os.CreateTemp("", tempUploadPattern(header.Filename))
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("create temp upload: %v", err))
		return
	}
	tmpPath := tmp.Name()
	defer os.Remove(tmpPath)

	if _, err := io.Copy(tmp, file); err != nil {
		_ = tmp.Close()
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("save upload: %v", err))
		return
	}
	if err := tmp.Close(); err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("close upload temp file: %v", err))
		return
	}

	result, err := s.pipeline.Process(r.Context(), tmpPath, importer.Options{
		Vendor:   strings.TrimSpace(r.FormValue("vendor")),
		Filename: filepath.Base(header.Filename),
	})
	if err != nil {
		if errors.Is(err, importer.ErrMalformedInput) {
			writeError(w, http.StatusUnprocessableEntity, err.Error())
			return
		}
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	upload := storage.NewUpload(result.Filename, result.Vendor, result.Sheet, result.Period, result.RowsRead, result.RowsCleaned)
	saved, err := s.store.SaveUpload(r.Context(), upload, result.Facts, s.opts.BatchSize)
	if err != nil {
		writeError(w, http.StatusInternalServerError, fmt.Sprintf("store upload: %v", err))
		return
	}

	logger := s.opts.Logger.WithFields(logrus.Fields{"upload_id": saved.ID, "vendor": saved.Vendor})
	if err := s.store.AppendTransformations(r.Context(), saved.ID, result.Transformations); err != nil {
		logger.WithError(err).Warn("transformation log not stored")
	}
	logger.WithField("facts", saved.FactCount).Info("upload stored")

	writeJSON(w, http.StatusCreated, uploadResponse{
		Upload:          BuildUploadView(saved),
		Transformations: len(result.Transformations),
	})
}

func (s *Server) handleListUploads(w http.ResponseWriter, r *http.Request) {
	uploads, err := s.store.ListUploads(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	views := make([]UploadView, 0, len(uploads))
	for _, upload := range uploads {
		views = append(views, BuildUploadView(upload))
	}
	writeJSON(w, http.StatusOK, views)
}

func (s *Server) handleGetUpload(w http.ResponseWriter, r *http.Request) {
	upload, err := s.store.GetUpload(r.Context(), chi.URLParam(r, "uploadID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildUploadView(upload))
}

func (s *Server) handleListFacts(w http.ResponseWriter, r *http.Request) {
	facts, err := s.store.ListFacts(r.Context(), chi.URLParam(r, "uploadID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildFactViews(facts))
}

func (s *Server) handleListTransformations(w http.ResponseWriter, r *http.Request) {
	records, err := s.store.ListTransformations(r.Context(), chi.URLParam(r, "uploadID"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, BuildTransformationViews(records))
}

func (s *Server) handleDeleteUpload(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteUpload(r.Context(), chi.URLParam(r, "uploadID")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, storage.ErrUploadNotFound) {
		writeError(w, http.StatusNotFound, err.Error())
		return
	}
	writeError(w, http.StatusInternalServerError, err.Error())
}

func tempUploadPattern(filename string) string {
	base := filepath.Base(strings.TrimSpace(filename))
	if base == "" || base == "." {
		return "upload-*"
	}

	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)
	if stem == "" {
		stem = "upload"
	}
	if ext == "" {
		return stem + "-*"
	}
	return stem + "-*" + ext
}
