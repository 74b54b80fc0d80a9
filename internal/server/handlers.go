package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/hyperjump/yoyaku/internal/config"
	"github.com/hyperjump/yoyaku/internal/corpus"
	"github.com/hyperjump/yoyaku/internal/models"
	"github.com/hyperjump/yoyaku/internal/storage"
	"github.com/hyperjump/yoyaku/internal/summarizer"
	"go.uber.org/zap"
)

// inlineCorpusName labels request-supplied corpora in the weight cache.
const inlineCorpusName = "api"

func (s *Server) handleSummarize(w http.ResponseWriter, r *http.Request) {
	var req models.SummarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := req.Validate(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	opts, err := s.options(req.LengthBudget, req.RedundancyThreshold, req.CentroidIDF, req.Matrix)
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	s.logger.Debug("summarize request",
		zap.String("request_id", r.Header.Get(RequestIDHeader)),
		zap.Int("documents", len(req.Documents)),
	)
	idx := corpus.New(s.loader.FromInputs(req.Documents), s.loader.MinTermLength())
	s.summarize(w, r, inlineCorpusName, idx, opts)
}

func (s *Server) handleCorpusSummary(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	budget := 0
	if v := q.Get("length_budget"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			s.respondError(w, http.StatusBadRequest, "invalid length_budget")
			return
		}
		budget = n
	}
	var threshold *float64
	if v := q.Get("redundancy_threshold"); v != "" {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || f < 0 || f > 1 {
			s.respondError(w, http.StatusBadRequest, "invalid redundancy_threshold")
			return
		}
		threshold = &f
	}
	opts, err := s.options(budget, threshold, q.Get("centroid_idf"), q.Get("matrix"))
	if err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	src := s.config.Corpus.Source()
	idx, err := s.loader.LoadSource(r.Context(), src)
	if err != nil {
		s.logger.Error("corpus load failed", zap.String("directory", src.Directory), zap.Error(err))
		s.respondError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.summarize(w, r, src.Directory, idx, opts)
}

func (s *Server) summarize(w http.ResponseWriter, r *http.Request, name string, idx *corpus.Index, opts summarizer.Options) {
	summary, err := s.engine.Summarize(r.Context(), name, idx, opts)
	if err != nil {
		status := statusFor(err)
		if status == http.StatusInternalServerError {
			s.logger.Error("summarize failed", zap.String("corpus", name), zap.Error(err))
		}
		s.respondError(w, status, err.Error())
		return
	}
	s.respondJSON(w, http.StatusOK, summary)
}

// options layers request overrides on the configured summary settings.
func (s *Server) options(budget int, threshold *float64, idf, matrix string) (summarizer.Options, error) {
	return s.config.Summary.OptionsWith(config.SummaryOverrides{
		LengthBudget:        budget,
		RedundancyThreshold: threshold,
		CentroidIDF:         idf,
		Matrix:              matrix,
	})
}

// statusFor maps corpus errors to 422 and everything else to 500.
func statusFor(err error) int {
	switch {
	case errors.Is(err, models.ErrEmptyDocument), errors.Is(err, models.ErrUnknownTerm):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	resp := map[string]interface{}{}
	if s.store != nil {
		n, err := s.store.Count(r.Context())
		if err != nil {
			s.logger.Error("status: count cache entries failed", zap.Error(err))
			s.respondError(w, http.StatusInternalServerError, err.Error())
			return
		}
		resp["cache_entries"] = n
	}
	if diskBytes, err := storage.DiskUsageBytes(s.config.Storage.CachePath); err == nil {
		resp["disk_usage_bytes"] = diskBytes
	}
	resp["config"] = map[string]interface{}{
		"cache_path":           s.config.Storage.CachePath,
		"corpus_directory":     s.config.Corpus.Directory,
		"length_budget":        s.config.Summary.LengthBudget,
		"redundancy_threshold": s.config.Summary.RedundancyThresholdOrDefault(),
		"centroid_idf":         s.config.Summary.CentroidIDF,
		"matrix":               s.config.Summary.Matrix,
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Debug("response encode failed", zap.Error(err))
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, message string) {
	s.respondJSON(w, status, map[string]string{"error": message})
}

