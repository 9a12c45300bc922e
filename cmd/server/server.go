package main

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"augmentor/internal/augerr"
	"augmentor/internal/augmentor"
	"augmentor/internal/config"
	"augmentor/internal/resources"
	"augmentor/internal/table"
	"augmentor/internal/tablestore"
	"augmentor/pkg/options"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type bundleKey struct {
	lang     resources.Language
	platform resources.Platform
}

// server keeps one read-only bundle per language and platform. Every request
// builds its own augmentor over them.
type server struct {
	cfg    *config.Config
	store  *tablestore.Store
	logger *zap.Logger

	mu      sync.RWMutex
	bundles map[bundleKey]*resources.Bundle
}

func newServer(cfg *config.Config, store *tablestore.Store, logger *zap.Logger) (*server, error) {
	s := &server{cfg: cfg, store: store, logger: logger}
	if err := s.reload(); err != nil {
		return nil, err
	}
	return s, nil
}

func (s *server) source() resources.Source {
	var layers resources.Layered
	if s.store != nil {
		layers = append(layers, s.store)
	}
	if dir := s.cfg.Augment.ResourceDir; dir != "" {
		layers = append(layers, resources.FromFS(os.DirFS(dir)))
	}
	return append(layers, resources.Embedded())
}

// reload loads every bundle and swaps them in only if all of them load.
func (s *server) reload() error {
	src := s.source()
	var mu sync.Mutex
	loaded := make(map[bundleKey]*resources.Bundle)
	var g errgroup.Group
	for _, lang := range resources.Languages() {
		for _, platform := range resources.Platforms() {
			lang, platform := lang, platform
			g.Go(func() error {
				b, err := resources.Load(src, lang, platform)
				if err != nil {
					return err
				}
				mu.Lock()
				loaded[bundleKey{lang, platform}] = b
				mu.Unlock()
				return nil
			})
		}
	}
	if err := g.Wait(); err != nil {
		return err
	}

	s.mu.Lock()
	s.bundles = loaded
	s.mu.Unlock()
	s.logger.Info("resource bundles loaded", zap.Int("bundles", len(loaded)))
	return nil
}

func (s *server) bundle(lang resources.Language, platform resources.Platform) *resources.Bundle {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.bundles[bundleKey{lang, platform}]
}

func (s *server) routes() http.Handler {
	r := mux.NewRouter()
	r.Use(s.requestID)
	api := r.PathPrefix("/api/v1").Subrouter()
	api.HandleFunc("/augment", s.handleAugment).Methods(http.MethodPost)
	api.HandleFunc("/augment/batch", s.handleBatch).Methods(http.MethodPost)
	api.HandleFunc("/actions/{level}", s.handleActions).Methods(http.MethodGet)
	if s.store != nil {
		api.HandleFunc("/tables", s.handleListTables).Methods(http.MethodGet)
		api.HandleFunc("/tables/{name:.+}", s.handleGetTable).Methods(http.MethodGet)
		api.HandleFunc("/tables/{name:.+}", s.handlePutTable).Methods(http.MethodPut)
		api.HandleFunc("/tables/{name:.+}", s.handleDeleteTable).Methods(http.MethodDelete)
	}
	return r
}

type loggerKey struct{}

func (s *server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		logger := s.logger.With(zap.String("request_id", id))
		logger.Debug("request", zap.String("method", r.Method), zap.String("path", r.URL.Path))
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), loggerKey{}, logger)))
	})
}

func (s *server) log(r *http.Request) *zap.Logger {
	if l, ok := r.Context().Value(loggerKey{}).(*zap.Logger); ok {
		return l
	}
	return s.logger
}

type augmentRequest struct {
	Text      string   `json:"text"`
	Texts     []string `json:"texts"`
	Level     string   `json:"level"`
	Action    string   `json:"action"`
	Language  string   `json:"language"`
	Platform  string   `json:"platform"`
	BatchRate float64  `json:"batch_rate"`
	UnitProb  *float64 `json:"unit_prob"`
	Seed      *uint64  `json:"seed"`
}

// augmenter builds a request-scoped augmentor over the shared bundle.
func (s *server) augmenter(r *http.Request, req augmentRequest) (augmentor.Augmenter, error) {
	o := options.Build(s.cfg.Augment.Options()...)
	lang, platform := o.Language, o.Platform
	var err error
	if req.Language != "" {
		if lang, err = resources.ParseLanguage(req.Language); err != nil {
			return nil, err
		}
	}
	if req.Platform != "" {
		if platform, err = resources.ParsePlatform(req.Platform); err != nil {
			return nil, err
		}
	}
	level := augmentor.Level(req.Level)
	if level == "" {
		level = augmentor.LevelChar
	}

	opts := append(s.cfg.Augment.Options(),
		options.WithBundle(s.bundle(lang, platform)),
		options.WithLogger(s.log(r)))
	if req.UnitProb != nil {
		opts = append(opts, options.WithUnitProb(*req.UnitProb))
	}
	if req.Seed != nil {
		opts = append(opts, options.WithRandomSeed(*req.Seed))
	}
	return augmentor.New(level, opts...)
}

func (s *server) handleAugment(w http.ResponseWriter, r *http.Request) {
	var req augmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Text) == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	aug, err := s.augmenter(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := aug.AugmentNamed(req.Text, req.Action)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"original": req.Text, "augmented": res})
}

func (s *server) handleBatch(w http.ResponseWriter, r *http.Request) {
	var req augmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Texts) == 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	if len(req.Texts) > s.cfg.Server.MaxBatch {
		writeJSON(w, http.StatusRequestEntityTooLarge, map[string]string{"error": "batch too large"})
		return
	}
	if req.BatchRate == 0 {
		req.BatchRate = 1
	}
	aug, err := s.augmenter(r, req)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	res, err := aug.AugmentBatchNamed(req.Texts, req.BatchRate, req.Action)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"augmented": res})
}

func (s *server) handleActions(w http.ResponseWriter, r *http.Request) {
	names, err := augmentor.ActionNames(augmentor.Level(mux.Vars(r)["level"]))
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"actions": names})
}

func (s *server) handleListTables(w http.ResponseWriter, r *http.Request) {
	names, err := s.store.List(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string][]string{"tables": names})
}

func (s *server) handleGetTable(w http.ResponseWriter, r *http.Request) {
	data, err := s.store.Get(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(data)
}

func (s *server) handlePutTable(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	data, err := io.ReadAll(r.Body)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid request"})
		return
	}
	if err := s.validateResource(name, data); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.store.Put(r.Context(), name, data); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.reload(); err != nil {
		s.writeError(w, r, err)
		return
	}
	s.log(r).Info("table published", zap.String("name", name), zap.Int("bytes", len(data)))
	writeJSON(w, http.StatusCreated, map[string]string{"status": "ok"})
}

func (s *server) handleDeleteTable(w http.ResponseWriter, r *http.Request) {
	name := mux.Vars(r)["name"]
	if err := s.store.Delete(r.Context(), name); err != nil {
		s.writeError(w, r, err)
		return
	}
	if err := s.reload(); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// validateResource accepts a word list or any table shape. Dense weight
// vectors are checked against the vocabulary of the language in name.
func (s *server) validateResource(name string, data []byte) error {
	if _, err := table.DecodeList(data); err == nil {
		return nil
	}
	var vocab []string
	lang, err := resources.ParseLanguage(strings.SplitN(name, "/", 2)[0])
	if err == nil {
		if b := s.bundle(lang, resources.PC); b != nil {
			vocab = b.Vocab
		}
	}
	_, err = table.Decode(data, vocab)
	return err
}

func (s *server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		ce *augerr.ConfigError
		ue *augerr.UnsupportedActionError
		se *augerr.InvalidSampleSizeError
	)
	switch {
	case errors.As(err, &ce), errors.As(err, &ue), errors.As(err, &se):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, fs.ErrNotExist):
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
	default:
		s.log(r).Error("request failed", zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
