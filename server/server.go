/*
Package server exposes a built trie as a small HTTP lookup service.

The trie is read-only while the service runs, so query results are
memoized in an LRU cache and reads need no locking.
*/
package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	goc "github.com/louchenyao/golang-cache"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"

	"github.com/Ramzeth/ipattr"
)

// Config holds the service settings.
type Config struct {
	// Listen is the host:port to bind, ":8080" when empty.
	Listen string
	// CacheCap is the lookup cache capacity in entries.
	CacheCap int
}

// Server answers /lookup queries against an immutable trie.
type Server struct {
	cfg   Config
	trie  *ipattr.Trie
	cache *goc.Cache
	http  *http.Server
}

var (
	lookupsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "ipattr_lookups_total",
		Help: "Lookup requests by result.",
	}, []string{"result"})
	lookupSeconds = prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "ipattr_lookup_seconds",
		Help:    "Lookup latency in seconds.",
		Buckets: prometheus.ExponentialBuckets(1e-6, 10, 8),
	})
)

func init() {
	prometheus.MustRegister(lookupsTotal, lookupSeconds)
}

type lookupResponse struct {
	IP      string          `json:"ip"`
	Count   int             `json:"count"`
	Cached  bool            `json:"cached"`
	Matches []ipattr.Record `json:"matches"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// New creates a Server over an already built trie.
func New(cfg Config, trie *ipattr.Trie) (*Server, error) {
	if cfg.Listen == "" {
		cfg.Listen = ":8080"
	}
	if cfg.CacheCap <= 0 {
		cfg.CacheCap = 1024 * 10
	}
	cache, err := goc.NewCache("lru", cfg.CacheCap)
	if err != nil {
		return nil, err
	}

	s := &Server{cfg: cfg, trie: trie, cache: cache}
	mux := http.NewServeMux()
	mux.HandleFunc("/lookup", s.handleLookup)
	mux.HandleFunc("/healthz", handleHealth)
	mux.Handle("/metrics", promhttp.Handler())
	s.http = &http.Server{Addr: cfg.Listen, Handler: mux}
	return s, nil
}

// Handler returns the service's HTTP handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Run blocks serving requests until Shutdown is called or the listener
// fails.
func (s *Server) Run() error {
	log.WithFields(log.Fields{
		"listen": s.cfg.Listen,
		"ranges": s.trie.Len(),
	}).Info("lookup service listening")
	err := s.http.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Shutdown gracefully stops the service.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.http.Shutdown(ctx)
}

func (s *Server) handleLookup(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "GET only"})
		return
	}
	addr := r.URL.Query().Get("ip")

	start := time.Now()
	matches, cached, err := s.lookup(addr)
	lookupSeconds.Observe(time.Since(start).Seconds())

	if err != nil {
		lookupsTotal.WithLabelValues("error").Inc()
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		return
	}
	if len(matches) > 0 {
		lookupsTotal.WithLabelValues("match").Inc()
	} else {
		lookupsTotal.WithLabelValues("nomatch").Inc()
	}
	writeJSON(w, http.StatusOK, lookupResponse{
		IP:      addr,
		Count:   len(matches),
		Cached:  cached,
		Matches: matches,
	})
}

func (s *Server) lookup(addr string) ([]ipattr.Record, bool, error) {
	if v, ok := s.cache.Get(addr); ok {
		return v.([]ipattr.Record), true, nil
	}
	matches, err := s.trie.SearchAll(addr)
	if err != nil {
		return nil, false, err
	}
	s.cache.Set(addr, matches)
	return matches, false, nil
}

func handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("writing response")
	}
}
