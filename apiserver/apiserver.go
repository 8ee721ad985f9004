package apiserver

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"chartrender/bestdori"
	"chartrender/chart"
	"chartrender/renderer"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// Fetcher loads render inputs from the chart service.
type Fetcher interface {
	Official(ctx context.Context, songID int, d chart.Difficulty) (*bestdori.Input, error)
	UserPost(ctx context.Context, postID int) (*bestdori.Input, error)
}

type Server struct {
	renderer *renderer.Renderer
	fetcher  Fetcher
	logger   *slog.Logger
	handler  http.Handler
}

func New(r *renderer.Renderer, f Fetcher, allowedOrigins []string, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{renderer: r, fetcher: f, logger: logger}

	router := mux.NewRouter()
	router.HandleFunc("/healthz", s.health).Methods(http.MethodGet)
	router.HandleFunc("/render/official/{songID:[0-9]+}/{difficulty}", s.renderOfficial).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/render/post/{postID:[0-9]+}", s.renderPost).Methods(http.MethodGet, http.MethodOptions)
	router.HandleFunc("/render", s.renderBody).Methods(http.MethodPost, http.MethodOptions)
	router.Use(mux.CORSMethodMiddleware(router))
	router.Use(s.requestLog)

	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost},
		ExposedHeaders: []string{requestIDHeader},
	})
	s.handler = c.Handler(router)
	return s
}

func (s *Server) Handler() http.Handler {
	return s.handler
}

// Run serves on addr until ctx is done, then shuts down gracefully.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		s.logger.Info("running server", "addr", addr)
		errc <- srv.ListenAndServe()
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return err
		}
		if err := <-errc; !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	}
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}

func (s *Server) renderOfficial(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}
	vars := mux.Vars(r)
	songID, err := strconv.Atoi(vars["songID"])
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}
	d, err := chart.ParseDifficulty(vars["difficulty"])
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	in, err := s.fetcher.Official(r.Context(), songID, d)
	if err != nil {
		s.writeError(w, r, fetchStatus(err), err)
		return
	}
	s.render(w, r, in)
}

func (s *Server) renderPost(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}
	postID, err := strconv.Atoi(mux.Vars(r)["postID"])
	if err != nil {
		s.writeError(w, r, http.StatusBadRequest, err)
		return
	}

	in, err := s.fetcher.UserPost(r.Context(), postID)
	if err != nil {
		s.writeError(w, r, fetchStatus(err), err)
		return
	}
	s.render(w, r, in)
}

// fetchStatus maps a fetch failure to a response status. Upstream charts
// that fail to decode are the chart's fault, not the gateway's.
func fetchStatus(err error) int {
	if errors.Is(err, bestdori.ErrMalformedChart) {
		return http.StatusUnprocessableEntity
	}
	return http.StatusBadGateway
}

// RenderRequest is the body of POST /render. Jacket is base64 image data.
type RenderRequest struct {
	Chart  chart.Chart     `json:"chart"`
	Meta   chart.ChartMeta `json:"meta"`
	Jacket []byte          `json:"jacket,omitempty"`
}

const maxBodyBytes = 16 << 20

func (s *Server) renderBody(w http.ResponseWriter, r *http.Request) {
	if r.Method == http.MethodOptions {
		return
	}
	var req RenderRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		s.writeError(w, r, http.StatusBadRequest, fmt.Errorf("decode body: %w", err))
		return
	}
	s.render(w, r, &bestdori.Input{Chart: req.Chart, Meta: req.Meta, Jacket: req.Jacket})
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, in *bestdori.Input) {
	res, err := s.renderer.Render(in.Chart, in.Meta, in.Jacket)
	if err != nil {
		status := http.StatusInternalServerError
		var verr *chart.ValidationError
		if errors.As(err, &verr) {
			status = http.StatusUnprocessableEntity
		}
		s.writeError(w, r, status, err)
		return
	}

	png, err := res.PNG()
	if err != nil {
		s.writeError(w, r, http.StatusInternalServerError, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Content-Length", strconv.Itoa(len(png)))
	w.Write(png)
}

type errorBody struct {
	Error     string `json:"error"`
	RequestID string `json:"request_id,omitempty"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	s.logger.Warn("request failed", "request_id", requestID(r.Context()), "status", status, "err", err)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(errorBody{Error: err.Error(), RequestID: requestID(r.Context())})
}
