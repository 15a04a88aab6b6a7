// Package web serves the agent's REST API. Scans started over HTTP
// run asynchronously as jobs; completed reports are also persisted
// to the reports directory by the pipeline.
package web

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/Jjustmee23/CyberShieldX-sub000/internal/pipeline"
	"github.com/Jjustmee23/CyberShieldX-sub000/internal/web/jobs"
)

// jobTimeout bounds a single scan job. Deep network scans probe
// port ranges host by host and can legitimately run for minutes.
const jobTimeout = 10 * time.Minute

// Server is the HTTP server for the agent.
type Server struct {
	router  chi.Router
	addr    string
	manager *jobs.Manager
}

// NewServer builds a Server that executes scans through a production
// pipeline wired from pctx.
func NewServer(pctx *pipeline.Context) *Server {
	p := pipeline.New(pctx)
	return newServer(pctx.Config.ServerAddr, p.Run, pctx.NewID,
		pctx.Config.ReportsDir, pctx.Config.ClientID)
}

func newServer(addr string, run jobs.RunFunc, newID func() string, reportsDir, clientID string) *Server {
	s := &Server{
		router:  chi.NewRouter(),
		addr:    addr,
		manager: jobs.NewManager(run, newID, jobTimeout),
	}

	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.registerRoutes(reportsDir, clientID)

	return s
}

// Start begins listening on the configured address.
func (s *Server) Start() error {
	return http.ListenAndServe(s.addr, s.router)
}

// Router exposes the chi.Router for testing.
func (s *Server) Router() chi.Router {
	return s.router
}
