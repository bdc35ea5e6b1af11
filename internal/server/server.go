package server

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/charmbracelet/log"

	"github.com/eluisluzquadros/cogniticy/pkg/batch"
	"github.com/eluisluzquadros/cogniticy/pkg/lot"
	"github.com/eluisluzquadros/cogniticy/pkg/params"
	"github.com/eluisluzquadros/cogniticy/pkg/validation"
)

// Server is the local development server for interactive massing studies.
// Every request reloads the project from disk so edits are picked up
// without a restart.
type Server struct {
	projectPath string
	port        int
	workers     int
	logger      *log.Logger
}

// New creates a server for the given project directory.
func New(projectPath string, port, workers int, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		projectPath: projectPath,
		port:        port,
		workers:     workers,
		logger:      logger,
	}
}

// Start launches the HTTP server.
func (s *Server) Start() error {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /api/params", s.handleParams)
	mux.HandleFunc("GET /api/validation", s.handleValidation)
	mux.HandleFunc("POST /api/solve", s.handleSolve)
	mux.HandleFunc("GET /", s.handleIndex)

	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("server starting", "url", "http://localhost"+addr, "project", s.projectPath)

	return http.ListenAndServe(addr, mux)
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html")
	fmt.Fprint(w, `<!DOCTYPE html>
<html><head><title>Cogniticy</title></head>
<body style="margin:0;background:#111;color:#fff;font-family:system-ui;display:flex;align-items:center;justify-content:center;height:100vh">
<div style="text-align:center">
<h1>Cogniticy</h1>
<p>POST /api/solve to evaluate the project. GET /api/params and /api/validation inspect it.</p>
</div>
</body></html>`)
}

func (s *Server) handleParams(w http.ResponseWriter, _ *http.Request) {
	project, err := params.LoadProjectFile(s.projectPath)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	s.writeJSON(w, project.Params)
}

func (s *Server) handleValidation(w http.ResponseWriter, _ *http.Request) {
	project, err := params.LoadProjectFile(s.projectPath)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	report := params.ValidateSchema(project.Params)
	for _, spec := range project.Lots {
		g, err := lot.FromSpec(spec)
		if err != nil {
			report.AddError(validation.Result{
				Level:   validation.LevelGeometry,
				Message: "lot geometry could not be built: " + err.Error(),
				LotID:   spec.ID,
			})
			continue
		}
		report.Merge(lot.Validate(g))
	}
	s.writeJSON(w, report)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	project, err := params.LoadProjectFile(s.projectPath)
	if err != nil {
		s.writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	cases, report := batch.CasesFromProject(project)
	runner := batch.Runner{Workers: s.workers, Logger: s.logger}
	result, err := runner.Run(r.Context(), cases)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	s.writeJSON(w, map[string]any{
		"run":    result,
		"report": report,
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, code int, err error) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": err.Error()})
}
