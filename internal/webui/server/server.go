package server

import (
	"context"
	"errors"
	"io/fs"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"pentu/internal/results"
	"pentu/internal/system"
	"pentu/internal/tools"
	appver "pentu/internal/version"
	webembed "pentu/internal/webui/embed"
)

// ReportReader is the read-only part of *results.Store served over HTTP.
type ReportReader interface {
	List() ([]results.ReportFile, error)
	Describe(name string) (results.ReportFile, error)
	ReadName(name string) (string, error)
}

// ToolProber is satisfied by *tools.Registry.
type ToolProber interface {
	CheckAll() tools.Snapshot
}

// Server exposes saved results and tool status on a local HTTP port.
// It never runs commands.
type Server struct {
	Addr    string
	Reports ReportReader
	Tools   ToolProber
}

// Handler builds the gin engine.
func (s *Server) Handler() http.Handler {
	r := gin.New()
	r.Use(gin.Logger())
	r.Use(gin.Recovery())
	s.mountAPI(r)
	mountEmbeddedUI(r)
	return r
}

// Start serves until ctx is canceled.
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{Addr: s.Addr, Handler: s.Handler(), ReadHeaderTimeout: 5 * time.Second}
	go func() {
		<-ctx.Done()
		sctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		_ = srv.Shutdown(sctx)
	}()
	system.Logger.Info("results server listening", "addr", "http://"+s.Addr)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) mountAPI(r *gin.Engine) {
	api := r.Group("/api")
	api.GET("/health", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}))
	api.GET("/version", gin.WrapF(func(w http.ResponseWriter, req *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"version": appver.AppVersion})
	}))
	api.GET("/tools", gin.WrapF(s.toolsHandler))
	api.GET("/schema", gin.WrapF(schemaHandler))
	api.GET("/results", gin.WrapF(s.resultsListHandler))
	api.GET("/results/:name", s.resultHandler)
}

// mountEmbeddedUI serves the bundled viewer page for all non-/api GET routes.
func mountEmbeddedUI(r *gin.Engine) {
	dist, err := fs.Sub(webembed.DistFS, "dist")
	if err != nil {
		r.NoRoute(func(c *gin.Context) { c.Status(http.StatusNotFound) })
		return
	}
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, "/api/") || c.Request.URL.Path == "/api" {
			c.Status(http.StatusNotFound)
			return
		}
		if c.Request.Method != http.MethodGet && c.Request.Method != http.MethodHead {
			c.Status(http.StatusNotFound)
			return
		}
		p := strings.TrimPrefix(c.Request.URL.Path, "/")
		b, err := fs.ReadFile(dist, p)
		if p == "" || err != nil {
			// single page: unknown paths get the index
			p = "index.html"
			if b, err = fs.ReadFile(dist, p); err != nil {
				c.String(http.StatusNotFound, "index.html not found in embedded dist.")
				return
			}
		}
		ct := mime.TypeByExtension(filepath.Ext(p))
		if ct == "" {
			ct = "application/octet-stream"
		}
		c.Data(http.StatusOK, ct, b)
	})
}
