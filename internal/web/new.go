package web

import (
	"net/http"
	"sync/atomic"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"github.com/nguyentantai21042004/tubesum/internal/logger"
	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
)

// Options configures the HTTP server.
type Options struct {
	// AllowedOrigins limits CORS on /api. Empty allows any origin.
	AllowedOrigins []string
}

type pipelineRef struct {
	pipeline.Pipeline
}

type implServer struct {
	router   *gin.Engine
	pipeline atomic.Pointer[pipelineRef]
	markdown goldmark.Markdown
	logger   logger.Logger
}

// New creates a new Server instance
func New(p pipeline.Pipeline, log logger.Logger, opts Options) Server {
	s := &implServer{
		markdown: newMarkdown(),
		logger:   log,
	}
	s.SetPipeline(p)
	s.router = s.buildRouter(opts)
	return s
}

func (s *implServer) Router() http.Handler {
	return s.router
}

func (s *implServer) SetPipeline(p pipeline.Pipeline) {
	s.pipeline.Store(&pipelineRef{Pipeline: p})
}

func (s *implServer) currentPipeline() pipeline.Pipeline {
	return s.pipeline.Load().Pipeline
}
