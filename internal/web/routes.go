package web

import (
	_ "embed"
	"html/template"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

//go:embed templates/index.html
var indexHTML string

var pageTemplate = template.Must(template.New("index.html").Parse(indexHTML))

func (s *implServer) buildRouter(opts Options) *gin.Engine {
	router := gin.New()
	router.HandleMethodNotAllowed = true
	router.Use(gin.Recovery())
	router.Use(requestID(), requestLogger(s.logger))
	router.SetHTMLTemplate(pageTemplate)

	router.GET("/", s.index)
	router.POST("/summarize", s.summarize)
	router.GET("/healthz", s.healthz)

	api := router.Group("/api")
	api.Use(cors.New(corsConfig(opts.AllowedOrigins)))
	api.POST("/summarize", s.apiSummarize)
	// Preflight requests are answered by the cors middleware.
	api.OPTIONS("/summarize", func(c *gin.Context) {})

	return router
}

func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{"POST", "OPTIONS"},
		AllowHeaders:  []string{"Origin", "Content-Type", requestIDHeader},
		ExposeHeaders: []string{"Content-Length", requestIDHeader},
		MaxAge:        12 * time.Hour,
	}
	if len(origins) > 0 {
		cfg.AllowOrigins = origins
	} else {
		cfg.AllowOriginFunc = func(origin string) bool { return true }
	}
	return cfg
}
