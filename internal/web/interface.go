package web

import (
	"net/http"

	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
)

// Server is the HTTP front end of the summarizer.
type Server interface {
	Router() http.Handler
	// SetPipeline swaps the pipeline used by subsequent requests.
	SetPipeline(p pipeline.Pipeline)
}
