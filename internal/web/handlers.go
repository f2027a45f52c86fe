package web

import (
	"errors"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
)

const (
	msgMissingURL   = "Enter a YouTube URL."
	msgInvalidURL   = "Couldn't parse a video ID from that URL. Paste a full YouTube watch URL."
	msgNoTranscript = "Transcript not available for this video (captions may be disabled or private)."
	msgInternal     = "Something went wrong while summarizing. Try again."
	msgBadRequest   = "Request body must be JSON with a url field."
)

type pageData struct {
	Flash    *flash
	URL      string
	VideoID  string
	Language string
	Summary  template.HTML
}

type summarizeRequest struct {
	URL string `json:"url"`
}

type summarizeResponse struct {
	URL      string `json:"url"`
	VideoID  string `json:"video_id"`
	Language string `json:"language"`
	Summary  string `json:"summary"`
}

type errorResponse struct {
	Error    string `json:"error"`
	Category string `json:"category"`
}

// failure is how a pipeline error is shown to the user.
type failure struct {
	status   int
	category string
	message  string
}

func classify(err error) failure {
	switch {
	case errors.Is(err, pipeline.ErrMissingURL):
		return failure{http.StatusBadRequest, categoryDanger, msgMissingURL}
	case errors.Is(err, pipeline.ErrInvalidURL):
		return failure{http.StatusUnprocessableEntity, categoryDanger, msgInvalidURL}
	case errors.Is(err, pipeline.ErrTranscriptUnavailable):
		return failure{http.StatusNotFound, categoryWarning, msgNoTranscript}
	default:
		return failure{http.StatusInternalServerError, categoryDanger, msgInternal}
	}
}

func (s *implServer) index(c *gin.Context) {
	c.HTML(http.StatusOK, "index.html", pageData{Flash: popFlash(c)})
}

// summarize handles the form post. Failures redirect back to the form with a flash.
func (s *implServer) summarize(c *gin.Context) {
	ctx := c.Request.Context()

	res, err := s.currentPipeline().Process(ctx, c.PostForm("youtube_url"))
	if err != nil {
		f := classify(err)
		if f.status == http.StatusInternalServerError {
			s.logger.Error(ctx, "Summarize failed: %v", err)
		} else {
			s.logger.Info(ctx, "Summarize rejected: %v", err)
		}
		setFlash(c, f.category, f.message)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	if c.PostForm("format") == "docx" {
		s.sendDocx(c, res)
		return
	}

	summary, err := s.renderMarkdown(res.Summary)
	if err != nil {
		s.logger.Warn(ctx, "Failed to render summary markdown: %v", err)
		summary = template.HTML("<pre>" + template.HTMLEscapeString(res.Summary) + "</pre>")
	}

	c.HTML(http.StatusOK, "index.html", pageData{
		URL:      res.URL,
		VideoID:  res.VideoID,
		Language: res.Language,
		Summary:  summary,
	})
}

func (s *implServer) apiSummarize(c *gin.Context) {
	var req summarizeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, errorResponse{Error: msgBadRequest, Category: categoryDanger})
		return
	}

	ctx := c.Request.Context()
	res, err := s.currentPipeline().Process(ctx, req.URL)
	if err != nil {
		f := classify(err)
		if f.status == http.StatusInternalServerError {
			s.logger.Error(ctx, "Summarize failed: %v", err)
		}
		c.JSON(f.status, errorResponse{Error: f.message, Category: f.category})
		return
	}

	c.JSON(http.StatusOK, summarizeResponse{
		URL:      res.URL,
		VideoID:  res.VideoID,
		Language: res.Language,
		Summary:  res.Summary,
	})
}

func (s *implServer) healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
