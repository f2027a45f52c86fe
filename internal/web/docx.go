package web

import (
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"github.com/nguyentantai21042004/tubesum/internal/pipeline"
	"github.com/nguyentantai21042004/tubesum/internal/summarizer"
)

const docxContentType = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// sendDocx streams the summary as a Word document attachment.
func (s *implServer) sendDocx(c *gin.Context, res pipeline.Result) {
	ctx := c.Request.Context()

	dir, err := os.MkdirTemp("", "tubesum-docx-*")
	if err != nil {
		s.logger.Error(ctx, "Failed to create docx dir: %v", err)
		setFlash(c, categoryDanger, msgInternal)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}
	defer os.RemoveAll(dir)

	// Summaries normally open with their own heading; add one only when missing.
	var title string
	if summarizer.Title(res.Summary, "") == "" {
		title = "Summary of " + res.VideoID
	}

	path := filepath.Join(dir, "summary.docx")
	doc := summarizer.DocxDocument{
		Title:    title,
		Source:   res.URL,
		Markdown: res.Summary,
	}
	if err := summarizer.WriteDocx(doc, path); err != nil {
		s.logger.Error(ctx, "Failed to write docx for %s: %v", res.VideoID, err)
		setFlash(c, categoryDanger, msgInternal)
		c.Redirect(http.StatusSeeOther, "/")
		return
	}

	s.logger.Info(ctx, "Sending docx summary for %s", res.VideoID)
	c.Header("Content-Type", docxContentType)
	c.FileAttachment(path, res.VideoID+"-summary.docx")
}
