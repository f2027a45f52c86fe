package web

import (
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	flashCookie = "tubesum_flash"
	flashMaxAge = 60

	categoryDanger  = "danger"
	categoryWarning = "warning"
)

// flash is a one-shot message shown on the next page render.
type flash struct {
	Category string
	Message  string
}

func setFlash(c *gin.Context, category, message string) {
	c.SetCookie(flashCookie, category+"|"+message, flashMaxAge, "/", "", false, true)
}

// popFlash reads the pending flash, if any, and clears it.
func popFlash(c *gin.Context) *flash {
	value, err := c.Cookie(flashCookie)
	if err != nil || value == "" {
		return nil
	}
	c.SetCookie(flashCookie, "", -1, "/", "", false, true)

	category, message, ok := strings.Cut(value, "|")
	if !ok || message == "" {
		return nil
	}
	switch category {
	case categoryDanger, categoryWarning:
	default:
		category = categoryDanger
	}
	return &flash{Category: category, Message: message}
}
