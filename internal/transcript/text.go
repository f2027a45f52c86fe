package transcript

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

// vttInlineTimestamp matches karaoke-style cue timestamps such as <00:00:01.520>.
var vttInlineTimestamp = regexp.MustCompile(`<\d{2}:\d{2}(?::\d{2})?\.\d{3}>`)

// plainText strips markup from a caption fragment, decodes entities (YouTube often
// double-escapes them) and collapses whitespace.
func plainText(fragment string) string {
	fragment = vttInlineTimestamp.ReplaceAllString(fragment, "")

	z := html.NewTokenizer(strings.NewReader(fragment))
	var sb strings.Builder
	for {
		switch z.Next() {
		case html.ErrorToken:
			return strings.Join(strings.Fields(html.UnescapeString(sb.String())), " ")
		case html.TextToken:
			sb.Write(z.Text())
		case html.SelfClosingTagToken, html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "br" {
				sb.WriteByte(' ')
			}
		}
	}
}
