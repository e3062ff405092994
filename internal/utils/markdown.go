package utils

import (
	"bytes"
	"html/template"
	"regexp"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/renderer/html"
)

var (
	mdParser = goldmark.New(
		goldmark.WithExtensions(extension.GFM),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)
	// commentPolicy applies to rendered comment markdown.
	commentPolicy = bluemonday.UGCPolicy()
	// postPolicy applies to editor markup before it is stored and again before it is shown.
	postPolicy = bluemonday.UGCPolicy()

	editorClass = regexp.MustCompile(`^(ql-[a-z0-9-]+)(\s+ql-[a-z0-9-]+)*$`)
	videoSource = regexp.MustCompile(`^https://(www\.youtube\.com/embed/|player\.vimeo\.com/video/)[A-Za-z0-9_-]+`)
)

func init() {
	commentPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	commentPolicy.RequireNoReferrerOnLinks(true)

	postPolicy.AllowImages()
	postPolicy.AddTargetBlankToFullyQualifiedLinks(true)
	postPolicy.RequireNoReferrerOnLinks(true)
	// Editor formatting (alignment, indent, sizes, fonts) is carried in ql-* classes.
	postPolicy.AllowAttrs("class").Matching(editorClass).Globally()
	postPolicy.AllowElements("iframe")
	postPolicy.AllowAttrs("src").Matching(videoSource).OnElements("iframe")
	postPolicy.AllowAttrs("frameborder", "allowfullscreen").OnElements("iframe")
}

// RenderMarkdown turns comment text into sanitized HTML.
func RenderMarkdown(source string) template.HTML {
	var buf bytes.Buffer
	if err := mdParser.Convert([]byte(source), &buf); err != nil {
		return template.HTML(template.HTMLEscapeString(source))
	}
	return template.HTML(commentPolicy.SanitizeBytes(buf.Bytes()))
}

// SanitizePostHTML strips everything from editor markup that the post policy does not allow.
func SanitizePostHTML(markup string) string {
	return postPolicy.Sanitize(markup)
}

// RenderPostHTML sanitizes stored post markup and applies display enhancements.
func RenderPostHTML(markup string) template.HTML {
	return EnhanceHTMLContent(postPolicy.Sanitize(markup))
}
