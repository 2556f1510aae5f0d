package markdownx

import (
	stdhtml "html"
	"strings"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
	"github.com/samber/lo"
)

var (
	// 帖子正文允许常见的用户内容标签
	ugcPolicy = bluemonday.UGCPolicy()
	// 标题不允许任何标签
	strictPolicy = bluemonday.StrictPolicy()
)

// ToSafeHTML 将 markdown 渲染为 HTML 并清洗掉脚本等不安全内容
func ToSafeHTML(content string) string {
	// parser 不可复用，每次渲染都需要新建
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs | parser.NoEmptyLineBeforeBlock
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(content))

	opts := html.RendererOptions{Flags: html.CommonFlags | html.HrefTargetBlank}
	renderer := html.NewRenderer(opts)

	return string(ugcPolicy.SanitizeBytes(markdown.Render(doc, renderer)))
}

// StripTags 去掉所有 HTML 标签，用于纯文本字段
// Sanitize 会转义 & 等字符，纯文本字段需要还原
func StripTags(s string) string {
	return strings.TrimSpace(stdhtml.UnescapeString(strictPolicy.Sanitize(s)))
}

// Summary 渲染后取纯文本的前 maxRunes 个字符，按 rune 截断，超出部分以 ... 结尾
func Summary(content string, maxRunes int) string {
	runes := []rune(StripTags(ToSafeHTML(content)))
	if len(runes) <= maxRunes {
		return string(runes)
	}
	return string(lo.Subset(runes, 0, uint(maxRunes))) + "..."
}
