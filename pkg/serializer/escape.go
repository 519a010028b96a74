package serializer

import "strings"

// textReplacer escapes text for safe inclusion in element content.
var textReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
)

// attrReplacer additionally escapes whitespace controls that could break
// attribute parsing.
var attrReplacer = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#39;",
	"\n", "&#10;",
	"\r", "&#13;",
	"\t", "&#9;",
)

// escapeHTML escapes text for safe inclusion in HTML content.
func escapeHTML(s string) string {
	return textReplacer.Replace(s)
}

// escapeAttr escapes text for safe inclusion in a double-quoted attribute
// value.
func escapeAttr(s string) string {
	return attrReplacer.Replace(s)
}

// escapeComment neutralizes sequences that would end a comment early.
func escapeComment(s string) string {
	return strings.ReplaceAll(s, "-->", "--&gt;")
}
