package markup

import "strings"

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

// attr escapes an attribute value. Element text is emitted verbatim so
// authors can keep inline markup such as <b> or <img>.
func attr(value string) string {
	return attrEscaper.Replace(value)
}

// labelAttr renders ` label="..."`, or nothing when label is empty.
func labelAttr(label string) string {
	if label == "" {
		return ""
	}
	return ` label="` + attr(label) + `"`
}
