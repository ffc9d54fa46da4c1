package xmp

import (
	"fmt"
	"math"
	"strings"
)

// Numeric emission helpers. Most groups round to signed integers; exposure
// uses two decimals, point-color vectors and mask geometry six. Absent
// fields emit nothing.

func fmtInt(v float64) string {
	i := int(math.Round(v))
	if i > 0 {
		return fmt.Sprintf("+%d", i)
	}
	return fmt.Sprintf("%d", i)
}

func fmtFixed(v float64, prec int) string {
	if v == 0 {
		return fmt.Sprintf("%.*f", prec, 0.0)
	}
	return fmt.Sprintf("%+.*f", prec, v)
}

var attrEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
)

var attrUnescaper = strings.NewReplacer(
	"&quot;", `"`,
	"&lt;", "<",
	"&gt;", ">",
	"&amp;", "&",
)

func escape(s string) string   { return attrEscaper.Replace(s) }
func unescape(s string) string { return attrUnescaper.Replace(s) }

// attrList accumulates XML attribute lines with uniform indentation.
type attrList struct {
	indent string
	attrs  []string
}

func (l *attrList) add(name, value string) {
	l.attrs = append(l.attrs, fmt.Sprintf("%s%s=\"%s\"", l.indent, name, escape(value)))
}

// addInt emits a signed-integer attribute, skipping absent fields.
func (l *attrList) addInt(name string, p *float64) {
	if p == nil {
		return
	}
	l.add(name, fmtInt(*p))
}

// addFixed emits a fixed-point attribute with prec decimals, skipping
// absent fields.
func (l *attrList) addFixed(name string, p *float64, prec int) {
	if p == nil {
		return
	}
	l.add(name, fmtFixed(*p, prec))
}

func (l *attrList) String() string {
	return strings.Join(l.attrs, "\n")
}
