package xlstyle

import (
	"fmt"
	"strings"
)

// Severity indicates the severity of a validation issue.
type Severity int

const (
	SeverityError   Severity = iota // the style cannot be keyed losslessly
	SeverityWarning                 // the style is keyed correctly but ToExcelize drops part of it
)

// ValidationIssue represents a single problem found in a style.
type ValidationIssue struct {
	Severity Severity
	Field    string // dotted path, e.g. "border.top.color.argb"
	Message  string
}

// String formats the issue as "[ERROR] font.name: message" or "[WARN] ...".
func (v ValidationIssue) String() string {
	sev := "ERROR"
	if v.Severity == SeverityWarning {
		sev = "WARN"
	}
	return fmt.Sprintf("[%s] %s: %s", sev, v.Field, v.Message)
}

// Delimiter sets that break a value in each position of the grammar.
const (
	breaksText      = Sep1 + Sep3
	breaksEdgeStyle = Sep1 + Sep3 + Sep4
	breaksPattern   = Sep1 + Sep4
	breaksStop      = Sep1 + Sep6
	breaksNumFmt    = Sep1
)

// Validate checks s for values that would not survive Encode followed by
// Decode (errors) and for values ToExcelize cannot represent (warnings).
func Validate(s Style) []ValidationIssue {
	var issues []ValidationIssue
	check := func(field, value, breaks string) {
		if i := strings.IndexAny(value, breaks); i >= 0 {
			issues = append(issues, ValidationIssue{
				Severity: SeverityError,
				Field:    field,
				Message:  fmt.Sprintf("value %q contains reserved delimiter %q", value, value[i]),
			})
		}
	}
	checkColor := func(field string, c *Color, breaks string) {
		if c != nil {
			check(field+".argb", c.ARGB, breaks+Sep8)
		}
	}
	checkEdge := func(field string, e *Edge) {
		if e != nil {
			check(field+".style", e.Style, breaksEdgeStyle)
			checkColor(field+".color", e.Color, breaksEdgeStyle)
		}
	}

	if f := s.Font; f != nil {
		check("font.name", f.Name, breaksText)
		check("font.scheme", f.Scheme, breaksText)
		check("font.vertAlign", f.VertAlign, breaksText)
		checkColor("font.color", f.Color, breaksText)
		if u := f.Underline; u != nil && u.Style != "" {
			check("font.underline", u.Style, breaksText)
			if u.Style == "true" || u.Style == "false" {
				issues = append(issues, ValidationIssue{
					Severity: SeverityError,
					Field:    "font.underline",
					Message:  fmt.Sprintf("named underline %q is indistinguishable from the flag form", u.Style),
				})
			}
		}
	}
	if b := s.Border; b != nil {
		checkEdge("border.top", b.Top)
		checkEdge("border.left", b.Left)
		checkEdge("border.bottom", b.Bottom)
		checkEdge("border.right", b.Right)
		if b.Diagonal != nil {
			checkEdge("border.diagonal", &b.Diagonal.Edge)
		}
	}
	if a := s.Alignment; a != nil {
		check("alignment.horizontal", a.Horizontal, breaksText)
		check("alignment.vertical", a.Vertical, breaksText)
		check("alignment.readingOrder", a.ReadingOrder, breaksText)
	}
	switch f := s.Fill.(type) {
	case *PatternFill:
		if f != nil {
			check("fill.pattern", f.Pattern, breaksPattern)
			checkColor("fill.fgColor", f.FgColor, breaksPattern)
			checkColor("fill.bgColor", f.BgColor, breaksPattern)
		}
	case *GradientAngleFill:
		if f != nil {
			for i, st := range f.Stops {
				checkColor(fmt.Sprintf("fill.stops[%d].color", i), st.Color, breaksStop)
			}
		}
	case *GradientPathFill:
		if f != nil {
			for i, st := range f.Stops {
				checkColor(fmt.Sprintf("fill.stops[%d].color", i), st.Color, breaksStop)
			}
		}
	}
	check("numFmt", s.NumFmt, breaksNumFmt)

	issues = append(issues, conversionIssues(s)...)
	return issues
}
