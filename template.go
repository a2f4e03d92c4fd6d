/*
Package dynafluent – key templates.

A template is a literal key pattern such as "USER#{userId}" or
"ORDER#{?orderId}". "{name}" declares a required variable and "{?name}" an
optional one. Brace sequences that do not match the placeholder grammar
pass through untouched.
*/
package dynafluent

import (
	"fmt"
	"regexp"
	"strings"
)

// placeholderPattern matches "{name}" and "{?name}" where name is one or
// more word characters.
var placeholderPattern = regexp.MustCompile(`\{(\??)(\w+)\}`)

// Template is a parsed key template. Construct with ParseTemplate; a
// Template is immutable and safe for concurrent use.
//
// A variable name may occur more than once in a literal. Its
// required/optional classification is fixed by the first occurrence and
// every occurrence substitutes the same value.
type Template struct {
	literal  string
	required []string
	optional []string
}

// ParseTemplate scans the literal once, left to right, recording each
// placeholder name in encounter order.
func ParseTemplate(literal string) *Template {
	t := &Template{literal: literal}
	seen := map[string]bool{}
	for _, m := range placeholderPattern.FindAllStringSubmatch(literal, -1) {
		name := m[2]
		if seen[name] {
			continue
		}
		seen[name] = true
		if m[1] == "?" {
			t.optional = append(t.optional, name)
		} else {
			t.required = append(t.required, name)
		}
	}
	return t
}

// Literal returns the original template string.
func (t *Template) Literal() string { return t.literal }

// RequiredKeys returns the required variable names in first-occurrence order.
func (t *Template) RequiredKeys() []string {
	return append([]string(nil), t.required...)
}

// OptionalKeys returns the optional variable names in first-occurrence order.
func (t *Template) OptionalKeys() []string {
	return append([]string(nil), t.optional...)
}

// Generate substitutes every placeholder with its value from values.
// Unset optional variables substitute the empty string. If any required
// variable is absent, Generate fails with ErrMissingVariable naming the
// first missing key in parse order, before any substitution occurs.
func (t *Template) Generate(values map[string]string) (string, error) {
	for _, key := range t.required {
		if _, ok := values[key]; !ok {
			return "", NewError(
				fmt.Sprintf("missing required variable %q for template %q", key, t.literal),
				WithCode(ErrMissingVariable),
				WithContext(map[string]any{"variable": key, "template": t.literal}))
		}
	}
	out := placeholderPattern.ReplaceAllStringFunc(t.literal, func(m string) string {
		name := strings.TrimLeft(m[1:len(m)-1], "?")
		return values[name]
	})
	return out, nil
}
