/*
Package dynafluent – attribute descriptors.

A descriptor declares how one logical field is stored: either a plain
attribute (optionally renamed and transformed) or a template attribute
whose stored value is generated from a key template.
*/
package dynafluent

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/dynafluent/dynafluent/internal/uid"
)

type attrKind int

const (
	attrPlain attrKind = iota
	attrTemplate
)

// Transform converts a caller-supplied value into its stored form. It must
// be pure and total over the field's declared value domain.
type Transform func(value any) any

// Attribute describes one schema field. Descriptors are configured before
// Registry.Schema is called and must not be mutated afterwards; builders
// only read them.
type Attribute struct {
	kind      attrKind
	wireName  string
	transform Transform
	template  *Template
	generate  string
}

// Attr declares a plain attribute.
func Attr() *Attribute {
	return &Attribute{kind: attrPlain}
}

// TemplateAttr declares a template attribute whose stored value is derived
// from the given key template. Transforms are ignored for template fields.
func TemplateAttr(literal string) *Attribute {
	return &Attribute{kind: attrTemplate, template: ParseTemplate(literal)}
}

// Wire sets an explicit store-side attribute name.
func (a *Attribute) Wire(name string) *Attribute {
	a.wireName = name
	return a
}

// WithTransform sets the value transform applied on writes.
func (a *Attribute) WithTransform(fn Transform) *Attribute {
	a.transform = fn
	return a
}

// Generated declares that the field value is generated when absent from a
// put. Supported generators: "uuid", "ulid", "uid" and "uid(n)".
func (a *Attribute) Generated(gen string) *Attribute {
	a.generate = gen
	return a
}

// Template returns the attribute's key template, or nil for plain fields.
func (a *Attribute) Template() *Template { return a.template }

// resolveWireValue converts a caller-supplied value into its stored form.
// Template fields expect a map of variable name to string; anything else
// is a TypeError. Plain fields run the transform when one is set.
func (a *Attribute) resolveWireValue(field string, raw any) (any, error) {
	switch a.kind {
	case attrTemplate:
		vars, err := templateVars(field, raw)
		if err != nil {
			return nil, err
		}
		return a.template.Generate(vars)
	case attrPlain:
		if a.transform != nil {
			return a.transform(raw), nil
		}
		return raw, nil
	}
	return nil, NewError(fmt.Sprintf("unknown attribute kind for field %q", field),
		WithCode(ErrType))
}

// templateVars coerces raw into the variable map a template field expects.
func templateVars(field string, raw any) (map[string]string, error) {
	switch v := raw.(type) {
	case map[string]string:
		return v, nil
	case map[string]any:
		vars := make(map[string]string, len(v))
		for k, val := range v {
			s, ok := val.(string)
			if !ok {
				return nil, NewError(
					fmt.Sprintf("template variable %q for field %q must be a string, got %T", k, field, val),
					WithCode(ErrType))
			}
			vars[k] = s
		}
		return vars, nil
	}
	return nil, NewError(
		fmt.Sprintf("template field %q requires a map of variables, got %T", field, raw),
		WithCode(ErrType))
}

// generateValue produces a value for a Generated field.
func (a *Attribute) generateValue() string {
	switch {
	case a.generate == "uuid":
		return uuid.NewString()
	case a.generate == "ulid":
		return uid.ULID()
	case a.generate == "uid":
		return uid.UID(10)
	case strings.HasPrefix(a.generate, "uid("):
		n := 10
		fmt.Sscanf(a.generate, "uid(%d)", &n) //nolint:errcheck
		return uid.UID(n)
	}
	return uuid.NewString()
}
