/*
Package dynafluent – table schema registry.

A Registry binds a table name, a region, a field map and schema-wide
options. It is configured once at startup and is read-only afterwards, so
it may be shared freely across goroutines. Builders created from a
Registry only ever read it.
*/
package dynafluent

import (
	"fmt"
	"sort"
	"strings"
)

// Options holds schema-wide behavioural flags.
type Options struct {
	// SnakeCaseWireNames derives wire attribute names by snake-casing the
	// logical key when no explicit wire name is set.
	SnakeCaseWireNames bool
}

// Fields maps a logical field key to its attribute descriptor.
type Fields map[string]*Attribute

// Registry binds a table name, region, fields and options.
type Registry struct {
	tableName string
	region    string
	fields    Fields
	options   Options

	client Client
	log    Logger
}

// Table creates a Registry for the named table. The ambient default
// region (AWS_REGION / AWS_DEFAULT_REGION, optionally from a .env file)
// is picked up immediately; Region overrides it.
func Table(name string) (*Registry, error) {
	if name == "" {
		return nil, newConfigError(`missing "table" name`)
	}
	return &Registry{
		tableName: name,
		region:    DefaultRegion(),
		fields:    Fields{},
		log:       leveledLogger{},
	}, nil
}

// Region sets the table region. An empty name falls back to the ambient
// default; if neither is available the registry is invalid.
func (r *Registry) Region(name string) (*Registry, error) {
	if name == "" && r.region == "" {
		return nil, newConfigError(
			fmt.Sprintf(`missing region for table %q and no ambient default is configured`, r.tableName))
	}
	if name != "" {
		r.region = name
	}
	return r, nil
}

// Schema replaces the field map and options. It is not mergeable: the
// last call wins. The descriptors and the map are owned by the registry
// after this call and must not be mutated.
func (r *Registry) Schema(fields Fields, opts ...Options) *Registry {
	copied := make(Fields, len(fields))
	for k, v := range fields {
		copied[k] = v
	}
	r.fields = copied
	if len(opts) > 0 {
		r.options = opts[len(opts)-1]
	} else {
		r.options = Options{}
	}
	return r
}

// Client sets the DynamoDB client used by builders created from this
// registry. Use Connect to build one from the configured region.
func (r *Registry) Client(c Client) *Registry {
	r.client = c
	return r
}

// Logger replaces the registry logger.
func (r *Registry) Logger(l Logger) *Registry {
	if l != nil {
		r.log = l
	}
	return r
}

// Verbose enables trace logging of every dispatched command.
func (r *Registry) Verbose() *Registry {
	r.log = leveledLogger{verbose: true}
	return r
}

// GetAttributeName resolves a logical field key to its wire attribute
// name: the descriptor's explicit wire name, else the key itself,
// snake-cased when the option is set. Pure function of the registry state.
func (r *Registry) GetAttributeName(key string) string {
	if a, ok := r.fields[key]; ok && a.wireName != "" {
		return a.wireName
	}
	if r.options.SnakeCaseWireNames {
		return toSnakeCase(key)
	}
	return key
}

// GetSchema returns the field map. Callers must treat it as read-only.
func (r *Registry) GetSchema() Fields { return r.fields }

// GetTable returns the table name.
func (r *Registry) GetTable() string { return r.tableName }

// GetRegion returns the resolved region, which may be empty when no
// region was set and no ambient default exists.
func (r *Registry) GetRegion() string { return r.region }

func (r *Registry) getClient() (Client, error) {
	if r.client == nil {
		return nil, newConfigError(fmt.Sprintf(`table %q has no client configured`, r.tableName))
	}
	return r.client, nil
}

// resolveKeyMap converts logical field/value pairs into wire-named,
// wire-valued pairs. Template fields generate their value; unknown fields
// pass through under their derived wire name.
func (r *Registry) resolveKeyMap(fields Item) (Item, error) {
	out := make(Item, len(fields))
	for _, field := range sortedFieldNames(fields) {
		value := fields[field]
		if a, ok := r.fields[field]; ok {
			resolved, err := a.resolveWireValue(field, value)
			if err != nil {
				return nil, err
			}
			value = resolved
		}
		out[r.GetAttributeName(field)] = value
	}
	return out, nil
}

// toSnakeCase inserts "_" before every interior upper-case letter and
// lower-cases the result: "orderDate" -> "order_date". Purely structural;
// acronyms and digits are not special-cased. Idempotent.
func toSnakeCase(s string) string {
	var b strings.Builder
	b.Grow(len(s) + 2)
	for i, c := range s {
		if c >= 'A' && c <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			c += 'a' - 'A'
		}
		b.WriteRune(c)
	}
	return b.String()
}

// sortedFieldNames returns the map keys in lexical order so that rendered
// expressions are stable for a given input.
func sortedFieldNames(m Item) []string {
	names := make([]string, 0, len(m))
	for k := range m {
		names = append(names, k)
	}
	sort.Strings(names)
	return names
}
