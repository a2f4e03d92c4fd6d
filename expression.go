/*
Package dynafluent – expression accumulator.

The expression accumulates name placeholders, value placeholders and
condition clauses for one command builder and renders them into the
expression strings DynamoDB expects. Placeholder keys are derived from
the wire attribute name plus an operation-specific suffix so that two
different conditions on the same field never collide.

Clauses are joined with " and ". Mixed and/or and grouping are not
supported.
*/
package dynafluent

import (
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

type exprMode int

const (
	// modeQuery routes comparison clauses into the key condition and
	// filter lists of a Query request.
	modeQuery exprMode = iota
	// modeWrite routes clauses into the condition expression of a
	// put/update/delete request.
	modeWrite
)

// sizeOperators are the comparators accepted by size conditions.
var sizeOperators = map[string]bool{
	"<": true, "<=": true, "=": true, ">=": true, ">": true, "<>": true,
}

// expression is owned exclusively by one command builder and never shared.
type expression struct {
	registry *Registry
	mode     exprMode

	keys       []string
	filters    []string
	conditions []string
	names      map[string]string
	values     map[string]any

	limit     *int32
	indexName string

	// first recorded failure; surfaced by the builder's terminal call
	err error
}

func newExpression(r *Registry, mode exprMode) *expression {
	return &expression{
		registry: r,
		mode:     mode,
		names:    map[string]string{},
		values:   map[string]any{},
	}
}

func (e *expression) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

// nameFor registers the name placeholder for a logical field and returns
// the wire attribute name.
func (e *expression) nameFor(field string) string {
	wire := e.registry.GetAttributeName(field)
	e.names["#"+wire] = wire
	return wire
}

// valueFor registers a value placeholder. suffix distinguishes operations
// on the same field; last write per placeholder key wins.
func (e *expression) valueFor(wire, suffix string, value any) string {
	key := ":" + wire + suffix
	e.values[key] = value
	return key
}

// push routes a non-key clause according to the expression mode.
func (e *expression) push(clause string) {
	if e.mode == modeWrite {
		e.conditions = append(e.conditions, clause)
	} else {
		e.filters = append(e.filters, clause)
	}
}

// addKeys pushes an equality key condition for every field/value pair.
// Template fields generate their wire value first. Repeating a field
// pushes a duplicate clause.
func (e *expression) addKeys(fields Item) {
	for _, field := range sortedFieldNames(fields) {
		value := fields[field]
		if a, ok := e.registry.fields[field]; ok {
			resolved, err := a.resolveWireValue(field, value)
			if err != nil {
				e.fail(err)
				return
			}
			value = resolved
		}
		wire := e.nameFor(field)
		e.keys = append(e.keys, fmt.Sprintf("#%s = %s", wire, e.valueFor(wire, "", value)))
	}
}

func (e *expression) attributeExists(field string, exists bool) {
	wire := e.nameFor(field)
	fn := "attribute_exists"
	if !exists {
		fn = "attribute_not_exists"
	}
	e.push(fmt.Sprintf("%s(#%s)", fn, wire))
}

func (e *expression) attributeType(field, typeName string) {
	wire := e.nameFor(field)
	e.push(fmt.Sprintf("attribute_type(#%s, %s)", wire, e.valueFor(wire, "_type", typeName)))
}

func (e *expression) contains(field string, operand any) {
	wire := e.nameFor(field)
	e.push(fmt.Sprintf("contains(#%s, %s)", wire, e.valueFor(wire, "_contains", operand)))
}

// beginsWith is a key condition, matching sort-key prefix queries. In
// write mode it becomes a condition clause.
func (e *expression) beginsWith(field, prefix string) {
	wire := e.nameFor(field)
	clause := fmt.Sprintf("begins_with(#%s, %s)", wire, e.valueFor(wire, "_begins", prefix))
	if e.mode == modeQuery {
		e.keys = append(e.keys, clause)
	} else {
		e.conditions = append(e.conditions, clause)
	}
}

func (e *expression) size(field, operator string, value any) {
	if !sizeOperators[operator] {
		e.fail(NewError(fmt.Sprintf("invalid size operator %q", operator), WithCode(ErrType)))
		return
	}
	wire := e.nameFor(field)
	e.push(fmt.Sprintf("size(#%s) %s %s", wire, operator, e.valueFor(wire, "_size", value)))
}

func (e *expression) setLimit(n int32) {
	e.limit = &n
}

func (e *expression) setIndex(name string) {
	e.indexName = name
}

func joined(clauses []string) *string {
	if len(clauses) == 0 {
		return nil
	}
	s := strings.Join(clauses, " and ")
	return &s
}

func (e *expression) keyConditionExpression() *string { return joined(e.keys) }
func (e *expression) filterExpression() *string       { return joined(e.filters) }
func (e *expression) conditionExpression() *string    { return joined(e.conditions) }

// attributeNames returns the accumulated name map, or nil when empty so
// the request field is omitted.
func (e *expression) attributeNames() map[string]string {
	if len(e.names) == 0 {
		return nil
	}
	return e.names
}

// attributeValues marshals the accumulated value map, or nil when empty.
func (e *expression) attributeValues() (map[string]types.AttributeValue, error) {
	if len(e.values) == 0 {
		return nil, nil
	}
	wired := toWireMap(e.values)
	av, err := attributevalue.MarshalMap(wired)
	if err != nil {
		return nil, NewError("cannot marshal expression values", WithCode(ErrType), WithCause(err))
	}
	return av, nil
}
