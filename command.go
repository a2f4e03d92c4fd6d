/*
Package dynafluent – shared command builder state.

Builders are single-use: fluent calls mutate internal state until the
terminal Exec call dispatches the request. Exec marks the builder
executed; any fluent call or second Exec afterwards records a StateError
that the next terminal call surfaces. Errors raised mid-chain (template
generation, bad operators) are sticky: the first one wins and aborts the
chain at the terminal call.
*/
package dynafluent

import "fmt"

type builderState struct {
	registry *Registry
	expr     *expression
	executed bool
}

func newBuilderState(r *Registry, mode exprMode) builderState {
	return builderState{registry: r, expr: newExpression(r, mode)}
}

// mutable guards fluent calls against the executed state.
func (b *builderState) mutable(op string) bool {
	if b.executed {
		b.expr.fail(newStateError(fmt.Sprintf("%s called after the builder was executed", op)))
		return false
	}
	return b.expr.err == nil
}

// begin transitions the builder into the executed state, surfacing any
// sticky error first.
func (b *builderState) begin(op string) error {
	if b.expr.err != nil {
		return b.expr.err
	}
	if b.executed {
		return newStateError(fmt.Sprintf("%s builder already executed", op))
	}
	b.executed = true
	return nil
}

// render surfaces the sticky error for non-terminal Build calls.
func (b *builderState) render() error {
	return b.expr.err
}
