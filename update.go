package dynafluent

import (
	"context"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// UpdateBuilder accumulates a key map and a set of fields to update. The
// rendered UpdateExpression covers exactly the fields that were Set.
type UpdateBuilder struct {
	builderState
	key  Item
	sets []string
}

// Update returns a builder for updating one item in this table.
func (r *Registry) Update() *UpdateBuilder {
	return &UpdateBuilder{builderState: newBuilderState(r, modeWrite), key: Item{}}
}

// Keys adds the primary key fields identifying the item.
func (u *UpdateBuilder) Keys(fields Item) *UpdateBuilder {
	if !u.mutable("Keys") {
		return u
	}
	resolved, err := u.registry.resolveKeyMap(fields)
	if err != nil {
		u.expr.fail(err)
		return u
	}
	for k, v := range resolved {
		u.key[k] = v
	}
	return u
}

// Set adds one field assignment to the update expression.
func (u *UpdateBuilder) Set(field string, value any) *UpdateBuilder {
	if !u.mutable("Set") {
		return u
	}
	a := u.registry.fields[field]
	if a != nil {
		resolved, err := a.resolveWireValue(field, value)
		if err != nil {
			u.expr.fail(err)
			return u
		}
		value = resolved
	}
	wire := u.expr.nameFor(field)
	u.sets = append(u.sets, fmt.Sprintf("#%s = %s", wire, u.expr.valueFor(wire, "", value)))
	return u
}

// AttributeExists guards the update on the attribute being present.
func (u *UpdateBuilder) AttributeExists(field string) *UpdateBuilder {
	if u.mutable("AttributeExists") {
		u.expr.attributeExists(field, true)
	}
	return u
}

// AttributeNotExists guards the update on the attribute being absent.
func (u *UpdateBuilder) AttributeNotExists(field string) *UpdateBuilder {
	if u.mutable("AttributeNotExists") {
		u.expr.attributeExists(field, false)
	}
	return u
}

// Build renders the request without dispatching it.
func (u *UpdateBuilder) Build() (*dynamodb.UpdateItemInput, error) {
	if err := u.render(); err != nil {
		return nil, err
	}
	if len(u.key) == 0 {
		return nil, newConfigError("update requires key fields")
	}
	if len(u.sets) == 0 {
		return nil, newConfigError("update requires at least one Set field")
	}
	key, err := marshalItem(u.key)
	if err != nil {
		return nil, err
	}
	values, err := u.expr.attributeValues()
	if err != nil {
		return nil, err
	}
	table := u.registry.tableName
	updateExpr := "SET " + strings.Join(u.sets, ", ")
	return &dynamodb.UpdateItemInput{
		TableName:                 &table,
		Key:                       key,
		UpdateExpression:          &updateExpr,
		ConditionExpression:       u.expr.conditionExpression(),
		ExpressionAttributeNames:  u.expr.attributeNames(),
		ExpressionAttributeValues: values,
	}, nil
}

// Exec dispatches the update. Fire-and-forget semantics: the post-update
// item is not returned.
func (u *UpdateBuilder) Exec(ctx context.Context) error {
	if err := u.begin("update"); err != nil {
		return err
	}
	input, err := u.Build()
	if err != nil {
		return err
	}
	client, err := u.registry.getClient()
	if err != nil {
		return err
	}
	u.registry.logDispatch("update", map[string]any{"key": u.key, "expression": *input.UpdateExpression})
	if _, err := client.UpdateItem(ctx, input); err != nil {
		return newClientError("update", err)
	}
	return nil
}
