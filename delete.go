package dynafluent

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// DeleteBuilder accumulates a key map and executes an unconditional
// delete unless condition guards were added.
type DeleteBuilder struct {
	builderState
	key  Item
	item Item
}

// Delete returns a builder for deleting one item from this table.
func (r *Registry) Delete() *DeleteBuilder {
	return &DeleteBuilder{
		builderState: newBuilderState(r, modeWrite),
		key:          Item{},
		item:         Item{},
	}
}

// Keys adds the primary key fields identifying the item.
func (d *DeleteBuilder) Keys(fields Item) *DeleteBuilder {
	if !d.mutable("Keys") {
		return d
	}
	resolved, err := d.registry.resolveKeyMap(fields)
	if err != nil {
		d.expr.fail(err)
		return d
	}
	for k, v := range resolved {
		d.key[k] = v
	}
	return d
}

// AttributeExists guards the delete on the attribute being present.
func (d *DeleteBuilder) AttributeExists(field string) *DeleteBuilder {
	if d.mutable("AttributeExists") {
		d.expr.attributeExists(field, true)
	}
	return d
}

// AttributeNotExists guards the delete on the attribute being absent.
func (d *DeleteBuilder) AttributeNotExists(field string) *DeleteBuilder {
	if d.mutable("AttributeNotExists") {
		d.expr.attributeExists(field, false)
	}
	return d
}

// Build renders the request without dispatching it.
func (d *DeleteBuilder) Build() (*dynamodb.DeleteItemInput, error) {
	if err := d.render(); err != nil {
		return nil, err
	}
	if len(d.key) == 0 {
		return nil, newConfigError("delete requires key fields")
	}
	key, err := marshalItem(d.key)
	if err != nil {
		return nil, err
	}
	values, err := d.expr.attributeValues()
	if err != nil {
		return nil, err
	}
	table := d.registry.tableName
	return &dynamodb.DeleteItemInput{
		TableName:                 &table,
		Key:                       key,
		ConditionExpression:       d.expr.conditionExpression(),
		ExpressionAttributeNames:  d.expr.attributeNames(),
		ExpressionAttributeValues: values,
	}, nil
}

// Exec dispatches the delete. The returned value is the builder's last
// known in-memory item state, which is empty because deletes never Set
// fields. It is not the deleted item.
func (d *DeleteBuilder) Exec(ctx context.Context) (Item, error) {
	if err := d.begin("delete"); err != nil {
		return nil, err
	}
	input, err := d.Build()
	if err != nil {
		return nil, err
	}
	client, err := d.registry.getClient()
	if err != nil {
		return nil, err
	}
	d.registry.logDispatch("delete", map[string]any{"key": d.key})
	if _, err := client.DeleteItem(ctx, input); err != nil {
		return nil, newClientError("delete", err)
	}
	return d.item, nil
}
