package dynafluent

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// TransactBuilder accumulates an ordered sequence of already-configured
// write builders and submits their pre-built requests as one atomic
// TransactWriteItems call. The external atomic-write contract is
// all-or-nothing, so there is no partial-failure handling here.
type TransactBuilder struct {
	registry *Registry
	item     Item
	order    []func() (types.TransactWriteItem, error)
	executed bool
	err      error
}

// Transact returns a builder for an atomic multi-item write. Member
// builders may target other tables; this registry only supplies the
// client and logger.
func (r *Registry) Transact() *TransactBuilder {
	return &TransactBuilder{registry: r, item: Item{}}
}

func (t *TransactBuilder) fail(err error) {
	if t.err == nil {
		t.err = err
	}
}

func (t *TransactBuilder) mutable(op string) bool {
	if t.executed {
		t.fail(newStateError(op + " called after the transaction was executed"))
		return false
	}
	return t.err == nil
}

// Put appends a pre-configured put builder to the transaction.
func (t *TransactBuilder) Put(b *PutBuilder) *TransactBuilder {
	if !t.mutable("Put") {
		return t
	}
	t.order = append(t.order, func() (types.TransactWriteItem, error) {
		input, err := b.Build()
		if err != nil {
			return types.TransactWriteItem{}, err
		}
		return types.TransactWriteItem{Put: &types.Put{
			TableName:                 input.TableName,
			Item:                      input.Item,
			ConditionExpression:       input.ConditionExpression,
			ExpressionAttributeNames:  input.ExpressionAttributeNames,
			ExpressionAttributeValues: input.ExpressionAttributeValues,
		}}, nil
	})
	return t
}

// Update appends a pre-configured update builder to the transaction.
func (t *TransactBuilder) Update(b *UpdateBuilder) *TransactBuilder {
	if !t.mutable("Update") {
		return t
	}
	t.order = append(t.order, func() (types.TransactWriteItem, error) {
		input, err := b.Build()
		if err != nil {
			return types.TransactWriteItem{}, err
		}
		return types.TransactWriteItem{Update: &types.Update{
			TableName:                 input.TableName,
			Key:                       input.Key,
			UpdateExpression:          input.UpdateExpression,
			ConditionExpression:       input.ConditionExpression,
			ExpressionAttributeNames:  input.ExpressionAttributeNames,
			ExpressionAttributeValues: input.ExpressionAttributeValues,
		}}, nil
	})
	return t
}

// Delete appends a pre-configured delete builder to the transaction.
func (t *TransactBuilder) Delete(b *DeleteBuilder) *TransactBuilder {
	if !t.mutable("Delete") {
		return t
	}
	t.order = append(t.order, func() (types.TransactWriteItem, error) {
		input, err := b.Build()
		if err != nil {
			return types.TransactWriteItem{}, err
		}
		return types.TransactWriteItem{Delete: &types.Delete{
			TableName:                 input.TableName,
			Key:                       input.Key,
			ConditionExpression:       input.ConditionExpression,
			ExpressionAttributeNames:  input.ExpressionAttributeNames,
			ExpressionAttributeValues: input.ExpressionAttributeValues,
		}}, nil
	})
	return t
}

// Build renders the transaction without dispatching it, preserving the
// order in which members were added.
func (t *TransactBuilder) Build() (*dynamodb.TransactWriteItemsInput, error) {
	if t.err != nil {
		return nil, t.err
	}
	if len(t.order) == 0 {
		return nil, newConfigError("transaction requires at least one member operation")
	}
	input := &dynamodb.TransactWriteItemsInput{}
	for _, build := range t.order {
		ti, err := build()
		if err != nil {
			return nil, err
		}
		input.TransactItems = append(input.TransactItems, ti)
	}
	return input, nil
}

// Exec dispatches the transaction. The returned value is the transaction
// builder's own in-memory item state, not the state of its members. It is
// empty in practice.
func (t *TransactBuilder) Exec(ctx context.Context) (Item, error) {
	if t.err != nil {
		return nil, t.err
	}
	if t.executed {
		return nil, newStateError("transact builder already executed")
	}
	t.executed = true
	input, err := t.Build()
	if err != nil {
		return nil, err
	}
	client, err := t.registry.getClient()
	if err != nil {
		return nil, err
	}
	t.registry.logDispatch("transactWrite", map[string]any{"members": len(input.TransactItems)})
	if _, err := client.TransactWriteItems(ctx, input); err != nil {
		return nil, newClientError("transactWrite", err)
	}
	return t.item, nil
}
