package dynafluent

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// GetBuilder accumulates a single equality key map and executes a point
// lookup.
type GetBuilder struct {
	builderState
	key Item
}

// Get returns a builder for a point lookup against this table.
func (r *Registry) Get() *GetBuilder {
	return &GetBuilder{builderState: newBuilderState(r, modeQuery), key: Item{}}
}

// Keys adds the primary key fields. Template fields generate their wire
// value from the supplied variable map.
func (g *GetBuilder) Keys(fields Item) *GetBuilder {
	if !g.mutable("Keys") {
		return g
	}
	resolved, err := g.registry.resolveKeyMap(fields)
	if err != nil {
		g.expr.fail(err)
		return g
	}
	for k, v := range resolved {
		g.key[k] = v
	}
	return g
}

// Build renders the request without dispatching it.
func (g *GetBuilder) Build() (*dynamodb.GetItemInput, error) {
	if err := g.render(); err != nil {
		return nil, err
	}
	if len(g.key) == 0 {
		return nil, newConfigError("get requires at least one key field")
	}
	key, err := marshalItem(g.key)
	if err != nil {
		return nil, err
	}
	table := g.registry.tableName
	return &dynamodb.GetItemInput{TableName: &table, Key: key}, nil
}

// Exec dispatches the lookup and returns the stored item, or nil when the
// item does not exist.
func (g *GetBuilder) Exec(ctx context.Context) (Item, error) {
	if err := g.begin("get"); err != nil {
		return nil, err
	}
	input, err := g.Build()
	if err != nil {
		return nil, err
	}
	client, err := g.registry.getClient()
	if err != nil {
		return nil, err
	}
	g.registry.logDispatch("get", map[string]any{"key": g.key})
	out, err := client.GetItem(ctx, input)
	if err != nil {
		return nil, newClientError("get", err)
	}
	return unmarshalItem(out.Item)
}
