package dynafluent

import (
	"context"
	"sort"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// PutBuilder accumulates a full item via repeated Set calls and executes
// an unconditional upsert unless condition guards were added.
type PutBuilder struct {
	builderState
	item Item
	set  map[string]bool // logical fields supplied by the caller
}

// Put returns a builder for writing one item to this table.
func (r *Registry) Put() *PutBuilder {
	return &PutBuilder{
		builderState: newBuilderState(r, modeWrite),
		item:         Item{},
		set:          map[string]bool{},
	}
}

// Set stores one field on the item. Template fields generate their wire
// value from the supplied variable map; plain fields run their transform.
func (p *PutBuilder) Set(field string, value any) *PutBuilder {
	if !p.mutable("Set") {
		return p
	}
	a := p.registry.fields[field]
	if a != nil {
		resolved, err := a.resolveWireValue(field, value)
		if err != nil {
			p.expr.fail(err)
			return p
		}
		value = resolved
	}
	p.item[p.registry.GetAttributeName(field)] = value
	p.set[field] = true
	return p
}

// AttributeExists guards the write on the attribute being present.
func (p *PutBuilder) AttributeExists(field string) *PutBuilder {
	if p.mutable("AttributeExists") {
		p.expr.attributeExists(field, true)
	}
	return p
}

// AttributeNotExists guards the write on the attribute being absent.
func (p *PutBuilder) AttributeNotExists(field string) *PutBuilder {
	if p.mutable("AttributeNotExists") {
		p.expr.attributeExists(field, false)
	}
	return p
}

// Build renders the request without dispatching it. Generated fields that
// the caller did not set are filled here.
func (p *PutBuilder) Build() (*dynamodb.PutItemInput, error) {
	if err := p.render(); err != nil {
		return nil, err
	}
	p.fillGenerated()
	item, err := marshalItem(p.item)
	if err != nil {
		return nil, err
	}
	values, err := p.expr.attributeValues()
	if err != nil {
		return nil, err
	}
	table := p.registry.tableName
	return &dynamodb.PutItemInput{
		TableName:                 &table,
		Item:                      item,
		ConditionExpression:       p.expr.conditionExpression(),
		ExpressionAttributeNames:  p.expr.attributeNames(),
		ExpressionAttributeValues: values,
	}, nil
}

// Exec dispatches the upsert and returns the item as written.
func (p *PutBuilder) Exec(ctx context.Context) (Item, error) {
	if err := p.begin("put"); err != nil {
		return nil, err
	}
	input, err := p.Build()
	if err != nil {
		return nil, err
	}
	client, err := p.registry.getClient()
	if err != nil {
		return nil, err
	}
	p.registry.logDispatch("put", map[string]any{"item": p.item})
	if _, err := client.PutItem(ctx, input); err != nil {
		return nil, newClientError("put", err)
	}
	return p.item, nil
}

func (p *PutBuilder) fillGenerated() {
	fields := make([]string, 0, len(p.registry.fields))
	for name := range p.registry.fields {
		fields = append(fields, name)
	}
	sort.Strings(fields)
	for _, name := range fields {
		a := p.registry.fields[name]
		if a.generate == "" || p.set[name] {
			continue
		}
		p.item[p.registry.GetAttributeName(name)] = a.generateValue()
	}
}
