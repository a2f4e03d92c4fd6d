package dynafluent

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// QueryBuilder accumulates key conditions and filter conditions and
// executes a Query. Clauses are joined with " and "; mixed and/or and
// grouping are not supported.
type QueryBuilder struct {
	builderState
}

// Query returns a builder for querying this table.
func (r *Registry) Query() *QueryBuilder {
	return &QueryBuilder{builderState: newBuilderState(r, modeQuery)}
}

// Keys pushes an equality key condition for every field/value pair.
// Template fields generate their wire value from the supplied variables.
func (q *QueryBuilder) Keys(fields Item) *QueryBuilder {
	if q.mutable("Keys") {
		q.expr.addKeys(fields)
	}
	return q
}

// BeginsWith pushes a sort-key prefix condition. It is a key condition,
// not a filter.
func (q *QueryBuilder) BeginsWith(field, prefix string) *QueryBuilder {
	if q.mutable("BeginsWith") {
		q.expr.beginsWith(field, prefix)
	}
	return q
}

// Contains pushes a contains(...) filter condition.
func (q *QueryBuilder) Contains(field string, operand any) *QueryBuilder {
	if q.mutable("Contains") {
		q.expr.contains(field, operand)
	}
	return q
}

// Size pushes a size(...) comparison filter condition.
func (q *QueryBuilder) Size(field, operator string, value any) *QueryBuilder {
	if q.mutable("Size") {
		q.expr.size(field, operator, value)
	}
	return q
}

// AttributeType pushes an attribute_type(...) filter condition.
func (q *QueryBuilder) AttributeType(field, typeName string) *QueryBuilder {
	if q.mutable("AttributeType") {
		q.expr.attributeType(field, typeName)
	}
	return q
}

// AttributeExists pushes an attribute_exists(...) filter condition.
func (q *QueryBuilder) AttributeExists(field string) *QueryBuilder {
	if q.mutable("AttributeExists") {
		q.expr.attributeExists(field, true)
	}
	return q
}

// AttributeNotExists pushes an attribute_not_exists(...) filter condition.
func (q *QueryBuilder) AttributeNotExists(field string) *QueryBuilder {
	if q.mutable("AttributeNotExists") {
		q.expr.attributeExists(field, false)
	}
	return q
}

// Limit caps the number of items evaluated.
func (q *QueryBuilder) Limit(n int32) *QueryBuilder {
	if q.mutable("Limit") {
		q.expr.setLimit(n)
	}
	return q
}

// Index targets a secondary index instead of the primary one.
func (q *QueryBuilder) Index(name string) *QueryBuilder {
	if q.mutable("Index") {
		q.expr.setIndex(name)
	}
	return q
}

// Build renders the request without dispatching it. Empty expressions and
// maps are omitted; Limit and IndexName are set only when provided.
func (q *QueryBuilder) Build() (*dynamodb.QueryInput, error) {
	if err := q.render(); err != nil {
		return nil, err
	}
	values, err := q.expr.attributeValues()
	if err != nil {
		return nil, err
	}
	table := q.registry.tableName
	input := &dynamodb.QueryInput{
		TableName:                 &table,
		KeyConditionExpression:    q.expr.keyConditionExpression(),
		FilterExpression:          q.expr.filterExpression(),
		ExpressionAttributeNames:  q.expr.attributeNames(),
		ExpressionAttributeValues: values,
		Limit:                     q.expr.limit,
	}
	if q.expr.indexName != "" {
		index := q.expr.indexName
		input.IndexName = &index
	}
	return input, nil
}

// Exec dispatches the query and returns the matching items.
func (q *QueryBuilder) Exec(ctx context.Context) ([]Item, error) {
	if err := q.begin("query"); err != nil {
		return nil, err
	}
	input, err := q.Build()
	if err != nil {
		return nil, err
	}
	client, err := q.registry.getClient()
	if err != nil {
		return nil, err
	}
	q.registry.logDispatch("query", map[string]any{"index": q.expr.indexName})
	out, err := client.Query(ctx, input)
	if err != nil {
		return nil, newClientError("query", err)
	}
	return unmarshalItems(out.Items)
}
