/*
Package dynafluent – client boundary.

Client is the subset of the AWS SDK v2 DynamoDB client the builders
dispatch to. The real *dynamodb.Client satisfies it, as do test doubles.
Client failures are surfaced to the caller of the terminal operation with
no retries; the original error is preserved via errors.Unwrap.
*/
package dynafluent

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
)

// Client executes the request shapes the builders produce.
type Client interface {
	GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error)
	PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error)
	UpdateItem(ctx context.Context, params *dynamodb.UpdateItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error)
	DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error)
	Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error)
	TransactWriteItems(ctx context.Context, params *dynamodb.TransactWriteItemsInput, optFns ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error)
}

// logDispatch records every command handed to the client.
func (r *Registry) logDispatch(op string, detail map[string]any) {
	ctx := map[string]any{"table": r.tableName}
	for k, v := range detail {
		ctx[k] = v
	}
	r.log.Info("dynafluent "+op, ctx)
}
