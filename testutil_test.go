package dynafluent

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/stretchr/testify/require"
)

// mockClient records the last input of every operation and returns
// canned outputs.
type mockClient struct {
	getIn      *dynamodb.GetItemInput
	putIn      *dynamodb.PutItemInput
	updateIn   *dynamodb.UpdateItemInput
	deleteIn   *dynamodb.DeleteItemInput
	queryIn    *dynamodb.QueryInput
	transactIn *dynamodb.TransactWriteItemsInput

	getOut   *dynamodb.GetItemOutput
	queryOut *dynamodb.QueryOutput

	err error
}

func (m *mockClient) GetItem(_ context.Context, in *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	m.getIn = in
	if m.err != nil {
		return nil, m.err
	}
	if m.getOut != nil {
		return m.getOut, nil
	}
	return &dynamodb.GetItemOutput{}, nil
}

func (m *mockClient) PutItem(_ context.Context, in *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	m.putIn = in
	if m.err != nil {
		return nil, m.err
	}
	return &dynamodb.PutItemOutput{}, nil
}

func (m *mockClient) UpdateItem(_ context.Context, in *dynamodb.UpdateItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.UpdateItemOutput, error) {
	m.updateIn = in
	if m.err != nil {
		return nil, m.err
	}
	return &dynamodb.UpdateItemOutput{}, nil
}

func (m *mockClient) DeleteItem(_ context.Context, in *dynamodb.DeleteItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	m.deleteIn = in
	if m.err != nil {
		return nil, m.err
	}
	return &dynamodb.DeleteItemOutput{}, nil
}

func (m *mockClient) Query(_ context.Context, in *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	m.queryIn = in
	if m.err != nil {
		return nil, m.err
	}
	if m.queryOut != nil {
		return m.queryOut, nil
	}
	return &dynamodb.QueryOutput{}, nil
}

func (m *mockClient) TransactWriteItems(_ context.Context, in *dynamodb.TransactWriteItemsInput, _ ...func(*dynamodb.Options)) (*dynamodb.TransactWriteItemsOutput, error) {
	m.transactIn = in
	if m.err != nil {
		return nil, m.err
	}
	return &dynamodb.TransactWriteItemsOutput{}, nil
}

// newTestRegistry builds an orders registry with a template pk, a plain
// address field and a renamed date field.
func newTestRegistry(t *testing.T, client Client) *Registry {
	t.Helper()
	r, err := Table("orders")
	require.NoError(t, err)
	r, err = r.Region("us-east-1")
	require.NoError(t, err)
	r.Schema(Fields{
		"pk":        TemplateAttr("USER#{userId}"),
		"sk":        TemplateAttr("ORDER#{?orderId}"),
		"address":   Attr(),
		"orderDate": Attr().Wire("order_date"),
	})
	r.Logger(NopLogger{})
	if client != nil {
		r.Client(client)
	}
	return r
}

func bg() context.Context { return context.Background() }
