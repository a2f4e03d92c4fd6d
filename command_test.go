package dynafluent

import (
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_PointLookup(t *testing.T) {
	client := &mockClient{
		getOut: &dynamodb.GetItemOutput{Item: map[string]types.AttributeValue{
			"pk":      &types.AttributeValueMemberS{Value: "USER#42"},
			"address": &types.AttributeValueMemberS{Value: "123 Fake St"},
		}},
	}
	r := newTestRegistry(t, client)

	item, err := r.Get().
		Keys(Item{"pk": map[string]string{"userId": "42"}}).
		Exec(bg())
	require.NoError(t, err)
	assert.Equal(t, "123 Fake St", item["address"])

	require.NotNil(t, client.getIn)
	assert.Equal(t, "orders", *client.getIn.TableName)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "USER#42"}, client.getIn.Key["pk"])
}

func TestGet_MissingItemReturnsNil(t *testing.T) {
	r := newTestRegistry(t, &mockClient{})
	item, err := r.Get().Keys(Item{"address": "x"}).Exec(bg())
	require.NoError(t, err)
	assert.Nil(t, item)
}

func TestGet_MissingTemplateVariableAbortsChain(t *testing.T) {
	r := newTestRegistry(t, &mockClient{})
	_, err := r.Get().Keys(Item{"pk": map[string]string{}}).Exec(bg())
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrMissingVariable))
}

func TestPut_PlainField(t *testing.T) {
	client := &mockClient{}
	r := newTestRegistry(t, client)

	item, err := r.Put().Set("address", "123 Fake St").Exec(bg())
	require.NoError(t, err)
	assert.Equal(t, "123 Fake St", item["address"])

	require.NotNil(t, client.putIn)
	assert.Equal(t, "orders", *client.putIn.TableName)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "123 Fake St"}, client.putIn.Item["address"])
}

func TestPut_TemplateAndWireName(t *testing.T) {
	client := &mockClient{}
	r := newTestRegistry(t, client)

	_, err := r.Put().
		Set("pk", map[string]string{"userId": "42"}).
		Set("orderDate", "2024-05-01").
		Exec(bg())
	require.NoError(t, err)

	assert.Equal(t, &types.AttributeValueMemberS{Value: "USER#42"}, client.putIn.Item["pk"])
	assert.Contains(t, client.putIn.Item, "order_date")
}

func TestPut_ConditionGuard(t *testing.T) {
	client := &mockClient{}
	r := newTestRegistry(t, client)

	_, err := r.Put().
		Set("address", "123 Fake St").
		AttributeNotExists("pk").
		Exec(bg())
	require.NoError(t, err)

	require.NotNil(t, client.putIn.ConditionExpression)
	assert.Equal(t, "attribute_not_exists(#pk)", *client.putIn.ConditionExpression)
	assert.Equal(t, map[string]string{"#pk": "pk"}, client.putIn.ExpressionAttributeNames)
}

func TestPut_GeneratedField(t *testing.T) {
	client := &mockClient{}
	r, err := Table("orders")
	require.NoError(t, err)
	r.Schema(Fields{"id": Attr().Generated("uid(12)")}).
		Logger(NopLogger{}).
		Client(client)

	item, err := r.Put().Set("name", "first").Exec(bg())
	require.NoError(t, err)
	id, ok := item["id"].(string)
	require.True(t, ok)
	assert.Len(t, id, 12)

	// caller-supplied values are never overwritten
	item, err = r.Put().Set("id", "explicit").Exec(bg())
	require.NoError(t, err)
	assert.Equal(t, "explicit", item["id"])
}

func TestUpdate_SetExpression(t *testing.T) {
	client := &mockClient{}
	r := newTestRegistry(t, client)

	err := r.Update().
		Keys(Item{"pk": map[string]string{"userId": "42"}}).
		Set("status", "done").
		Exec(bg())
	require.NoError(t, err)

	require.NotNil(t, client.updateIn)
	assert.Equal(t, "SET #status = :status", *client.updateIn.UpdateExpression)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "USER#42"}, client.updateIn.Key["pk"])
	assert.Equal(t, map[string]string{"#status": "status"}, client.updateIn.ExpressionAttributeNames)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "done"}, client.updateIn.ExpressionAttributeValues[":status"])
}

func TestUpdate_CoversExactlySetFields(t *testing.T) {
	client := &mockClient{}
	r := newTestRegistry(t, client)

	err := r.Update().
		Keys(Item{"address": "k"}).
		Set("status", "done").
		Set("note", "hi").
		Exec(bg())
	require.NoError(t, err)
	assert.Equal(t, "SET #status = :status, #note = :note", *client.updateIn.UpdateExpression)
}

func TestUpdate_RequiresKeysAndSet(t *testing.T) {
	r := newTestRegistry(t, &mockClient{})

	err := r.Update().Set("status", "done").Exec(bg())
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrConfiguration))

	err = r.Update().Keys(Item{"address": "k"}).Exec(bg())
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrConfiguration))
}

func TestDelete_ReturnsEmptyInMemoryItem(t *testing.T) {
	client := &mockClient{}
	r := newTestRegistry(t, client)

	item, err := r.Delete().
		Keys(Item{"pk": map[string]string{"userId": "42"}}).
		Exec(bg())
	require.NoError(t, err)
	// the builder's own item state, never populated by a delete
	assert.Empty(t, item)

	require.NotNil(t, client.deleteIn)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "USER#42"}, client.deleteIn.Key["pk"])
}

func TestQuery_ContainsAndLimit(t *testing.T) {
	client := &mockClient{}
	r := newTestRegistry(t, client)

	_, err := r.Query().Contains("name", "foo").Limit(5).Exec(bg())
	require.NoError(t, err)

	require.NotNil(t, client.queryIn)
	require.NotNil(t, client.queryIn.FilterExpression)
	assert.Contains(t, *client.queryIn.FilterExpression, "contains(#name, :name_contains)")
	require.NotNil(t, client.queryIn.Limit)
	assert.Equal(t, int32(5), *client.queryIn.Limit)
}

func TestQuery_IndexAndItems(t *testing.T) {
	client := &mockClient{
		queryOut: &dynamodb.QueryOutput{Items: []map[string]types.AttributeValue{
			{"address": &types.AttributeValueMemberS{Value: "a"}},
			{"address": &types.AttributeValueMemberS{Value: "b"}},
		}},
	}
	r := newTestRegistry(t, client)

	items, err := r.Query().
		Keys(Item{"pk": map[string]string{"userId": "42"}}).
		BeginsWith("sk", "ORDER#").
		Index("gsi1").
		Exec(bg())
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0]["address"])

	require.NotNil(t, client.queryIn.IndexName)
	assert.Equal(t, "gsi1", *client.queryIn.IndexName)
	assert.Equal(t, "#pk = :pk and begins_with(#sk, :sk_begins)", *client.queryIn.KeyConditionExpression)
}

func TestBuilder_SingleUse(t *testing.T) {
	r := newTestRegistry(t, &mockClient{})

	g := r.Get().Keys(Item{"address": "x"})
	_, err := g.Exec(bg())
	require.NoError(t, err)

	_, err = g.Exec(bg())
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrState))
}

func TestBuilder_FluentCallAfterExecution(t *testing.T) {
	client := &mockClient{}
	r := newTestRegistry(t, client)

	p := r.Put().Set("address", "first")
	_, err := p.Exec(bg())
	require.NoError(t, err)

	p.Set("address", "second")
	_, err = p.Build()
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrState))
}

func TestBuilder_MissingClient(t *testing.T) {
	r := newTestRegistry(t, nil)
	_, err := r.Get().Keys(Item{"address": "x"}).Exec(bg())
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrConfiguration))
}

func TestExec_ClientFailurePropagates(t *testing.T) {
	cause := errors.New("throughput exceeded")
	r := newTestRegistry(t, &mockClient{err: cause})

	_, err := r.Get().Keys(Item{"address": "x"}).Exec(bg())
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrClient))
	assert.True(t, errors.Is(err, cause))
}

func TestTransact_OrderedMembers(t *testing.T) {
	client := &mockClient{}
	r := newTestRegistry(t, client)

	put := r.Put().Set("address", "123 Fake St")
	update := r.Update().Keys(Item{"address": "k"}).Set("status", "done")
	del := r.Delete().Keys(Item{"address": "gone"})

	item, err := r.Transact().Put(put).Update(update).Delete(del).Exec(bg())
	require.NoError(t, err)
	// the transaction's own item state, not its members'
	assert.Empty(t, item)

	require.NotNil(t, client.transactIn)
	require.Len(t, client.transactIn.TransactItems, 3)
	first := client.transactIn.TransactItems[0]
	require.NotNil(t, first.Put)
	assert.Equal(t, "orders", *first.Put.TableName)
	second := client.transactIn.TransactItems[1]
	require.NotNil(t, second.Update)
	assert.Equal(t, "SET #status = :status", *second.Update.UpdateExpression)
	third := client.transactIn.TransactItems[2]
	require.NotNil(t, third.Delete)
	assert.Equal(t, &types.AttributeValueMemberS{Value: "gone"}, third.Delete.Key["address"])
}

func TestTransact_MemberErrorSurfaces(t *testing.T) {
	r := newTestRegistry(t, &mockClient{})
	badUpdate := r.Update().Set("status", "done") // no keys

	_, err := r.Transact().Update(badUpdate).Exec(bg())
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrConfiguration))
}

func TestTransact_RequiresMembers(t *testing.T) {
	r := newTestRegistry(t, &mockClient{})
	_, err := r.Transact().Exec(bg())
	require.Error(t, err)
	assert.True(t, HasCode(err, ErrConfiguration))
}
