/*
Package dynafluent – wire codec.

Items cross the client boundary as DynamoDB AttributeValue maps. Native
date values are stored as canonical ISO-8601 strings of the form
"YYYY-MM-DDTHH:mm:ss.sssZ" and revived on the read path.
*/
package dynafluent

import (
	"regexp"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"github.com/go-openapi/strfmt"
)

// Item is a plain attribute map keyed by wire attribute name.
type Item map[string]any

const isoDateFormat = "2006-01-02T15:04:05.000Z"

var isoDatePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}T\d{2}:\d{2}:\d{2}\.\d{3}Z$`)

// toWire recursively converts native date values to their canonical
// ISO-8601 string form. Other values pass through unchanged.
func toWire(v any) any {
	switch tv := v.(type) {
	case time.Time:
		return tv.UTC().Format(isoDateFormat)
	case *time.Time:
		if tv == nil {
			return nil
		}
		return tv.UTC().Format(isoDateFormat)
	case strfmt.DateTime:
		return time.Time(tv).UTC().Format(isoDateFormat)
	case Item:
		return toWireMap(tv)
	case map[string]any:
		return toWireMap(tv)
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = toWire(e)
		}
		return out
	}
	return v
}

func toWireMap(m map[string]any) map[string]any {
	out := make(map[string]any, len(m))
	for k, v := range m {
		out[k] = toWire(v)
	}
	return out
}

// fromWire recursively converts strings matching the canonical ISO-8601
// pattern back into time.Time values.
func fromWire(v any) any {
	switch tv := v.(type) {
	case string:
		if isoDatePattern.MatchString(tv) {
			if dt, err := strfmt.ParseDateTime(tv); err == nil {
				return time.Time(dt)
			}
		}
		return tv
	case map[string]any:
		out := make(map[string]any, len(tv))
		for k, e := range tv {
			out[k] = fromWire(e)
		}
		return out
	case []any:
		out := make([]any, len(tv))
		for i, e := range tv {
			out[i] = fromWire(e)
		}
		return out
	}
	return v
}

// marshalItem converts a plain item to a DynamoDB AttributeValue map,
// applying the date wire format first.
func marshalItem(item Item) (map[string]types.AttributeValue, error) {
	wired, _ := toWire(item).(map[string]any)
	av, err := attributevalue.MarshalMap(wired)
	if err != nil {
		return nil, NewError("cannot marshal item", WithCode(ErrType), WithCause(err))
	}
	return av, nil
}

// unmarshalItem converts a DynamoDB AttributeValue map to a plain item,
// reviving ISO-8601 date strings.
func unmarshalItem(av map[string]types.AttributeValue) (Item, error) {
	if av == nil {
		return nil, nil
	}
	var m map[string]any
	if err := attributevalue.UnmarshalMap(av, &m); err != nil {
		return nil, NewError("cannot unmarshal item", WithCode(ErrType), WithCause(err))
	}
	return fromWire(m).(map[string]any), nil
}

func unmarshalItems(list []map[string]types.AttributeValue) ([]Item, error) {
	items := make([]Item, 0, len(list))
	for _, av := range list {
		item, err := unmarshalItem(av)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}
