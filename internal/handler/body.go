package handler

import (
	"bytes"
	"encoding/base64"
	stdjson "encoding/json"
	"fmt"

	jsoniter "github.com/json-iterator/go"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/spf13/cast"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/event"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/model"
)

// bodyJSON rejects trailing data after the object and keeps numbers as
// json.Number.
var bodyJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// payload is a decoded POST body. Values keep their JSON types; numbers are
// json.Number so decimals never pass through float64.
type payload map[string]any

// decodeBody parses the request body. An empty body is an empty object, so
// it resolves to an invalid request (400) rather than a parse failure.
func decodeBody(req event.Request) (payload, error) {
	raw := []byte(req.Body)
	if req.IsBase64Encoded {
		decoded, err := base64.StdEncoding.DecodeString(req.Body)
		if err != nil {
			return nil, errors.Wrap(err, "decode base64 body")
		}
		raw = decoded
	}

	if len(bytes.TrimSpace(raw)) == 0 {
		return payload{}, nil
	}

	var v any
	if err := bodyJSON.Unmarshal(raw, &v); err != nil {
		return nil, err
	}

	obj, ok := v.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("request body must be a JSON object, got %T", v)
	}
	return payload(obj), nil
}

// action is the selector of a POST request; non-string values select nothing.
func (p payload) action() string {
	s, _ := p["action"].(string)
	return s
}

// value returns the raw value of key; absent and null both report nil.
func (p payload) value(key string) (any, bool) {
	v, ok := p[key]
	return v, ok
}

// int64Field coerces key to an integer; absent or null is nil.
func (p payload) int64Field(key string) (*int64, error) {
	v, _ := p.value(key)
	if v == nil {
		return nil, nil
	}
	if _, isBool := v.(bool); isBool {
		return nil, fmt.Errorf("%s: invalid input syntax for type integer: %v", key, v)
	}
	n, err := cast.ToInt64E(v)
	if err != nil {
		return nil, errors.Wrap(err, key)
	}
	return &n, nil
}

// decimalField coerces key to a decimal; absent or null is nil.
func (p payload) decimalField(key string) (*decimal.Decimal, error) {
	v, _ := p.value(key)
	if v == nil {
		return nil, nil
	}

	var (
		d   decimal.Decimal
		err error
	)
	switch n := v.(type) {
	case stdjson.Number:
		d, err = decimal.NewFromString(n.String())
	case string:
		d, err = decimal.NewFromString(n)
	default:
		return nil, fmt.Errorf("%s: invalid input syntax for type numeric: %v", key, v)
	}
	if err != nil {
		return nil, errors.Wrap(err, key)
	}
	return &d, nil
}

// stringField coerces key to text; absent or null is nil.
func (p payload) stringField(key string) (*string, error) {
	v, _ := p.value(key)
	if v == nil {
		return nil, nil
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return nil, errors.Wrap(err, key)
	}
	return &s, nil
}

// newConsumption reads the add_consumption fields. Missing product_id or
// quantity stay nil and are rejected by the database.
func (p payload) newConsumption() (model.NewConsumption, error) {
	var (
		in  model.NewConsumption
		err error
	)
	if in.ProductID, err = p.int64Field("product_id"); err != nil {
		return in, err
	}
	if in.Quantity, err = p.decimalField("quantity"); err != nil {
		return in, err
	}
	if in.AppointmentID, err = p.int64Field("appointment_id"); err != nil {
		return in, err
	}
	return in, nil
}

// newProduct reads the add_product fields. An omitted current_stock is 0 and
// an omitted min_stock is 1; an explicit null is stored as NULL.
func (p payload) newProduct() (model.NewProduct, error) {
	in := model.NewProduct{Unit: model.DefaultUnit}

	var err error
	if in.Name, err = p.stringField("name"); err != nil {
		return in, err
	}
	if in.Description, err = p.stringField("description"); err != nil {
		return in, err
	}
	if in.Price, err = p.decimalField("price"); err != nil {
		return in, err
	}

	if _, ok := p.value("current_stock"); ok {
		if in.CurrentStock, err = p.decimalField("current_stock"); err != nil {
			return in, err
		}
	} else {
		zero := decimal.Zero
		in.CurrentStock = &zero
	}

	if _, ok := p.value("min_stock"); ok {
		if in.MinStock, err = p.int64Field("min_stock"); err != nil {
			return in, err
		}
	} else {
		minStock := model.DefaultMinStock
		in.MinStock = &minStock
	}

	return in, nil
}
