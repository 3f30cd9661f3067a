package handler

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/event"
)

func decode(t *testing.T, body string) payload {
	t.Helper()
	p, err := decodeBody(event.Request{Body: body})
	require.NoError(t, err)
	return p
}

func TestDecodeBody(t *testing.T) {
	assert.Empty(t, decode(t, ""))
	assert.Equal(t, "add_product", decode(t, `{"action":"add_product"}`).action())

	_, err := decodeBody(event.Request{Body: `[1,2]`})
	assert.Error(t, err)

	_, err = decodeBody(event.Request{Body: `null`})
	assert.Error(t, err)

	_, err = decodeBody(event.Request{Body: `{"action":"add_product"} extra`})
	assert.Error(t, err)

	_, err = decodeBody(event.Request{Body: `%%%`, IsBase64Encoded: true})
	assert.Error(t, err)
}

func TestPayload_NewConsumption(t *testing.T) {
	in, err := decode(t, `{"product_id":"3","quantity":"0.125","appointment_id":9}`).newConsumption()
	require.NoError(t, err)
	assert.Equal(t, int64(3), *in.ProductID)
	assert.Equal(t, "0.125", in.Quantity.String())
	assert.Equal(t, int64(9), *in.AppointmentID)

	in, err = decode(t, `{"product_id":3.0,"quantity":null}`).newConsumption()
	require.NoError(t, err)
	assert.Equal(t, int64(3), *in.ProductID)
	assert.Nil(t, in.Quantity)

	_, err = decode(t, `{"product_id":3,"quantity":"lots"}`).newConsumption()
	assert.Error(t, err)

	_, err = decode(t, `{"product_id":3,"quantity":false}`).newConsumption()
	assert.Error(t, err)
}

func TestPayload_NewProduct(t *testing.T) {
	t.Run("defaults for omitted fields", func(t *testing.T) {
		in, err := decode(t, `{"name":"Shampoo"}`).newProduct()
		require.NoError(t, err)
		assert.True(t, in.CurrentStock.IsZero())
		assert.Equal(t, int64(1), *in.MinStock)
		assert.Equal(t, "pieces", in.Unit)
		assert.Nil(t, in.Price)
	})

	t.Run("explicit null is kept", func(t *testing.T) {
		in, err := decode(t, `{"name":"Shampoo","current_stock":null,"min_stock":null}`).newProduct()
		require.NoError(t, err)
		assert.Nil(t, in.CurrentStock)
		assert.Nil(t, in.MinStock)
	})

	t.Run("values are coerced", func(t *testing.T) {
		in, err := decode(t, `{"name":123,"description":"pro line","price":"9.99","current_stock":12.5,"min_stock":"4"}`).newProduct()
		require.NoError(t, err)
		assert.Equal(t, "123", *in.Name)
		assert.Equal(t, "pro line", *in.Description)
		assert.Equal(t, "9.99", in.Price.String())
		assert.Equal(t, "12.5", in.CurrentStock.String())
		assert.Equal(t, int64(4), *in.MinStock)
	})
}
