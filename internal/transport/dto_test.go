package transport

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/laptop_store/internal/models"
)

func TestLaptopRequestToModel(t *testing.T) {
	body := `{"brand":"Acme","processor_brand":"AMD","processor_name":"Ryzen 5","ram_gb":8,
		"ram_type":"DDR4","ssd":512,"hdd":0,"os":"Linux","price":500,"rating":"4 stars"}`

	var req LaptopRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	l, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, "Acme", l.Brand)
	assert.Equal(t, 8, l.RAMGB)
	assert.Equal(t, 0, l.HDD)
	assert.Equal(t, 500.0, l.Price)
	assert.Empty(t, l.ImageURL)
}

func TestLaptopRequestMissingFields(t *testing.T) {
	var req LaptopRequest
	require.NoError(t, json.Unmarshal([]byte(`{"brand":"Acme","price":500}`), &req))

	_, err := req.ToModel()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ram_gb")
	assert.Contains(t, err.Error(), "rating")
	assert.NotContains(t, err.Error(), "fields: brand")
	assert.NotContains(t, err.Error(), "image_url")
}

func TestLaptopRequestCoercesNumericStrings(t *testing.T) {
	body := `{"brand":"Acme","processor_brand":"AMD","processor_name":"Ryzen 5","ram_gb":"8",
		"ram_type":"DDR4","ssd":" 512 ","hdd":0.0,"os":"Linux","price":"45990.5","rating":"4"}`

	var req LaptopRequest
	require.NoError(t, json.Unmarshal([]byte(body), &req))

	l, err := req.ToModel()
	require.NoError(t, err)
	assert.Equal(t, 8, l.RAMGB)
	assert.Equal(t, 512, l.SSD)
	assert.Equal(t, 0, l.HDD)
	assert.Equal(t, 45990.5, l.Price)
}

func TestLaptopRequestRejectsWrongTypes(t *testing.T) {
	for _, body := range []string{
		`{"ram_gb":"eight"}`,
		`{"ram_gb":8.5}`,
		`{"ram_gb":true}`,
		`{"ssd":"1e12"}`,
		`{"price":"NaN"}`,
		`{"price":"Inf"}`,
		`{"price":[1]}`,
	} {
		var req LaptopRequest
		assert.Error(t, json.Unmarshal([]byte(body), &req), body)
	}
}

func TestCreateOrderRequestQuantity(t *testing.T) {
	var req CreateOrderRequest
	require.NoError(t, json.Unmarshal([]byte(`{"laptop_id":"x","quantity":"2"}`), &req))
	assert.Equal(t, Int(2), req.Quantity)
}

func TestFromModelRoundTrip(t *testing.T) {
	src := models.Laptop{Brand: "Acme", RAMGB: 16, Price: 999.5, Rating: "5", ImageURL: "http://x"}
	back, err := FromModel(src).ToModel()
	require.NoError(t, err)
	assert.True(t, src.SameContent(back))
}
