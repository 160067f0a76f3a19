package models

import (
	"testing"

	"github.com/jackc/pgtype"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStringArrayRoundTrip(t *testing.T) {
	values := []string{"/assets/a.jpg", "/assets/b.jpg"}
	arr := StringArray(values)

	require.Equal(t, pgtype.Present, arr.Status)
	assert.Equal(t, values, StringsFromArray(arr))
}

func TestStringArrayNil(t *testing.T) {
	arr := StringArray(nil)
	require.Equal(t, pgtype.Present, arr.Status)
	assert.Empty(t, StringsFromArray(arr))
}

func TestStringsFromArrayUndefined(t *testing.T) {
	var arr pgtype.TextArray
	assert.Empty(t, StringsFromArray(arr))
}

func TestStringsFromArrayDropsNullElements(t *testing.T) {
	arr := pgtype.TextArray{
		Elements: []pgtype.Text{
			{String: "kept", Status: pgtype.Present},
			{Status: pgtype.Null},
		},
		Dimensions: []pgtype.ArrayDimension{{Length: 2, LowerBound: 1}},
		Status:     pgtype.Present,
	}
	assert.Equal(t, []string{"kept"}, StringsFromArray(arr))
}

func TestFilterProductRecordUnwrapsImages(t *testing.T) {
	product := Product{
		Name:   "Titan Phone 20 Pro",
		Slug:   "titan-phone-20-pro",
		Images: StringArray([]string{"/assets/natural.jpg"}),
	}

	resp := FilterProductRecord(&product)
	assert.Equal(t, []string{"/assets/natural.jpg"}, resp.Images)
	assert.Equal(t, product.Slug, resp.Slug)
}
