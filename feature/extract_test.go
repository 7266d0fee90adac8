package feature

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtract_DropsLeadingValue(t *testing.T) {
	rec, err := Parse("a.json", []byte(`{"data":[{"values":[99, 1.0, 2.0, 3.0]}]}`))
	require.NoError(t, err)

	vec, err := Extract(rec)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2, 3}, vec)
}

func TestExtract_NoFeatures(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "missing data", content: `{}`},
		{name: "null data", content: `{"data":null}`},
		{name: "empty data", content: `{"data":[]}`},
		{name: "missing values", content: `{"data":[{}]}`},
		{name: "empty values", content: `{"data":[{"values":[]}]}`},
		{name: "single value", content: `{"data":[{"values":[7]}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := Parse(tc.name, []byte(tc.content))
			require.NoError(t, err)

			vec, err := Extract(rec)
			require.ErrorIs(t, err, ErrNoFeatures)
			assert.Nil(t, vec)
		})
	}
}

func TestExtract_NilRecord(t *testing.T) {
	_, err := Extract(nil)
	require.ErrorIs(t, err, ErrNoFeatures)
}

func TestExtract_OnlyFirstFrameInspected(t *testing.T) {
	rec, err := Parse("x", []byte(`{"data":[{"values":[0, 4, 5]}, {"values":[0, 9, 9, 9]}]}`))
	require.NoError(t, err)

	vec, err := Extract(rec)
	require.NoError(t, err)
	assert.Equal(t, []float64{4, 5}, vec)
}

func TestExtract_DoesNotAliasRecord(t *testing.T) {
	rec := &Record{ID: "x", Data: []Frame{{Values: []float64{0, 1, 2}}}}
	vec, err := Extract(rec)
	require.NoError(t, err)

	vec[0] = 42
	assert.Equal(t, float64(1), rec.Data[0].Values[1])
}

func TestLayout_Custom(t *testing.T) {
	rec := &Record{ID: "x", Data: []Frame{
		{Values: []float64{1, 2}},
		{Values: []float64{10, 20, 30, 40}},
	}}

	vec, err := Layout{Frame: 1, Skip: 2}.Extract(rec)
	require.NoError(t, err)
	assert.Equal(t, []float64{30, 40}, vec)

	vec, err = Layout{Frame: 0, Skip: 0}.Extract(rec)
	require.NoError(t, err)
	assert.Equal(t, []float64{1, 2}, vec)

	_, err = Layout{Frame: 2, Skip: 1}.Extract(rec)
	require.ErrorIs(t, err, ErrNoFeatures)

	_, err = Layout{Frame: 0, Skip: 2}.Extract(rec)
	require.ErrorIs(t, err, ErrNoFeatures)
}

func TestParse_Malformed(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "not json", content: `not json at all`},
		{name: "truncated", content: `{"data":[{"values":[1,2`},
		{name: "data not a list", content: `{"data":{"values":[1,2]}}`},
		{name: "values not numbers", content: `{"data":[{"values":["a","b"]}]}`},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			rec, err := Parse("bad.json", []byte(tc.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrMalformed))
			assert.False(t, errors.Is(err, ErrNoFeatures))
			assert.Nil(t, rec)
		})
	}
}

func TestParse_KeepsID(t *testing.T) {
	rec, err := Parse("dir/song.json", []byte(`{"data":[{"values":[0,1]}]}`))
	require.NoError(t, err)
	assert.Equal(t, "dir/song.json", rec.ID)
}

func TestExtract_FullPrecision(t *testing.T) {
	rec, err := Parse("big.json", []byte(`{"data":[{"values":[1e39, 0.1000001, 5]}]}`))
	require.NoError(t, err)

	vec, err := Extract(rec)
	require.NoError(t, err)
	assert.Equal(t, []float64{0.1000001, 5}, vec)
}

func TestLayout_Negative(t *testing.T) {
	rec := &Record{ID: "x", Data: []Frame{{Values: []float64{0, 1, 2}}}}

	for _, layout := range []Layout{{Frame: 0, Skip: -1}, {Frame: -1, Skip: 1}} {
		vec, err := layout.Extract(rec)
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrNoFeatures))
		assert.Nil(t, vec)
	}
}
