package kat

import (
	"encoding/json"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseInt(t *testing.T) {
	tests := []struct {
		in   string
		want Int
	}{
		{"42", IntOf(42)},
		{"  17\n", IntOf(17)},
		{"1.42 GB", IntOf(1)},
		{"1,024", IntOf(1)},
		{"-3", IntOf(-3)},
		{"+8", IntOf(8)},
		{"007", IntOf(7)},
		{"", NaN},
		{"GB", NaN},
		{"-", NaN},
		{"n/a", NaN},
		{"99999999999999999999", IntOf(math.MaxInt64)},
		{"-99999999999999999999 seeds", IntOf(math.MinInt64)},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseInt(tt.in))
		})
	}
}

func TestInt_Add(t *testing.T) {
	assert.Equal(t, IntOf(15), IntOf(10).Add(IntOf(5)))
	assert.True(t, IntOf(10).Add(NaN).IsNaN())
	assert.True(t, NaN.Add(IntOf(5)).IsNaN())
	assert.True(t, NaN.Add(NaN).IsNaN())
}

func TestInt_Format(t *testing.T) {
	assert.Equal(t, "12", IntOf(12).String())
	assert.Equal(t, "NaN", NaN.String())
	assert.Equal(t, int64(3), NaN.Or(3))

	data, err := json.Marshal([]Int{IntOf(5), NaN})
	require.NoError(t, err)
	assert.JSONEq(t, `[5, null]`, string(data))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2016, time.April, 21, 18, 0, 0, 0, time.UTC).UnixMilli()

	for _, in := range []string{
		"2016-04-21 18:00:00",
		"2016-04-21T18:00:00Z",
		"Thu, 21 Apr 2016 18:00:00 +0000",
		"04/21/2016 18:00:00",
	} {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, IntOf(want), ParseDate(in))
		})
	}

	assert.True(t, ParseDate("").IsNaN())
	assert.True(t, ParseDate("not a date").IsNaN())
}
