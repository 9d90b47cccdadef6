package sheettable

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testRow struct {
	ID      string  `sheet:"id"`
	Show    bool    `sheet:"is_show"`
	Level   int     `sheet:"urgencyLevel"`
	Amount  float64 `sheet:"donationAmount"`
	Ignored string
}

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in       string
		expected float64
		ok       bool
	}{
		{"2,078,999", 2078999, true},
		{"42", 42, true},
		{" 3.5 ", 3.5, true},
		{"0", 0, true},
		{"", 0, false},
		{"n/a", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestParseBoolean(t *testing.T) {
	assert.True(t, ParseBoolean("true"))
	assert.True(t, ParseBoolean("TRUE"))
	assert.True(t, ParseBoolean("1"))
	assert.False(t, ParseBoolean("yes"))
	assert.False(t, ParseBoolean("0"))
	assert.False(t, ParseBoolean(""))
}

func TestNew_CleansHeadersAndCells(t *testing.T) {
	table := New([][]string{
		{` "id" `, "name"},
		{` owl `, `"Owl"`},
	})

	assert.Equal(t, []string{"id", "name"}, table.Headers)
	assert.Equal(t, [][]string{{"owl", "Owl"}}, table.Rows)
}

func TestNew_Empty(t *testing.T) {
	table := New(nil)
	assert.Empty(t, table.Headers)
	assert.Empty(t, table.Rows)
}

func TestDecode(t *testing.T) {
	table := New([][]string{
		{"donationAmount", "id", "is_show", "urgencyLevel", "extra"},
		{"1,000", "owl", "TRUE", "5", "x"},
		{"", "turtle", "0", "bad"},
		{"12.5", "bat"},
	})

	rows, err := Decode[testRow](table)

	require.NoError(t, err)
	assert.Equal(t, []testRow{
		{ID: "owl", Show: true, Level: 5, Amount: 1000},
		{ID: "turtle"},
		{ID: "bat", Amount: 12.5},
	}, rows)
}

func TestDecode_HeaderOnly(t *testing.T) {
	rows, err := Decode[testRow](New([][]string{{"id"}}))
	require.NoError(t, err)
	assert.Empty(t, rows)
}

func TestDecode_RejectsNonStruct(t *testing.T) {
	_, err := Decode[string](New([][]string{{"id"}, {"x"}}))
	assert.Error(t, err)
}

func TestDecode_UnsupportedFieldType(t *testing.T) {
	type badRow struct {
		Tags []string `sheet:"tags"`
	}
	_, err := Decode[badRow](New([][]string{{"tags"}, {"a"}}))
	assert.ErrorContains(t, err, "row 2, column tags")
}

func TestSetFieldValue_CannotSet(t *testing.T) {
	var s testRow
	err := setFieldValue(reflect.ValueOf(s).Field(0), "x")
	assert.Error(t, err)
}

func TestRecords(t *testing.T) {
	table := New([][]string{{"id", "name"}, {"owl"}})
	assert.Equal(t, []map[string]string{{"id": "owl", "name": ""}}, table.Records())
}

func TestHeadersAndMissingColumns(t *testing.T) {
	assert.Equal(t, []string{"id", "is_show", "urgencyLevel", "donationAmount"}, Headers[testRow]())
	assert.Equal(t, []string{"id", "is_show", "urgencyLevel", "donationAmount"}, Headers[*testRow]())

	table := New([][]string{{"id", "is_show"}})
	assert.Equal(t, []string{"urgencyLevel", "donationAmount"}, MissingColumns[testRow](table))
}
