package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

var cards = []Card{
	{Name: "Solar Panel 540W", Code: "SUN-001"},
	{Name: "Inverter 5kW", Code: "INV-5K"},
	{Name: "Battery 12V", Code: "BAT-12V"},
}

func TestFilterMatchesNameCaseInsensitive(t *testing.T) {
	out := Filter(cards, "solar")
	assert.Equal(t, []Card{cards[0]}, out)
}

func TestFilterMatchesCode(t *testing.T) {
	out := Filter(cards, "inv-5")
	assert.Equal(t, []Card{cards[1]}, out)
}

func TestFilterEmptyTermKeepsAll(t *testing.T) {
	assert.Equal(t, cards, Filter(cards, ""))
}

func TestFilterNoMatch(t *testing.T) {
	assert.Empty(t, Filter(cards, "windmill"))
}

func TestFilterRowsMatchesAnyCell(t *testing.T) {
	rows := [][]string{
		{"1", "Asha", "asha@sunmax.in", "top_user"},
		{"2", "Ravi", "ravi@sunmax.in", "staff"},
	}

	out := FilterRows(rows, "STAFF")
	assert.Equal(t, [][]string{rows[1]}, out)

	out = FilterRows(rows, "sunmax")
	assert.Len(t, out, 2)
}

func TestFilterRowsEmptyTermKeepsAll(t *testing.T) {
	rows := [][]string{{"a"}, {"b"}}
	assert.Equal(t, rows, FilterRows(rows, ""))
}
