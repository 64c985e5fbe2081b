// Package search filters already-rendered card and row data by
// case-insensitive substring match. No index, no backend query; it
// operates on whatever the page is currently showing.
package search

import "strings"

// Card is a rendered item card: the name and code are what the product
// search box matches against.
type Card struct {
	Name string `json:"name"`
	Code string `json:"code"`
}

// Filter keeps the cards whose name or code contains the term. An empty
// term keeps everything.
func Filter(cards []Card, term string) []Card {
	if term == "" {
		return cards
	}

	needle := strings.ToLower(term)
	out := make([]Card, 0, len(cards))
	for _, card := range cards {
		if strings.Contains(strings.ToLower(card.Name), needle) ||
			strings.Contains(strings.ToLower(card.Code), needle) {
			out = append(out, card)
		}
	}
	return out
}

// FilterRows keeps the table rows with any cell containing the term,
// the way the user table search walks every column.
func FilterRows(rows [][]string, term string) [][]string {
	if term == "" {
		return rows
	}

	needle := strings.ToLower(term)
	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		for _, cell := range row {
			if strings.Contains(strings.ToLower(cell), needle) {
				out = append(out, row)
				break
			}
		}
	}
	return out
}
