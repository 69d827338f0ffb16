package rag

import (
	"fmt"
	"strings"

	"github.com/hyperjump/kotae/internal/models"
	"github.com/hyperjump/kotae/pkg/utils"
)

// contextEntry is one retrieved document prepared for prompting.
type contextEntry struct {
	Rank int
	ID   string
	Text string
}

// buildEntries trims each hit's text to its share of the context budget.
// Every document keeps at least perDocFloor characters so a large result
// set cannot squeeze any single passage down to nothing.
func buildEntries(hits []models.SearchHit) []contextEntry {
	if len(hits) == 0 {
		return nil
	}
	perDoc := contextBudget / len(hits)
	if perDoc < perDocFloor {
		perDoc = perDocFloor
	}
	entries := make([]contextEntry, 0, len(hits))
	for i, hit := range hits {
		entries = append(entries, contextEntry{
			Rank: i + 1,
			ID:   hit.Record.ID,
			Text: utils.Truncate(hit.Record.Text, perDoc),
		})
	}
	return entries
}

// renderContext lays the entries out as numbered passages for the prompt.
func renderContext(entries []contextEntry) string {
	parts := make([]string, 0, len(entries))
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("[%d] (%s)\n%s", e.Rank, e.ID, e.Text))
	}
	return strings.Join(parts, contextSeparator)
}

// renderCitations produces the one-line-per-source list shown to the user.
func renderCitations(hits []models.SearchHit) string {
	lines := make([]string, 0, len(hits))
	for i, hit := range hits {
		snippet := utils.Truncate(utils.CollapseWhitespace(hit.Record.Text), snippetLen)
		lines = append(lines, fmt.Sprintf("[%d] %s: %s", i+1, hit.Record.ID, snippet))
	}
	return strings.Join(lines, "\n")
}
