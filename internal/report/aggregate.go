// Package report assembles the finished/pending text blocks fed to the
// weekly report generation.
package report

import (
	"strings"
	"time"

	"github.com/alexanderramin/daylist/internal/domain"
)

// Window is the trailing period whose completions count as "finished"
// work for the report.
const Window = 5 * 24 * time.Hour

// FormatBlock serializes todos as "title:description" lines joined by
// newlines, the shape the completion API expects in its input fields.
func FormatBlock(todos []*domain.Todo) string {
	lines := make([]string, 0, len(todos))
	for _, t := range todos {
		lines = append(lines, t.Title+":"+t.Description)
	}
	return strings.Join(lines, "\n")
}

// Aggregate splits todos into the two report blocks: finished collects
// completed todos whose completion falls within the trailing window
// ending at now, pending collects everything still open.
func Aggregate(todos []*domain.Todo, now time.Time, window time.Duration) (finished, pending string) {
	cutoff := now.Add(-window)

	var done, open []*domain.Todo
	for _, t := range todos {
		switch {
		case !t.Completed:
			open = append(open, t)
		case t.CompletedAt != nil && t.CompletedAt.After(cutoff):
			done = append(done, t)
		}
	}

	return FormatBlock(done), FormatBlock(open)
}
