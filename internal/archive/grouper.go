// Package archive derives date folders from completed todos. Folders are
// a view: they are recomputed on every fetch and never stored.
package archive

import (
	"sort"
	"time"

	"github.com/alexanderramin/daylist/internal/domain"
)

// dateLayout is the calendar-day label used for folder dates.
const dateLayout = "2006-01-02"

// Folder groups todos completed on the same calendar day. Whether a
// folder is expanded is browser-local state and not part of this type.
type Folder struct {
	Date  string         `json:"date"`
	Todos []*domain.Todo `json:"todos"`
}

// DropHandler is called for each completed todo excluded from grouping
// because it has no usable completion timestamp.
type DropHandler func(t *domain.Todo)

// GroupByDate buckets completed todos into folders by the calendar day of
// their completion, in now's location. Todos with a nil CompletedAt are
// excluded and reported through onDrop (which may be nil). When
// excludeToday is set, todos completed on now's date get no folder.
// Folders come back sorted by date descending; todos within a folder
// keep their input order.
func GroupByDate(todos []*domain.Todo, now time.Time, excludeToday bool, onDrop DropHandler) []Folder {
	today := now.Format(dateLayout)

	grouped := make(map[string][]*domain.Todo)
	for _, t := range todos {
		if t.CompletedAt == nil {
			if onDrop != nil {
				onDrop(t)
			}
			continue
		}
		date := t.CompletedAt.In(now.Location()).Format(dateLayout)
		if excludeToday && date == today {
			continue
		}
		grouped[date] = append(grouped[date], t)
	}

	folders := make([]Folder, 0, len(grouped))
	for date, members := range grouped {
		folders = append(folders, Folder{Date: date, Todos: members})
	}
	sort.Slice(folders, func(i, j int) bool {
		return folders[i].Date > folders[j].Date
	})

	return folders
}
