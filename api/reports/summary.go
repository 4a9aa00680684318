package reports

import (
	"time"

	"github.com/littleones/daycare-api/common/store"
)

const (
	TypeMeal   = "Meal"
	TypeNap    = "Nap"
	TypeMood   = "Mood"
	TypeDiaper = "Diaper"
)

// Period is the closed interval [Start, End].
type Period struct {
	Start time.Time
	End   time.Time
}

// Previous returns the window of the same duration ending one millisecond
// before p starts.
func (p Period) Previous() Period {
	end := p.Start.Add(-time.Millisecond)
	return Period{
		Start: end.Add(-p.End.Sub(p.Start)),
		End:   end,
	}
}

type Summary struct {
	Meal     int `json:"meal"`
	Nap      int `json:"nap"`
	Mood     int `json:"mood"`
	Diaper   int `json:"diaper"`
	Incident int `json:"incident"`
}

type PercentageDiff struct {
	Meal     float64 `json:"meal"`
	Nap      float64 `json:"nap"`
	Mood     float64 `json:"mood"`
	Diaper   float64 `json:"diaper"`
	Incident float64 `json:"incident"`
}

// Tally counts log entries by exact type. Unknown types are not counted.
// Incident is the number of health records.
func Tally(entries []store.DailyLogEntry, healthRecords int) Summary {
	summary := Summary{Incident: healthRecords}
	for _, entry := range entries {
		switch entry.Type {
		case TypeMeal:
			summary.Meal++
		case TypeNap:
			summary.Nap++
		case TypeMood:
			summary.Mood++
		case TypeDiaper:
			summary.Diaper++
		}
	}
	return summary
}

// Diff is the relative change from previous to current in percent. It is
// 100 whenever previous is 0, current included.
func Diff(current, previous int) float64 {
	if previous == 0 {
		return 100
	}
	return float64(current-previous) / float64(previous) * 100
}

func Compare(current, previous Summary) PercentageDiff {
	return PercentageDiff{
		Meal:     Diff(current.Meal, previous.Meal),
		Nap:      Diff(current.Nap, previous.Nap),
		Mood:     Diff(current.Mood, previous.Mood),
		Diaper:   Diff(current.Diaper, previous.Diaper),
		Incident: Diff(current.Incident, previous.Incident),
	}
}

func chunkIds(ids []string, size int) [][]string {
	var chunks [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		chunks = append(chunks, ids[start:end])
	}
	return chunks
}

// idSet collects distinct non empty ids in first seen order.
type idSet struct {
	ids  []string
	seen map[string]bool
}

func newIdSet() *idSet {
	return &idSet{seen: map[string]bool{}}
}

func (s *idSet) add(id string) {
	if id == "" || s.seen[id] {
		return
	}
	s.seen[id] = true
	s.ids = append(s.ids, id)
}
