package domain

import (
	"sort"
	"time"
)

// dateKeyLayout is the ledger key format, a local calendar date.
const dateKeyLayout = "2006-01-02"

// DateKey returns the ledger key for the local calendar day containing t.
// The same boundary is used for accrual, "today" lookups and range
// queries, so seconds earned near midnight land on the day they were
// earned rather than the day the record was flushed.
func DateKey(t time.Time) string {
	return t.Format(dateKeyLayout)
}

// DailyRecord accumulates focus time and completed sessions for one
// local calendar date.
type DailyRecord struct {
	Date              string
	FocusSeconds      int
	CompletedSessions int
	GoalAchieved      bool
}

// DaySlice is a run of seconds attributed to a single calendar date.
type DaySlice struct {
	Date    string
	Seconds int
}

// SplitAcrossDays partitions deltaSeconds of focus time starting at
// from into per-date slices. Each second belongs to the local calendar
// day in effect at the moment it was earned, so an accrual that
// straddles midnight is split at the boundary.
func SplitAcrossDays(from time.Time, deltaSeconds int) []DaySlice {
	var out []DaySlice
	cursor := from
	for deltaSeconds > 0 {
		boundary := startOfNextDay(cursor)
		chunk := int(boundary.Sub(cursor) / time.Second)
		if chunk <= 0 {
			// Less than a whole second to midnight: the next earned
			// second completes on the following day.
			cursor = boundary
			continue
		}
		if chunk > deltaSeconds {
			chunk = deltaSeconds
		}
		out = append(out, DaySlice{Date: DateKey(cursor), Seconds: chunk})
		cursor = cursor.Add(time.Duration(chunk) * time.Second)
		deltaSeconds -= chunk
	}
	return out
}

func startOfNextDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d+1, 0, 0, 0, 0, t.Location())
}

// Ledger maps date keys to daily records. It is owned by the tracker
// service and mutated only from the single poll/event callback path, so
// it carries no locking.
type Ledger struct {
	records map[string]*DailyRecord
}

// NewLedger returns an empty ledger.
func NewLedger() *Ledger {
	return &Ledger{records: make(map[string]*DailyRecord)}
}

// day returns the record for key, creating it lazily.
func (l *Ledger) day(key string) *DailyRecord {
	rec, ok := l.records[key]
	if !ok {
		rec = &DailyRecord{Date: key}
		l.records[key] = rec
	}
	return rec
}

// AddFocusSeconds adds delta focus seconds to the record for key.
func (l *Ledger) AddFocusSeconds(key string, delta int) {
	if delta <= 0 {
		return
	}
	l.day(key).FocusSeconds += delta
}

// AddCompletedSession increments the completed-session count for key.
func (l *Ledger) AddCompletedSession(key string) {
	l.day(key).CompletedSessions++
}

// EvaluateGoal checks the record for key against goalHours and returns
// a one-shot "goal just crossed" signal: true exactly when the
// accumulated focus time first meets the goal. Once latched it never
// fires again for that date unless the latch is reset by a goal change.
func (l *Ledger) EvaluateGoal(key string, goalHours float64) bool {
	rec := l.day(key)
	if rec.GoalAchieved {
		return false
	}
	if float64(rec.FocusSeconds) >= goalHours*3600 {
		rec.GoalAchieved = true
		return true
	}
	return false
}

// ResetGoal re-derives the goal latch for key after the goal hours
// changed. A raised goal can un-latch a previously achieved day.
func (l *Ledger) ResetGoal(key string, goalHours float64) {
	rec, ok := l.records[key]
	if !ok {
		return
	}
	rec.GoalAchieved = float64(rec.FocusSeconds) >= goalHours*3600
}

// Day returns a copy of the record for key, if present.
func (l *Ledger) Day(key string) (DailyRecord, bool) {
	rec, ok := l.records[key]
	if !ok {
		return DailyRecord{}, false
	}
	return *rec, true
}

// Days returns copies of all records ordered by date key.
func (l *Ledger) Days() []DailyRecord {
	out := make([]DailyRecord, 0, len(l.records))
	for _, rec := range l.records {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out
}

// Load replaces the ledger contents with previously persisted records.
func (l *Ledger) Load(recs []DailyRecord) {
	l.records = make(map[string]*DailyRecord, len(recs))
	for _, rec := range recs {
		r := rec
		l.records[r.Date] = &r
	}
}
