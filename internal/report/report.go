// Package report turns aggregated step counts into the JSON export mailed to
// the user and into the day-by-day table shown while browsing a result.
package report

import (
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/dayanaadylkhanova/health-exporter/internal/entity"
)

// DateLayout is the ISO 8601 form used for every date in the export.
const DateLayout = "2006-01-02T15:04:05-0700"

const AttachmentName = "health-export.json"

type Timestamp struct {
	t time.Time
}

func NewTimestamp(t time.Time) Timestamp { return Timestamp{t: t} }

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	return json.Marshal(ts.t.Format(DateLayout))
}

func (ts *Timestamp) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return err
	}
	ts.t = t
	return nil
}

func (ts Timestamp) ToTime() time.Time { return ts.t }

func (ts Timestamp) String() string { return ts.t.Format(DateLayout) }

type StepCountRecord struct {
	Count     float64   `json:"count"`
	StartDate Timestamp `json:"startDate"`
	EndDate   Timestamp `json:"endDate"`
}

// Document is the attachment payload; stepCounts matches the body array.
type Document struct {
	StepCounts      []StepCountRecord `json:"stepCounts"`
	Characteristics map[string]string `json:"characteristics,omitempty"`
}

func Records(counts []entity.StepCount) []StepCountRecord {
	out := make([]StepCountRecord, 0, len(counts))
	for _, c := range counts {
		out = append(out, StepCountRecord{
			Count:     c.Count,
			StartDate: NewTimestamp(c.StartDate),
			EndDate:   NewTimestamp(c.EndDate),
		})
	}
	return out
}

// MarshalStepCounts encodes counts as a JSON array, one object per record.
func MarshalStepCounts(counts []entity.StepCount) ([]byte, error) {
	return json.MarshalIndent(Records(counts), "", "  ")
}

func MarshalDocument(counts []entity.StepCount, characteristics map[string]string) ([]byte, error) {
	doc := Document{StepCounts: Records(counts)}
	if len(characteristics) > 0 {
		doc.Characteristics = characteristics
	}
	return json.MarshalIndent(doc, "", "  ")
}

func Subject(counts []entity.StepCount, loc *time.Location) string {
	if len(counts) == 0 {
		return "Health Export (no samples)"
	}
	first, last := counts[0].StartDate, counts[0].StartDate
	for _, c := range counts[1:] {
		if c.StartDate.Before(first) {
			first = c.StartDate
		}
		if c.StartDate.After(last) {
			last = c.StartDate
		}
	}
	f, l := first.In(loc).Format("2006-01-02"), last.In(loc).Format("2006-01-02")
	if f == l {
		return "Health Export " + f
	}
	return fmt.Sprintf("Health Export %s - %s", f, l)
}

// NewMail composes the report mail: the JSON array in the body and the full
// document as an attachment.
func NewMail(from, to string, counts []entity.StepCount, characteristics map[string]string, loc *time.Location) (entity.MailMessage, error) {
	if loc == nil {
		loc = time.UTC
	}
	body, err := MarshalStepCounts(counts)
	if err != nil {
		return entity.MailMessage{}, err
	}
	doc, err := MarshalDocument(counts, characteristics)
	if err != nil {
		return entity.MailMessage{}, err
	}
	return entity.MailMessage{
		From:           from,
		To:             []string{to},
		Subject:        Subject(counts, loc),
		Body:           string(body),
		AttachmentName: AttachmentName,
		Attachment:     doc,
	}, nil
}

// Sections groups counts by the calendar day (in loc) their sample started
// on, oldest day first, and totals steps per hour of that day.
func Sections(counts []entity.StepCount, loc *time.Location) []entity.DaySection {
	if loc == nil {
		loc = time.UTC
	}
	sorted := append([]entity.StepCount(nil), counts...)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].StartDate.Before(sorted[j].StartDate) })

	out := []entity.DaySection{}
	index := map[string]int{}
	for _, c := range sorted {
		start := c.StartDate.In(loc)
		key := start.Format("2006-01-02")
		i, ok := index[key]
		if !ok {
			y, m, d := start.Date()
			day := time.Date(y, m, d, 0, 0, 0, 0, loc)
			out = append(out, entity.DaySection{Day: day, Title: day.Format("Mon Jan, 02")})
			i = len(out) - 1
			index[key] = i
		}
		sec := &out[i]
		sec.Total += c.Count
		sec.Hourly[start.Hour()] += c.Count
		sec.Rows = append(sec.Rows, entity.StepCountRow{Count: c.Count, StartDate: c.StartDate, EndDate: c.EndDate})
	}
	return out
}
