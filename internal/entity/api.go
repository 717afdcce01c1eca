package entity

import "time"

type TypesResponse struct {
	Available       bool              `json:"available"`
	Characteristics map[string]string `json:"characteristics"`
	Quantities      map[string]string `json:"quantities"`
}

type FetchResponse struct {
	QueryID string     `json:"query_id"`
	State   QueryState `json:"state"`
}

type ShareRequest struct {
	To string `json:"to"`
}

type ShareResponse struct {
	Result MailResult `json:"result"`
	Error  string     `json:"error,omitempty"`
}

type SessionView struct {
	QueryID         string            `json:"query_id,omitempty"`
	State           QueryState        `json:"state"`
	FetchEnabled    bool              `json:"fetch_enabled"`
	ShareEnabled    bool              `json:"share_enabled"`
	Error           string            `json:"error,omitempty"`
	LastMailResult  MailResult        `json:"last_mail_result,omitempty"`
	TotalSteps      float64           `json:"total_steps"`
	Characteristics map[string]string `json:"characteristics,omitempty"`
	Sections        []DaySection      `json:"sections"`
}

// DaySection is one table section: all step samples that started on Day.
type DaySection struct {
	Day    time.Time      `json:"day"`
	Title  string         `json:"title"`
	Total  float64        `json:"total"`
	Hourly [24]float64    `json:"hourly"`
	Rows   []StepCountRow `json:"rows"`
}

type StepCountRow struct {
	Count     float64   `json:"count"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
}

// ExportEvent is published after a query completes or a report is shared.
type ExportEvent struct {
	Type       string     `json:"type"`
	QueryID    string     `json:"query_id"`
	OccurredAt time.Time  `json:"occurred_at"`
	Samples    int        `json:"samples"`
	TotalSteps float64    `json:"total_steps"`
	MailResult MailResult `json:"mail_result,omitempty"`
	Error      string     `json:"error,omitempty"`
}

const (
	EventQueryCompleted = "query.completed"
	EventReportShared   = "report.shared"
)
