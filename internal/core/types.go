// Package core defines the shared domain types passed between the GitHub
// clients, the cache store, and the command handlers.
package core

import "time"

// Discussion is a GitHub Discussion used as a lightweight structured-data
// record. Several commands read and write discussions in well-known
// categories (e.g. "Handovers", "ADR") instead of a database.
type Discussion struct {
	ID        string    `json:"id"`
	Number    int       `json:"number"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Category  string    `json:"category"`
	Author    string    `json:"author"`
	URL       string    `json:"url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// DiscussionCategory is a Discussions taxonomy bucket.
type DiscussionCategory struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ProjectItem is a single GitHub Projects (v2) row. Items are addressable
// either by their GraphQL node ID or by the number of the linked issue.
type ProjectItem struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	IssueNumber int               `json:"issue_number,omitempty"`
	Fields      map[string]string `json:"fields,omitempty"`
	URL         string            `json:"url,omitempty"`
}

// ProjectField describes a configurable field of a Projects v2 board,
// needed to resolve field names to node IDs before an update.
type ProjectField struct {
	ID      string               `json:"id"`
	Name    string               `json:"name"`
	Options []ProjectFieldOption `json:"options,omitempty"`
}

// ProjectFieldOption is one choice of a single-select project field.
type ProjectFieldOption struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ScanRun records one annotation or test-catalog scan for the history
// shown by the serve API.
type ScanRun struct {
	ID         int64     `db:"id" json:"id"`
	Kind       string    `db:"kind" json:"kind"`
	SourceDir  string    `db:"source_dir" json:"source_dir"`
	Files      int       `db:"files" json:"files"`
	StartedAt  time.Time `db:"started_at" json:"started_at"`
	FinishedAt time.Time `db:"finished_at" json:"finished_at"`
}
