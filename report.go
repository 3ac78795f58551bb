package marq

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ReportEntry is one row in a passage report: a faithful snapshot of a
// MarkedSpan at build time. Later edits to the source document do not
// update an entry; a stale entry still points at the recorded offset.
type ReportEntry struct {
	SourceDocumentID string
	SourceOffset     int
	LineNumber       int
	RawText          string
}

// Report is a derived, read-only listing of the passages found in one
// document. The delimiters recorded here are the ones in effect at build
// time and are used to recover inner text from entries.
type Report struct {
	ID               string
	SourceDocumentID string
	BuiltAt          time.Time
	DelimiterLeft    string
	DelimiterRight   string
	Entries          []ReportEntry
}

// Entry returns the entry at the given listing index. Indexes outside the
// entry range, including the header row's, fail with ErrNoEntry.
func (r *Report) Entry(index int) (ReportEntry, error) {
	if index < 0 || index >= len(r.Entries) {
		return ReportEntry{}, ErrNoEntry
	}
	return r.Entries[index], nil
}

// InnerText recovers the passage text of the entry at the given index by
// stripping exactly the recorded delimiters from its raw text.
func (r *Report) InnerText(index int) (string, error) {
	entry, err := r.Entry(index)
	if err != nil {
		return "", err
	}

	raw := entry.RawText
	if len(raw) < len(r.DelimiterLeft)+len(r.DelimiterRight) {
		return "", ErrNoEntry
	}
	return raw[len(r.DelimiterLeft) : len(raw)-len(r.DelimiterRight)], nil
}

// Builder scans documents and materializes passage reports into a store.
type Builder struct {
	store *ReportStore
}

// NewBuilder creates a builder that stores its reports in store.
func NewBuilder(store *ReportStore) *Builder {
	return &Builder{store: store}
}

// Build scans content with the configuration's pattern and materializes a
// report with one entry per passage, in ascending offset order. When the
// document contains no passages, no report is created and (nil, nil) is
// returned; the caller surfaces that as a "none found" outcome.
func (b *Builder) Build(docID, content string, cfg Config) (*Report, error) {
	pattern, err := cfg.Pattern()
	if err != nil {
		return nil, fmt.Errorf("failed to build report for %s: %w", docID, err)
	}

	spans := pattern.Scan(content)
	if len(spans) == 0 {
		return nil, nil
	}

	report := &Report{
		ID:               uuid.NewString(),
		SourceDocumentID: docID,
		BuiltAt:          time.Now(),
		DelimiterLeft:    cfg.DelimiterLeft,
		DelimiterRight:   cfg.DelimiterRight,
		Entries:          make([]ReportEntry, 0, len(spans)),
	}

	for _, span := range spans {
		report.Entries = append(report.Entries, ReportEntry{
			SourceDocumentID: docID,
			SourceOffset:     span.StartOffset,
			LineNumber:       span.LineNumber,
			RawText:          span.RawText,
		})
	}

	b.store.Put(report)
	return report, nil
}

// ReportStore holds built reports in memory for the running session.
// Nothing is persisted; a restart starts with an empty store.
type ReportStore struct {
	mu      sync.RWMutex
	reports map[string]*Report
}

// NewReportStore creates an empty report store.
func NewReportStore() *ReportStore {
	return &ReportStore{reports: make(map[string]*Report)}
}

// Put stores a report, replacing any previous report with the same ID.
func (rs *ReportStore) Put(report *Report) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	rs.reports[report.ID] = report
}

// Get returns the report with the given ID.
func (rs *ReportStore) Get(id string) (*Report, bool) {
	rs.mu.RLock()
	defer rs.mu.RUnlock()
	report, ok := rs.reports[id]
	return report, ok
}

// Delete removes the report with the given ID, if present.
func (rs *ReportStore) Delete(id string) {
	rs.mu.Lock()
	defer rs.mu.Unlock()
	delete(rs.reports, id)
}

// All returns every stored report, newest first.
func (rs *ReportStore) All() []*Report {
	rs.mu.RLock()
	defer rs.mu.RUnlock()

	all := make([]*Report, 0, len(rs.reports))
	for _, report := range rs.reports {
		all = append(all, report)
	}
	sort.Slice(all, func(i, j int) bool {
		return all[i].BuiltAt.After(all[j].BuiltAt)
	})
	return all
}
