package marq_test

import (
	"errors"
	"testing"
	"time"

	"github.com/marqlabs/marq"
	"github.com/marqlabs/marq/internal/assert"
)

func TestBuilder_Build(t *testing.T) {
	store := marq.NewReportStore()
	builder := marq.NewBuilder(store)

	content := "intro <<first>>\nplain line\n<<second>> tail"
	report, err := builder.Build("notes", content, marq.DefaultConfig())
	assert.Nil(t, err)
	assert.NotNil(t, report)

	assert.Equal(t, report.SourceDocumentID, "notes")
	assert.Equal(t, report.DelimiterLeft, "<<")
	assert.Equal(t, report.DelimiterRight, ">>")
	assert.Equal(t, len(report.Entries), 2)

	// Entries are recorded in ascending source offset order.
	assert.Equal(t, report.Entries[0].RawText, "<<first>>")
	assert.Equal(t, report.Entries[0].SourceOffset, 6)
	assert.Equal(t, report.Entries[0].LineNumber, 1)
	assert.Equal(t, report.Entries[1].RawText, "<<second>>")
	assert.Equal(t, report.Entries[1].SourceOffset, 27)
	assert.Equal(t, report.Entries[1].LineNumber, 3)

	// The built report is retrievable from the store.
	stored, ok := store.Get(report.ID)
	assert.True(t, ok)
	assert.Equal(t, stored.ID, report.ID)
}

func TestBuilder_Build_NoPassages(t *testing.T) {
	store := marq.NewReportStore()
	builder := marq.NewBuilder(store)

	report, err := builder.Build("notes", "nothing marked here", marq.DefaultConfig())
	assert.Nil(t, err)
	assert.Nil(t, report)
	assert.Equal(t, len(store.All()), 0)
}

func TestBuilder_Build_InvalidConfig(t *testing.T) {
	store := marq.NewReportStore()
	builder := marq.NewBuilder(store)

	_, err := builder.Build("notes", "<<a>>", marq.Config{DelimiterLeft: "", DelimiterRight: ">>"})
	assert.NotNil(t, err)
}

func TestReport_Entry(t *testing.T) {
	report := &marq.Report{
		DelimiterLeft:  "<<",
		DelimiterRight: ">>",
		Entries: []marq.ReportEntry{
			{SourceDocumentID: "notes", SourceOffset: 6, LineNumber: 1, RawText: "<<first>>"},
		},
	}

	entry, err := report.Entry(0)
	assert.Nil(t, err)
	assert.Equal(t, entry.RawText, "<<first>>")

	_, err = report.Entry(-1)
	assert.True(t, errors.Is(err, marq.ErrNoEntry))

	_, err = report.Entry(1)
	assert.True(t, errors.Is(err, marq.ErrNoEntry))
}

func TestReport_InnerText(t *testing.T) {
	// Inner text is recovered with the delimiters recorded at build time,
	// independent of whatever the configuration says now.
	report := &marq.Report{
		DelimiterLeft:  "[[",
		DelimiterRight: "]]",
		Entries: []marq.ReportEntry{
			{RawText: "[[look me up]]"},
		},
	}

	inner, err := report.InnerText(0)
	assert.Nil(t, err)
	assert.Equal(t, inner, "look me up")

	_, err = report.InnerText(5)
	assert.True(t, errors.Is(err, marq.ErrNoEntry))
}

func TestReport_SnapshotIsImmutable(t *testing.T) {
	store := marq.NewReportStore()
	builder := marq.NewBuilder(store)

	report, err := builder.Build("notes", "start <<stale>> end", marq.DefaultConfig())
	assert.Nil(t, err)

	// A later edit to the source does not touch the recorded entries;
	// the offset simply points at whatever is there now.
	entry, err := report.Entry(0)
	assert.Nil(t, err)
	assert.Equal(t, entry.SourceOffset, 6)
	assert.Equal(t, entry.RawText, "<<stale>>")
}

func TestReportStore(t *testing.T) {
	store := marq.NewReportStore()
	older := &marq.Report{ID: "r-old", BuiltAt: time.Now().Add(-time.Hour)}
	newer := &marq.Report{ID: "r-new", BuiltAt: time.Now()}

	store.Put(older)
	store.Put(newer)

	all := store.All()
	assert.Equal(t, len(all), 2)
	assert.Equal(t, all[0].ID, "r-new")
	assert.Equal(t, all[1].ID, "r-old")

	store.Delete("r-old")
	_, ok := store.Get("r-old")
	assert.False(t, ok)
	assert.Equal(t, len(store.All()), 1)
}
