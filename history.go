package calc

import (
	"io"
	"strings"
)

// MaxHistory is the most entries a History holds.
const MaxHistory = 200

// HistoryFilename is the conventional name for an exported history.
const HistoryFilename = "calc_history.csv"

// Entry is a record of one successful evaluation.
type Entry struct {
	// Expression is the input as the user typed it.
	Expression string
	// Result is the formatted result.
	Result string
	// Time is when the evaluation happened, already formatted.
	Time string
}

// History is a bounded log of entries, newest first. When a new entry would
// exceed MaxHistory, the oldest is dropped. A History is not safe for
// concurrent use.
type History struct {
	entries []Entry
}

// NewHistory creates an empty history.
func NewHistory() *History {
	return &History{entries: make([]Entry, 0, MaxHistory)}
}

// Record adds an entry at the front of the history.
func (h *History) Record(e Entry) {
	if len(h.entries) < MaxHistory {
		h.entries = append(h.entries, Entry{})
	}
	copy(h.entries[1:], h.entries)
	h.entries[0] = e
}

// Clear removes all entries.
func (h *History) Clear() {
	h.entries = h.entries[:0]
}

// Len returns the number of entries.
func (h *History) Len() int {
	return len(h.entries)
}

// Entries returns a copy of the entries, newest first.
func (h *History) Entries() []Entry {
	return append([]Entry(nil), h.entries...)
}

// Select returns the expression of the entry at index i, where 0 is the
// newest. It is the way to bring a past expression back for editing.
func (h *History) Select(i int) (string, bool) {
	if i < 0 || i >= len(h.entries) {
		return "", false
	}
	return h.entries[i].Expression, true
}

// CSVHeader is the first line of an exported history.
const CSVHeader = "Expression,Result,Time"

// ExportCSV renders the history as CSV. Every field is quoted, and every line
// including the last ends with a newline.
func (h *History) ExportCSV() string {
	var b strings.Builder
	h.writeCSV(&b)
	return b.String()
}

// WriteCSV writes the history as CSV to w.
func (h *History) WriteCSV(w io.Writer) error {
	_, err := io.WriteString(w, h.ExportCSV())
	return err
}

func (h *History) writeCSV(b *strings.Builder) {
	b.WriteString(CSVHeader)
	b.WriteByte('\n')
	for _, e := range h.entries {
		csvField(b, e.Expression)
		b.WriteByte(',')
		csvField(b, e.Result)
		b.WriteByte(',')
		csvField(b, e.Time)
		b.WriteByte('\n')
	}
}

func csvField(b *strings.Builder, s string) {
	b.WriteByte('"')
	b.WriteString(strings.ReplaceAll(s, `"`, `""`))
	b.WriteByte('"')
}
