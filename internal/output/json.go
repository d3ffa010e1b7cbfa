package output

import (
	"bufio"
	"encoding/json"
	"io"
)

// jsonWriter buffers items and flushes them as a pretty-printed document.
// A single item is emitted directly, multiple items as an array.
type jsonWriter struct {
	w     *bufio.Writer
	items []any
}

func newJSONWriter(w io.Writer) *jsonWriter {
	// Non-nil so an empty flush marshals to [] rather than null.
	return &jsonWriter{w: bufio.NewWriter(w), items: []any{}}
}

func (w *jsonWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

func (w *jsonWriter) Flush() error {
	var doc any = w.items
	if len(w.items) == 1 {
		doc = w.items[0]
	}

	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// jsonlWriter streams one JSON document per line.
type jsonlWriter struct {
	w *bufio.Writer
}

func newJSONLWriter(w io.Writer) *jsonlWriter {
	return &jsonlWriter{w: bufio.NewWriter(w)}
}

func (w *jsonlWriter) Write(data any) error {
	out, err := json.Marshal(data)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(out); err != nil {
		return err
	}
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

func (w *jsonlWriter) Flush() error {
	return w.w.Flush()
}
