package plotly

import (
	"encoding/json"
	"fmt"
	"io"
)

// Figure is a complete plotly document: the trace list and the layout.
type Figure struct {
	Data   ObjectList `json:"data"`
	Layout Object     `json:"layout"`
}

// NewFigure returns an empty figure with a non-nil layout.
func NewFigure() *Figure {
	return &Figure{Layout: Object{}}
}

// Clean removes nil values from every trace and from the layout.
func (f *Figure) Clean() {
	for _, trace := range f.Data {
		trace.Clean()
	}
	f.Layout.Clean()
}

// Strip removes style information from every trace and from the layout,
// leaving only the data-bearing keys.
func (f *Figure) Strip() {
	for _, trace := range f.Data {
		trace.Strip(KindData)
	}
	f.Layout.Strip(KindLayout)
}

// Validate checks every trace and the layout against the plotly vocabulary.
func (f *Figure) Validate() error {
	for i, trace := range f.Data {
		if err := trace.Validate(KindData); err != nil {
			return fmt.Errorf("trace %d: %w", i, err)
		}
	}
	if err := f.Layout.Validate(KindLayout); err != nil {
		return fmt.Errorf("layout: %w", err)
	}
	return nil
}

// Repair normalizes known key and value spellings in every trace and in
// the layout.
func (f *Figure) Repair() {
	for _, trace := range f.Data {
		trace.Repair(KindData)
	}
	f.Layout.Repair(KindLayout)
}

// MarshalData returns the trace list as compact JSON, the form the upload
// API expects in its args field.
func (f *Figure) MarshalData() ([]byte, error) {
	data := f.Data
	if data == nil {
		data = ObjectList{}
	}
	return json.Marshal(data)
}

// Marshal returns the whole document as compact JSON.
func (f *Figure) Marshal() ([]byte, error) {
	return json.Marshal(f)
}

// Write encodes the document as indented JSON to w.
func (f *Figure) Write(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(f); err != nil {
		return fmt.Errorf("encode plotly figure: %w", err)
	}
	return nil
}
