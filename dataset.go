package flexlist

import (
	"encoding/json"
	"io"
)

// Row maps a column key to the cell's inner markup. Markup is kept for
// display; comparisons use the tag-stripped text.
type Row map[string]string

// Dataset is the validated result of an extraction. It is read-only once
// built and may be shared by every view derived from it.
type Dataset struct {
	Settings Settings `json:"settings"`
	Columns  []Column `json:"columns"`
	Rows     []Row    `json:"rows"`
}

// Column returns the column with the given key.
func (d *Dataset) Column(key string) (*Column, bool) {
	for i := range d.Columns {
		if d.Columns[i].Key == key {
			return &d.Columns[i], true
		}
	}
	return nil, false
}

// Validate returns an error if a column is invalid or a key repeats.
func (d *Dataset) Validate() error {
	seen := make(map[string]bool, len(d.Columns))
	for i := range d.Columns {
		if err := d.Columns[i].Validate(); err != nil {
			return err
		}
		if seen[d.Columns[i].Key] {
			return Errorf(EINVALID, "duplicate column key %q", d.Columns[i].Key)
		}
		seen[d.Columns[i].Key] = true
	}
	return nil
}

// EncodeDataset writes the dataset as JSON. Markup and non-ASCII text are
// written unescaped.
func EncodeDataset(w io.Writer, d *Dataset) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	return enc.Encode(d)
}

// DecodeDataset reads a dataset written by EncodeDataset.
func DecodeDataset(r io.Reader) (*Dataset, error) {
	var d Dataset
	if err := json.NewDecoder(r).Decode(&d); err != nil {
		return nil, Errorf(EINVALID, "decode dataset: %v", err)
	}
	if err := d.Validate(); err != nil {
		return nil, err
	}
	return &d, nil
}
