package index

import (
	"encoding/json"
	"fmt"

	"github.com/utkarsh5026/grut/pkg/common/fileops"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
)

// Index is the staging area: an ordered list of entries with unique paths.
//
// On disk it is a JSON array, oldest staged first:
//
//	[
//	  {
//	    "path": "a.txt",
//	    "digest": "2aae6c35c94fcfb415dbe95f408b9ce91ee846ed"
//	  }
//	]
type Index struct {
	entries []Entry
}

// NewIndex creates an empty index.
func NewIndex() *Index {
	return &Index{entries: make([]Entry, 0)}
}

// Add removes any entry for the same path and appends e. It reports
// whether an entry was replaced.
func (idx *Index) Add(e Entry) bool {
	replaced := idx.Remove(e.Path)
	idx.entries = append(idx.entries, e)
	return replaced
}

// Remove drops the entry for path, if any.
func (idx *Index) Remove(path layout.RelativePath) bool {
	for i, e := range idx.entries {
		if e.Path == path {
			idx.entries = append(idx.entries[:i], idx.entries[i+1:]...)
			return true
		}
	}
	return false
}

// Get returns the entry for path.
func (idx *Index) Get(path layout.RelativePath) (Entry, bool) {
	for _, e := range idx.entries {
		if e.Path == path {
			return e, true
		}
	}
	return Entry{}, false
}

// Has reports whether path is staged.
func (idx *Index) Has(path layout.RelativePath) bool {
	_, ok := idx.Get(path)
	return ok
}

// Clear removes all entries.
func (idx *Index) Clear() {
	idx.entries = make([]Entry, 0)
}

// Count returns the number of entries.
func (idx *Index) Count() int {
	return len(idx.entries)
}

// Entries returns a copy of the entries in staging order.
func (idx *Index) Entries() []Entry {
	out := make([]Entry, len(idx.entries))
	copy(out, idx.entries)
	return out
}

// Paths returns all staged paths in order.
func (idx *Index) Paths() []layout.RelativePath {
	paths := make([]layout.RelativePath, len(idx.entries))
	for i, e := range idx.entries {
		paths[i] = e.Path
	}
	return paths
}

// MarshalJSON writes the entries as a JSON array.
func (idx *Index) MarshalJSON() ([]byte, error) {
	return json.MarshalIndent(idx.entries, "", "  ")
}

// Parse decodes and validates a serialized index.
func Parse(data []byte) (*Index, error) {
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, corruptIndex("parse", "index is not a JSON entry list", err)
	}

	idx := NewIndex()
	for i, e := range entries {
		if err := e.Validate(); err != nil {
			return nil, corruptIndex("parse", fmt.Sprintf("entry %d", i), err)
		}
		if idx.Has(e.Path) {
			return nil, corruptIndex("parse", fmt.Sprintf("duplicate path %s", e.Path), nil)
		}
		idx.entries = append(idx.entries, e)
	}
	return idx, nil
}

// Read loads the index at path. A missing file is an empty index.
func Read(path string) (*Index, error) {
	data, err := fileops.ReadBytes(path)
	if err != nil {
		return nil, internal("read", err)
	}
	if data == nil {
		return NewIndex(), nil
	}
	return Parse(data)
}

// Write persists the index atomically.
func (idx *Index) Write(path string) error {
	data, err := idx.MarshalJSON()
	if err != nil {
		return internal("write", fmt.Errorf("failed to serialize index: %w", err))
	}
	data = append(data, '\n')

	if err := fileops.AtomicWrite(path, data, 0644); err != nil {
		return internal("write", fmt.Errorf("failed to write index file: %w", err))
	}
	return nil
}

// String returns a short description.
func (idx *Index) String() string {
	return fmt.Sprintf("Index{entries: %d}", len(idx.entries))
}
