package commit

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"

	"github.com/utkarsh5026/grut/pkg/index"
	"github.com/utkarsh5026/grut/pkg/objects"
	"github.com/utkarsh5026/grut/pkg/repository/layout"
)

// TimestampLayout is the on-disk timestamp format.
const TimestampLayout = time.RFC3339Nano

// Commit is one immutable snapshot of the staging index.
//
// Commits live in the object store next to blobs. The stored form is
// compact JSON with the fields in this fixed order:
//
//	{"timestamp":"2024-01-01T00:00:00Z","message":"first","parent":null,
//	 "files":[{"path":"a.txt","digest":"..."}]}
//
// The digest is the SHA-1 of exactly those bytes, so it is never part of
// the record itself.
type Commit struct {
	Digest    objects.Digest
	Timestamp time.Time
	Message   string
	Parent    objects.Digest // zero for the root commit
	Files     []index.Entry
}

// record is the wire shape. Pointers let Parse tell a missing field from a
// zero one.
type record struct {
	Timestamp *string         `json:"timestamp"`
	Message   *string         `json:"message"`
	Parent    *objects.Digest `json:"parent"`
	Files     *[]index.Entry  `json:"files"`
}

// IsRoot reports whether the commit has no parent.
func (c *Commit) IsRoot() bool {
	return c.Parent.IsZero()
}

// File looks up the entry for path in this commit's snapshot.
func (c *Commit) File(path layout.RelativePath) (index.Entry, bool) {
	for _, f := range c.Files {
		if f.Path == path {
			return f, true
		}
	}
	return index.Entry{}, false
}

// Validate checks the fields that must hold for every stored commit.
func (c *Commit) Validate() error {
	if c.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	if !c.Parent.IsZero() {
		if err := c.Parent.Validate(); err != nil {
			return fmt.Errorf("invalid parent: %w", err)
		}
	}

	seen := make(map[layout.RelativePath]struct{}, len(c.Files))
	for _, f := range c.Files {
		if err := f.Validate(); err != nil {
			return err
		}
		if _, dup := seen[f.Path]; dup {
			return fmt.Errorf("duplicate path %s", f.Path)
		}
		seen[f.Path] = struct{}{}
	}
	return nil
}

// Serialize returns the canonical bytes of the commit, excluding Digest.
func (c *Commit) Serialize() ([]byte, error) {
	if err := c.Validate(); err != nil {
		return nil, invalid("serialize", "invalid commit", err)
	}

	ts := c.Timestamp.UTC().Format(TimestampLayout)
	msg := c.Message
	files := c.Files
	if files == nil {
		files = []index.Entry{}
	}

	rec := record{Timestamp: &ts, Message: &msg, Files: &files}
	if !c.Parent.IsZero() {
		parent := c.Parent
		rec.Parent = &parent
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(rec); err != nil {
		return nil, invalid("serialize", "encoding commit", err)
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ComputeDigest returns the digest the serialized commit will be stored under.
func (c *Commit) ComputeDigest() (objects.Digest, error) {
	data, err := c.Serialize()
	if err != nil {
		return "", err
	}
	return objects.Sum(data), nil
}

// Parse decodes a stored commit. Anything that is not a well-formed commit
// record is reported as corrupt history. digest is attached to the result
// as-is.
func Parse(digest objects.Digest, data []byte) (*Commit, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var rec record
	if err := dec.Decode(&rec); err != nil {
		return nil, corrupt("parse", fmt.Sprintf("object %s is not a commit record", digest.Short()), err)
	}
	if dec.More() {
		return nil, corrupt("parse", fmt.Sprintf("trailing data after commit %s", digest.Short()), nil)
	}

	switch {
	case rec.Timestamp == nil:
		return nil, corrupt("parse", "commit has no timestamp", nil)
	case rec.Message == nil:
		return nil, corrupt("parse", "commit has no message", nil)
	case rec.Files == nil:
		return nil, corrupt("parse", "commit has no file list", nil)
	}

	ts, err := time.Parse(TimestampLayout, *rec.Timestamp)
	if err != nil {
		return nil, corrupt("parse", "bad commit timestamp", err)
	}

	c := &Commit{
		Digest:    digest,
		Timestamp: ts,
		Message:   *rec.Message,
		Files:     *rec.Files,
	}
	if rec.Parent != nil {
		c.Parent = *rec.Parent
	}

	if err := c.Validate(); err != nil {
		return nil, corrupt("parse", fmt.Sprintf("invalid commit %s", digest.Short()), err)
	}
	return c, nil
}

func (c *Commit) String() string {
	return fmt.Sprintf("Commit{digest: %s, parent: %s, files: %d, message: %.50q}",
		c.Digest.Short(), c.Parent.Short(), len(c.Files), c.Message)
}
