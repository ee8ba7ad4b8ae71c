package assets

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/brunoga/deep"
	goversion "github.com/hashicorp/go-version"
	"gopkg.in/yaml.v3"
)

var (
	// ErrVersionAlreadyExists is returned when a version label is declared twice.
	ErrVersionAlreadyExists = errors.New("version already exists")

	// ErrNoVersions is returned when an operation needs at least one declared version.
	ErrNoVersions = errors.New("no versions declared")

	// ErrNoVersionLabel is returned when a version entry has an empty label.
	ErrNoVersionLabel = errors.New("version entry has no label")
)

// VersionEntry is a single (version label, content checksum) pair.
type VersionEntry struct {
	Label    string   `json:"version"  yaml:"version"`
	Checksum Checksum `json:"checksum" yaml:"checksum"`
}

// VersionCollection is an ordered collection of version entries.
// Labels are unique within the collection and declaration order is
// preserved, it is not semantically significant but humans diff these files.
type VersionCollection struct {
	entries []VersionEntry
	index   map[string]int
}

// NewVersionCollection returns an empty collection.
func NewVersionCollection() *VersionCollection {
	return &VersionCollection{
		entries: make([]VersionEntry, 0),
		index:   make(map[string]int),
	}
}

// Add appends a new version entry to the collection.
// The checksum is validated and normalized. Re-declaring an existing label is
// an error unless overwrite is set, in which case the entry is replaced in place.
func (c *VersionCollection) Add(label string, checksum string, overwrite bool) error {
	if label == "" {
		return ErrNoVersionLabel
	}

	sum, err := ParseChecksum(checksum)
	if err != nil {
		return fmt.Errorf("version %s: %w", label, err)
	}

	if i, exists := c.index[label]; exists {
		if !overwrite {
			return fmt.Errorf("%w: %s", ErrVersionAlreadyExists, label)
		}
		c.entries[i].Checksum = sum
		return nil
	}

	c.entries = append(c.entries, VersionEntry{Label: label, Checksum: sum})
	c.index[label] = len(c.entries) - 1

	return nil
}

// Exists returns true if the supplied version label is declared.
func (c *VersionCollection) Exists(label string) bool {
	_, ok := c.index[label]
	return ok
}

// Checksum returns the declared checksum for the supplied version label.
func (c *VersionCollection) Checksum(label string) (Checksum, bool) {
	i, ok := c.index[label]
	if !ok {
		return "", false
	}
	return c.entries[i].Checksum, true
}

// Entries returns a copy of the version entries in declaration order.
func (c *VersionCollection) Entries() []VersionEntry {
	return deep.MustCopy(c.entries)
}

// Labels returns the version labels in declaration order.
func (c *VersionCollection) Labels() []string {
	labels := make([]string, 0, len(c.entries))
	for _, e := range c.entries {
		labels = append(labels, e.Label)
	}
	return labels
}

// Len returns the number of declared versions.
func (c *VersionCollection) Len() int {
	return len(c.entries)
}

// Latest returns the entry with the highest version label.
// Labels are ordered liberally (calver, semver and dash-suffixed labels all
// parse); entries whose label does not parse at all are ranked below those
// that do, and ties fall back to declaration order, last declared wins.
func (c *VersionCollection) Latest() (VersionEntry, error) {
	if len(c.entries) == 0 {
		return VersionEntry{}, ErrNoVersions
	}

	best := c.entries[0]
	bestVer, _ := goversion.NewVersion(best.Label)

	for _, e := range c.entries[1:] {
		v, err := goversion.NewVersion(e.Label)
		if err != nil {
			continue
		}
		if bestVer == nil || v.GreaterThanOrEqual(bestVer) {
			best = e
			bestVer = v
		}
	}

	return best, nil
}

// Copy returns a deep copy of the collection.
func (c *VersionCollection) Copy() *VersionCollection {
	cpy := NewVersionCollection()
	cpy.entries = deep.MustCopy(c.entries)
	for i, e := range cpy.entries {
		cpy.index[e.Label] = i
	}
	return cpy
}

// MarshalJSON implements json.Marshaler, emitting entries in declaration order.
func (c *VersionCollection) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.entries) //nolint:wrapcheck
}

// UnmarshalJSON implements json.Unmarshaler and enforces label uniqueness.
func (c *VersionCollection) UnmarshalJSON(data []byte) error {
	var entries []VersionEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err //nolint:wrapcheck
	}
	return c.replace(entries)
}

// MarshalYAML implements yaml.Marshaler, emitting entries in declaration order.
func (c *VersionCollection) MarshalYAML() (any, error) {
	return c.entries, nil
}

// UnmarshalYAML implements yaml.Unmarshaler and enforces label uniqueness.
func (c *VersionCollection) UnmarshalYAML(value *yaml.Node) error {
	var entries []VersionEntry
	if err := value.Decode(&entries); err != nil {
		return err //nolint:wrapcheck
	}
	return c.replace(entries)
}

func (c *VersionCollection) replace(entries []VersionEntry) error {
	c.entries = make([]VersionEntry, 0, len(entries))
	c.index = make(map[string]int, len(entries))
	for _, e := range entries {
		if err := c.Add(e.Label, e.Checksum.String(), false); err != nil {
			return err
		}
	}
	return nil
}
