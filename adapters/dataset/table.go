package dataset

import (
	"sort"

	"gobest/domain/contrast"
	"gobest/domain/core"
)

// Table is the in-memory DatasetPort implementation for callers that already
// hold cleaned, group-labeled columns. Samples are validated on insertion so
// nothing downstream re-checks for NaNs or empty groups.
type Table struct {
	groups map[string]contrast.Sample
}

// NewTable creates an empty grouped table.
func NewTable() *Table {
	return &Table{groups: make(map[string]contrast.Sample)}
}

// FromColumns builds a table from group-name to observation columns.
func FromColumns(columns map[string][]float64) (*Table, error) {
	t := NewTable()
	for group, values := range columns {
		if err := t.AddGroup(group, values, nil); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// AddGroup validates and stores one group's observations. Unit IDs are
// optional and only needed for paired designs.
func (t *Table) AddGroup(group string, observations []float64, unitIDs []string) error {
	sample, err := contrast.NewSample(group, observations, unitIDs)
	if err != nil {
		return err
	}
	t.groups[group] = sample
	return nil
}

// GroupNames returns all group names in sorted order.
func (t *Table) GroupNames() []string {
	names := make([]string, 0, len(t.groups))
	for name := range t.groups {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Group returns the named sample.
func (t *Table) Group(name string) (contrast.Sample, error) {
	sample, ok := t.groups[name]
	if !ok {
		return contrast.Sample{}, core.NewGroupNotFoundError(name)
	}
	return sample, nil
}

// Len returns the number of groups.
func (t *Table) Len() int {
	return len(t.groups)
}
