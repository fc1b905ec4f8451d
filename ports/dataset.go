package ports

import (
	"gobest/domain/contrast"
)

// DatasetPort is the external-collaborator abstraction supplying cleaned,
// group-labeled samples. Loading and parsing upstream formats happens behind
// this port, never inside the engine.
type DatasetPort interface {
	// GroupNames returns all group names in sorted order.
	GroupNames() []string

	// Group returns the named sample, or core.ErrGroupNotFound.
	Group(name string) (contrast.Sample, error)
}
