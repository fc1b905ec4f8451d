package run

import (
	"crypto/sha256"
	"fmt"
	"strings"

	"gobest/domain/contrast"
	"gobest/domain/core"
)

// EngineVersion participates in the determinism fingerprint: a change to the
// resampling or interval code must bump it.
const EngineVersion = "v0.1.0"

// Fingerprint ensures deterministic replay: same seed, same specs, same
// engine version imply bit-for-bit identical results.
type Fingerprint struct {
	SpecListHash core.SpecListHash `json:"spec_list_hash"`
	Seed         int64             `json:"seed"`
	Resamples    int               `json:"resamples"`
	Permutations int               `json:"permutations"`
	Version      string            `json:"version"`
	Fingerprint  core.Hash         `json:"fingerprint"` // Hash of all above
}

// NewFingerprint creates a fingerprint from determinism parameters
func NewFingerprint(specListHash core.SpecListHash, seed int64, resamples, permutations int, version string) Fingerprint {
	data := fmt.Sprintf("specs:%s|seed:%d|resamples:%d|permutations:%d|engine:%s",
		specListHash, seed, resamples, permutations, version)
	sum := sha256.Sum256([]byte(data))
	return Fingerprint{
		SpecListHash: specListHash,
		Seed:         seed,
		Resamples:    resamples,
		Permutations: permutations,
		Version:      version,
		Fingerprint:  core.Hash(fmt.Sprintf("%x", sum)),
	}
}

// ComputeSpecListHash hashes an ordered spec list. Spec order matters: the
// per-comparison RNG streams are keyed by spec identity, not position, but
// the output order of a run is positional.
func ComputeSpecListHash(specs []contrast.ComparisonSpec) core.SpecListHash {
	var data strings.Builder
	for _, spec := range specs {
		data.WriteString(spec.Key())
		data.WriteString(fmt.Sprintf("|%g;", spec.ConfidenceLevel))
	}
	return core.NewSpecListHash([]byte(data.String()))
}

// Manifest is the truth source for replaying a batch of comparisons.
type Manifest struct {
	RunID           core.RunID        `json:"run_id"`
	Seed            int64             `json:"seed"`
	Resamples       int               `json:"resamples"`
	Permutations    int               `json:"permutations"`
	ConfidenceLevel float64           `json:"confidence_level"`
	SpecListHash    core.SpecListHash `json:"spec_list_hash"`
	Version         string            `json:"engine_version"`
	Fingerprint     Fingerprint       `json:"fingerprint"`
	CreatedAt       core.Timestamp    `json:"created_at"`
}

// NewManifest creates a run manifest for a batch of comparison specs.
func NewManifest(runID core.RunID, specs []contrast.ComparisonSpec, seed int64, resamples, permutations int, confidenceLevel float64) Manifest {
	specListHash := ComputeSpecListHash(specs)
	return Manifest{
		RunID:           runID,
		Seed:            seed,
		Resamples:       resamples,
		Permutations:    permutations,
		ConfidenceLevel: confidenceLevel,
		SpecListHash:    specListHash,
		Version:         EngineVersion,
		Fingerprint:     NewFingerprint(specListHash, seed, resamples, permutations, EngineVersion),
		CreatedAt:       core.Now(),
	}
}

// Validate checks if the manifest is complete
func (m Manifest) Validate() error {
	if core.ID(m.RunID).IsEmpty() {
		return core.NewSpecError("run_manifest", "run_id cannot be empty")
	}
	if m.SpecListHash == "" {
		return core.NewSpecError("run_manifest", "spec_list_hash cannot be empty")
	}
	if m.Resamples < 1 {
		return core.NewSpecError("run_manifest", "resamples must be positive")
	}
	if m.Version == "" {
		return core.NewSpecError("run_manifest", "engine_version cannot be empty")
	}
	return nil
}
