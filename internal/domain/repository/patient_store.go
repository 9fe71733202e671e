package repository

import (
	"context"

	"patient-registry-service/internal/domain/entity"
)

// MatchMode selects how multiple filter fields combine in FindBy and Count.
type MatchMode int

const (
	// MatchAny passes a record when any single filter field matches.
	MatchAny MatchMode = iota
	// MatchAll passes a record only when every filter field matches.
	MatchAll
)

// PatientStore owns the authoritative patient collection. Implementations
// must keep identifiers unique at all times and hand out copies, never live
// references.
type PatientStore interface {
	// Create computes the identifier from the draft's identity fields and
	// inserts a new record. The draft must carry firstName, lastName and dob.
	Create(ctx context.Context, draft entity.PatientDraft) (entity.Patient, error)

	// Get returns the record with the given identifier.
	Get(ctx context.Context, id string) (entity.Patient, error)

	// Replace removes the record with the given identifier and creates a new
	// one from the draft. The new record may carry a different identifier. If
	// the create step fails, the original record is restored unchanged. The
	// second return value is the record as it stood before the replacement,
	// captured atomically with the mutation.
	Replace(ctx context.Context, id string, draft entity.PatientDraft) (entity.Patient, entity.Patient, error)

	// Patch merges the present draft fields onto the existing record and
	// re-keys it when the recomputed identifier changed. A recomputed
	// identifier colliding with a different record rejects the patch without
	// mutating anything. The second return value is the pre-merge record,
	// captured atomically with the mutation.
	Patch(ctx context.Context, id string, draft entity.PatientDraft) (entity.Patient, entity.Patient, error)

	// Delete removes the record with the given identifier and returns it.
	// Deleting an absent identifier fails.
	Delete(ctx context.Context, id string) (entity.Patient, error)

	// Exists is a pure lookup with no failure mode.
	Exists(ctx context.Context, id string) bool

	// FindBy returns the records passing the filter and search stages, in
	// insertion order.
	FindBy(ctx context.Context, opts entity.SearchOptions, filter entity.PatientDraft) []entity.Patient

	// Count returns the cardinality of the FindBy result set for the same
	// inputs.
	Count(ctx context.Context, opts entity.SearchOptions, filter entity.PatientDraft) int
}
