package repository

import (
	"context"
	"strings"
	"sync"
	"time"

	"patient-registry-service/internal/domain/entity"
	domainRepo "patient-registry-service/internal/domain/repository"
	"patient-registry-service/pkg/apierror"
	"patient-registry-service/pkg/identifier"
)

// memoryPatientStore keeps the collection in a map keyed by the derived
// identifier, plus an order slice so search results come back in insertion
// order. A single mutex guards every multi-step operation; the
// lookup-then-mutate sequences are critical sections under concurrent
// request handling.
type memoryPatientStore struct {
	mu       sync.Mutex
	patients map[string]entity.Patient
	order    []string
	mode     domainRepo.MatchMode
	now      func() time.Time
}

func NewMemoryPatientStore(mode domainRepo.MatchMode) domainRepo.PatientStore {
	return &memoryPatientStore{
		patients: make(map[string]entity.Patient),
		mode:     mode,
		now:      time.Now,
	}
}

func (s *memoryPatientStore) Create(ctx context.Context, draft entity.PatientDraft) (entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.createLocked(draft)
}

// createLocked assumes the draft passed create validation, i.e. the three
// identity fields are set.
func (s *memoryPatientStore) createLocked(draft entity.PatientDraft) (entity.Patient, error) {
	id := identifier.Generate(*draft.FirstName, *draft.LastName, *draft.Dob)

	if _, exists := s.patients[id]; exists {
		return entity.Patient{}, apierror.Duplicate(id)
	}

	patient := entity.Patient{
		ID:        id,
		FirstName: *draft.FirstName,
		LastName:  *draft.LastName,
		Dob:       *draft.Dob,
		Created:   s.now().UTC().Format(time.RFC3339),
	}

	// Optional fields are copied only when present so the stored record stays
	// sparse.
	if draft.Telecom != nil {
		telecom := *draft.Telecom
		patient.Telecom = &telecom
	}
	if draft.IsActive != nil {
		isActive := *draft.IsActive
		patient.IsActive = &isActive
	}

	s.insertLocked(patient)

	return patient.Clone(), nil
}

func (s *memoryPatientStore) Get(ctx context.Context, id string) (entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	patient, ok := s.patients[id]
	if !ok {
		return entity.Patient{}, apierror.NotFound(id)
	}
	return patient.Clone(), nil
}

func (s *memoryPatientStore) Replace(ctx context.Context, id string, draft entity.PatientDraft) (entity.Patient, entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.patients[id]
	if !ok {
		return entity.Patient{}, entity.Patient{}, apierror.NotFound(id)
	}

	// Remove first: the new fields may regenerate the same identifier, which
	// must not trip the uniqueness check against the record being replaced.
	s.removeLocked(id)

	replacement, err := s.createLocked(draft)
	if err != nil {
		// Roll back to the captured record unchanged, created stamp included.
		s.insertLocked(current)
		return entity.Patient{}, entity.Patient{}, err
	}

	return replacement, current.Clone(), nil
}

func (s *memoryPatientStore) Patch(ctx context.Context, id string, draft entity.PatientDraft) (entity.Patient, entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.patients[id]
	if !ok {
		return entity.Patient{}, entity.Patient{}, apierror.NotFound(id)
	}

	merged := current.Clone()
	if draft.FirstName != nil {
		merged.FirstName = *draft.FirstName
	}
	if draft.LastName != nil {
		merged.LastName = *draft.LastName
	}
	if draft.Dob != nil {
		merged.Dob = *draft.Dob
	}
	if draft.Telecom != nil {
		telecom := *draft.Telecom
		merged.Telecom = &telecom
	}
	if draft.IsActive != nil {
		isActive := *draft.IsActive
		merged.IsActive = &isActive
	}

	// Identity fields may have changed, so the identifier is recomputed.
	newID := identifier.Generate(merged.FirstName, merged.LastName, merged.Dob)

	if newID == id {
		s.patients[id] = merged
		return merged.Clone(), current.Clone(), nil
	}

	if _, taken := s.patients[newID]; taken {
		return entity.Patient{}, entity.Patient{}, apierror.Duplicate(newID)
	}

	merged.ID = newID
	s.removeLocked(id)
	s.insertLocked(merged)

	return merged.Clone(), current.Clone(), nil
}

func (s *memoryPatientStore) Delete(ctx context.Context, id string) (entity.Patient, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.patients[id]
	if !ok {
		return entity.Patient{}, apierror.NotFound(id)
	}
	s.removeLocked(id)
	return current.Clone(), nil
}

func (s *memoryPatientStore) Exists(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, ok := s.patients[id]
	return ok
}

func (s *memoryPatientStore) FindBy(ctx context.Context, opts entity.SearchOptions, filter entity.PatientDraft) []entity.Patient {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.findLocked(opts, filter)
}

// Count shares the FindBy evaluation; it is the cardinality of the same
// result set, not a separate pass with different semantics.
func (s *memoryPatientStore) Count(ctx context.Context, opts entity.SearchOptions, filter entity.PatientDraft) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.findLocked(opts, filter))
}

func (s *memoryPatientStore) findLocked(opts entity.SearchOptions, filter entity.PatientDraft) []entity.Patient {
	var term string
	if opts.HasQuery() {
		term = strings.ToLower(*opts.Query)
	}

	results := []entity.Patient{}
	for _, id := range s.order {
		patient := s.patients[id]

		if !filter.Empty() && !s.matches(patient, filter) {
			continue
		}

		if term != "" {
			telecom := ""
			if patient.Telecom != nil {
				telecom = *patient.Telecom
			}
			haystack := strings.ToLower(patient.FirstName + patient.LastName + telecom)
			if !strings.Contains(haystack, term) {
				continue
			}
		}

		results = append(results, patient.Clone())
	}

	// TODO apply opts.Limit/opts.Offset here once pagination is wired through
	// the list endpoint.
	return results
}

// matches evaluates the filter fields against a record. String comparisons
// are case-insensitive; optional record fields never match while absent.
// Under MatchAny a single matching field passes the record, under MatchAll
// every present filter field must match.
func (s *memoryPatientStore) matches(patient entity.Patient, filter entity.PatientDraft) bool {
	checks := []func() (set bool, match bool){
		func() (bool, bool) {
			return filter.FirstName != nil, filter.FirstName != nil && strings.EqualFold(patient.FirstName, *filter.FirstName)
		},
		func() (bool, bool) {
			return filter.LastName != nil, filter.LastName != nil && strings.EqualFold(patient.LastName, *filter.LastName)
		},
		func() (bool, bool) {
			return filter.Dob != nil, filter.Dob != nil && strings.EqualFold(patient.Dob, *filter.Dob)
		},
		func() (bool, bool) {
			set := filter.Telecom != nil
			match := set && patient.Telecom != nil && strings.EqualFold(*patient.Telecom, *filter.Telecom)
			return set, match
		},
		func() (bool, bool) {
			set := filter.IsActive != nil
			match := set && patient.IsActive != nil && *patient.IsActive == *filter.IsActive
			return set, match
		},
	}

	for _, check := range checks {
		set, match := check()
		if !set {
			continue
		}
		if match && s.mode == domainRepo.MatchAny {
			return true
		}
		if !match && s.mode == domainRepo.MatchAll {
			return false
		}
	}

	return s.mode == domainRepo.MatchAll
}

func (s *memoryPatientStore) insertLocked(patient entity.Patient) {
	s.patients[patient.ID] = patient
	s.order = append(s.order, patient.ID)
}

func (s *memoryPatientStore) removeLocked(id string) {
	delete(s.patients, id)
	for i, existing := range s.order {
		if existing == id {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}
}
