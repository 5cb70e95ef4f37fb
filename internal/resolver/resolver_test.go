package resolver

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"

	"github.com/rpattn/rximport/internal/domain"
	"github.com/rpattn/rximport/internal/repository"
)

// stubRefs is an in-memory ReferenceRepository keyed by type-qualified
// natural key. raceKeys simulates a concurrent run winning a create: the
// entity appears in the store but the create reports a unique violation.
type stubRefs struct {
	store    map[string]uuid.UUID
	finds    int
	creates  int
	findErr  error
	raceKeys map[string]bool
}

var _ repository.ReferenceRepository = (*stubRefs)(nil)

func newStubRefs() *stubRefs {
	return &stubRefs{store: make(map[string]uuid.UUID), raceKeys: make(map[string]bool)}
}

func (s *stubRefs) find(typ, key string) (uuid.UUID, bool, error) {
	s.finds++
	if s.findErr != nil {
		return uuid.Nil, false, s.findErr
	}
	id, ok := s.store[typ+"/"+key]
	return id, ok, nil
}

func (s *stubRefs) create(typ, key string) (uuid.UUID, error) {
	s.creates++
	qualified := typ + "/" + key
	if s.raceKeys[qualified] {
		s.store[qualified] = uuid.New()
		return uuid.Nil, repository.ErrDuplicate
	}
	if _, exists := s.store[qualified]; exists {
		return uuid.Nil, repository.ErrDuplicate
	}
	id := uuid.New()
	s.store[qualified] = id
	return id, nil
}

func (s *stubRefs) FindCoveredEntityByKey(_ context.Context, key string) (uuid.UUID, bool, error) {
	return s.find("covered_entity", key)
}

func (s *stubRefs) CreateCoveredEntity(_ context.Context, e domain.CoveredEntity) (uuid.UUID, error) {
	return s.create("covered_entity", e.NaturalKey())
}

func (s *stubRefs) FindPharmacyByKey(_ context.Context, key string) (uuid.UUID, bool, error) {
	return s.find("pharmacy", key)
}

func (s *stubRefs) CreatePharmacy(_ context.Context, p domain.Pharmacy) (uuid.UUID, error) {
	return s.create("pharmacy", p.NaturalKey())
}

func (s *stubRefs) FindPrescriberByKey(_ context.Context, key string) (uuid.UUID, bool, error) {
	return s.find("prescriber", key)
}

func (s *stubRefs) CreatePrescriber(_ context.Context, p domain.Prescriber) (uuid.UUID, error) {
	return s.create("prescriber", p.NaturalKey())
}

func (s *stubRefs) FindDrugByKey(_ context.Context, key string) (uuid.UUID, bool, error) {
	return s.find("drug", key)
}

func (s *stubRefs) CreateDrug(_ context.Context, d domain.Drug) (uuid.UUID, error) {
	return s.create("drug", d.NaturalKey())
}

func (s *stubRefs) FindPatientByKey(_ context.Context, key string) (uuid.UUID, bool, error) {
	return s.find("patient", key)
}

func (s *stubRefs) CreatePatient(_ context.Context, p domain.Patient) (uuid.UUID, error) {
	return s.create("patient", p.NaturalKey())
}

func (s *stubRefs) FindLocationByKey(_ context.Context, key string) (uuid.UUID, bool, error) {
	return s.find("location", key)
}

func (s *stubRefs) CreateLocation(_ context.Context, l domain.Location) (uuid.UUID, error) {
	return s.create("location", l.NaturalKey())
}

func (s *stubRefs) FindInsurancePlanByKey(_ context.Context, key string) (uuid.UUID, bool, error) {
	return s.find("insurance_plan", key)
}

func (s *stubRefs) CreateInsurancePlan(_ context.Context, p domain.InsurancePlan) (uuid.UUID, error) {
	return s.create("insurance_plan", p.NaturalKey())
}

func TestResolverCreatesEachKeyOnce(t *testing.T) {
	refs := newStubRefs()
	r := New(refs)
	ctx := context.Background()

	pharmacy := domain.Pharmacy{NPI: "1093817465", Name: "Main Street Pharmacy"}
	first, err := r.Pharmacy(ctx, pharmacy)
	if err != nil {
		t.Fatalf("first resolve: %v", err)
	}
	second, err := r.Pharmacy(ctx, pharmacy)
	if err != nil {
		t.Fatalf("second resolve: %v", err)
	}
	if first != second {
		t.Errorf("same key resolved to different ids: %s vs %s", first, second)
	}
	if refs.creates != 1 {
		t.Errorf("creates = %d, want 1", refs.creates)
	}
	// The second resolve must be a pure cache hit.
	if refs.finds != 1 {
		t.Errorf("finds = %d, want 1", refs.finds)
	}
	if got := r.Counts().Pharmacies; got != 1 {
		t.Errorf("Counts().Pharmacies = %d, want 1", got)
	}
}

func TestResolverEquivalentSpellingsShareOneEntity(t *testing.T) {
	refs := newStubRefs()
	r := New(refs)
	ctx := context.Background()

	first, err := r.Drug(ctx, domain.Drug{NDC: "00071-0155-23"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	second, err := r.Drug(ctx, domain.Drug{NDC: "00071015523"})
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if first != second {
		t.Error("hyphenated and bare NDC must resolve to the same drug")
	}
	if refs.creates != 1 {
		t.Errorf("creates = %d, want 1", refs.creates)
	}
}

func TestResolverReusesExistingEntities(t *testing.T) {
	refs := newStubRefs()
	ctx := context.Background()

	// First run seeds the store.
	seed := New(refs)
	entity := domain.CoveredEntity{Entity340BID: "DSH340B001", Name: "General Hospital"}
	seededID, err := seed.CoveredEntity(ctx, entity)
	if err != nil {
		t.Fatalf("seed resolve: %v", err)
	}

	// A later run over the same data creates nothing.
	rerun := New(refs)
	id, err := rerun.CoveredEntity(ctx, entity)
	if err != nil {
		t.Fatalf("rerun resolve: %v", err)
	}
	if id != seededID {
		t.Errorf("rerun resolved %s, want %s", id, seededID)
	}
	if got := rerun.Counts().Total(); got != 0 {
		t.Errorf("rerun created %d entities, want 0", got)
	}
}

func TestResolverMissingKey(t *testing.T) {
	r := New(newStubRefs())
	_, err := r.Patient(context.Background(), domain.Patient{})
	if !errors.Is(err, ErrMissingKey) {
		t.Errorf("err = %v, want ErrMissingKey", err)
	}
}

func TestResolverRetriesDuplicateCreateAsLookup(t *testing.T) {
	refs := newStubRefs()
	prescriber := domain.Prescriber{NPI: "1234567893", LastName: "Osler"}
	refs.raceKeys["prescriber/"+prescriber.NaturalKey()] = true

	r := New(refs)
	id, err := r.Prescriber(context.Background(), prescriber)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if id == uuid.Nil {
		t.Error("lost race must still resolve to the winner's id")
	}
	// The other run created the row, so this run counts a reuse.
	if got := r.Counts().Prescribers; got != 0 {
		t.Errorf("Counts().Prescribers = %d, want 0", got)
	}
}

func TestResolverPropagatesStorageErrors(t *testing.T) {
	refs := newStubRefs()
	refs.findErr = repository.ErrUnavailable

	r := New(refs)
	_, err := r.Drug(context.Background(), domain.Drug{NDC: "00071015523"})
	if !errors.Is(err, repository.ErrUnavailable) {
		t.Errorf("err = %v, want ErrUnavailable", err)
	}
}
