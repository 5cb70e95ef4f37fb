// Package resolver deduplicates reference entities within one import run.
// Each run owns its own resolver, so the natural-key cache needs no locking:
// single-threaded ownership for the duration of the run is the contract.
package resolver

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/rpattn/rximport/internal/domain"
	"github.com/rpattn/rximport/internal/repository"
)

// ErrMissingKey is returned when an entity carries no natural-key attribute
// at all. Callers skip optional references instead of resolving them.
var ErrMissingKey = errors.New("reference entity has no natural key")

// Resolver maps natural keys to surrogate ids, creating missing reference
// rows at most once per distinct key per run. Reused lookups are cached so a
// batch costs O(distinct entities) storage round-trips, not O(records).
type Resolver struct {
	refs   repository.ReferenceRepository
	cache  map[domain.ReferenceType]map[string]uuid.UUID
	counts domain.ReferenceCounts
}

// New builds a resolver scoped to one import run.
func New(refs repository.ReferenceRepository) *Resolver {
	return &Resolver{
		refs:  refs,
		cache: make(map[domain.ReferenceType]map[string]uuid.UUID),
	}
}

// Counts reports entities created (not reused) so far in this run.
func (r *Resolver) Counts() domain.ReferenceCounts {
	return r.counts
}

// CoveredEntity resolves a covered entity to its surrogate id.
func (r *Resolver) CoveredEntity(ctx context.Context, entity domain.CoveredEntity) (uuid.UUID, error) {
	return r.resolve(ctx, domain.ReferenceCoveredEntity, entity.NaturalKey(),
		r.refs.FindCoveredEntityByKey,
		func(ctx context.Context) (uuid.UUID, error) { return r.refs.CreateCoveredEntity(ctx, entity) },
		&r.counts.CoveredEntities)
}

// Pharmacy resolves a pharmacy to its surrogate id.
func (r *Resolver) Pharmacy(ctx context.Context, pharmacy domain.Pharmacy) (uuid.UUID, error) {
	return r.resolve(ctx, domain.ReferencePharmacy, pharmacy.NaturalKey(),
		r.refs.FindPharmacyByKey,
		func(ctx context.Context) (uuid.UUID, error) { return r.refs.CreatePharmacy(ctx, pharmacy) },
		&r.counts.Pharmacies)
}

// Prescriber resolves a prescriber to its surrogate id.
func (r *Resolver) Prescriber(ctx context.Context, prescriber domain.Prescriber) (uuid.UUID, error) {
	return r.resolve(ctx, domain.ReferencePrescriber, prescriber.NaturalKey(),
		r.refs.FindPrescriberByKey,
		func(ctx context.Context) (uuid.UUID, error) { return r.refs.CreatePrescriber(ctx, prescriber) },
		&r.counts.Prescribers)
}

// Drug resolves a drug to its surrogate id.
func (r *Resolver) Drug(ctx context.Context, drug domain.Drug) (uuid.UUID, error) {
	return r.resolve(ctx, domain.ReferenceDrug, drug.NaturalKey(),
		r.refs.FindDrugByKey,
		func(ctx context.Context) (uuid.UUID, error) { return r.refs.CreateDrug(ctx, drug) },
		&r.counts.Drugs)
}

// Patient resolves a patient to its surrogate id.
func (r *Resolver) Patient(ctx context.Context, patient domain.Patient) (uuid.UUID, error) {
	return r.resolve(ctx, domain.ReferencePatient, patient.NaturalKey(),
		r.refs.FindPatientByKey,
		func(ctx context.Context) (uuid.UUID, error) { return r.refs.CreatePatient(ctx, patient) },
		&r.counts.Patients)
}

// Location resolves a location to its surrogate id.
func (r *Resolver) Location(ctx context.Context, location domain.Location) (uuid.UUID, error) {
	return r.resolve(ctx, domain.ReferenceLocation, location.NaturalKey(),
		r.refs.FindLocationByKey,
		func(ctx context.Context) (uuid.UUID, error) { return r.refs.CreateLocation(ctx, location) },
		&r.counts.Locations)
}

// InsurancePlan resolves an insurance plan to its surrogate id.
func (r *Resolver) InsurancePlan(ctx context.Context, plan domain.InsurancePlan) (uuid.UUID, error) {
	return r.resolve(ctx, domain.ReferenceInsurancePlan, plan.NaturalKey(),
		r.refs.FindInsurancePlanByKey,
		func(ctx context.Context) (uuid.UUID, error) { return r.refs.CreateInsurancePlan(ctx, plan) },
		&r.counts.InsurancePlans)
}

// resolve is the find-or-create core. The cache guarantees at most one
// creation per distinct key per run; a unique violation during create means
// a concurrent run won the race, so the creation is retried as a lookup and
// counted as reuse.
func (r *Resolver) resolve(
	ctx context.Context,
	typ domain.ReferenceType,
	key string,
	find func(context.Context, string) (uuid.UUID, bool, error),
	create func(context.Context) (uuid.UUID, error),
	created *int,
) (uuid.UUID, error) {
	if key == "" {
		return uuid.Nil, fmt.Errorf("%s: %w", typ, ErrMissingKey)
	}

	byKey, ok := r.cache[typ]
	if !ok {
		byKey = make(map[string]uuid.UUID)
		r.cache[typ] = byKey
	}
	if id, hit := byKey[key]; hit {
		return id, nil
	}

	id, found, err := find(ctx, key)
	if err != nil {
		return uuid.Nil, err
	}
	if !found {
		id, err = create(ctx)
		if errors.Is(err, repository.ErrDuplicate) {
			var refound bool
			id, refound, err = find(ctx, key)
			if err == nil && !refound {
				err = fmt.Errorf("%s %q vanished after duplicate-key creation failure", typ, key)
			}
		} else if err == nil {
			*created++
		}
		if err != nil {
			return uuid.Nil, err
		}
	}

	byKey[key] = id
	return id, nil
}
