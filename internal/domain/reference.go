package domain

import (
	"strings"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// ReferenceType identifies one of the shared lookup entity kinds.
type ReferenceType string

const (
	ReferenceCoveredEntity ReferenceType = "covered_entity"
	ReferencePharmacy      ReferenceType = "pharmacy"
	ReferencePrescriber    ReferenceType = "prescriber"
	ReferenceDrug          ReferenceType = "drug"
	ReferencePatient       ReferenceType = "patient"
	ReferenceLocation      ReferenceType = "location"
	ReferenceInsurancePlan ReferenceType = "insurance_plan"
)

// CoveredEntity is a 340B covered entity (hospital, clinic, grantee).
type CoveredEntity struct {
	ID           uuid.UUID `json:"id"`
	Entity340BID string    `json:"entity_340b_id"`
	Name         string    `json:"name"`
	CreatedAt    time.Time `json:"created_at"`
}

// NaturalKey identifies a covered entity by its 340B ID when present,
// otherwise by normalized name. The same derivation is used for lookup
// and creation so one real-world entity never fragments into duplicates.
func (e CoveredEntity) NaturalKey() string {
	if key := normalizeKey(e.Entity340BID); key != "" {
		return key
	}
	return prefixedKey("name", e.Name)
}

// Pharmacy is a contract or in-house pharmacy dispensing 340B drugs.
type Pharmacy struct {
	ID        uuid.UUID `json:"id"`
	NPI       string    `json:"npi"`
	NABP      string    `json:"nabp"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NaturalKey prefers NPI, then NABP, then normalized name.
func (p Pharmacy) NaturalKey() string {
	if key := digitsOnly(p.NPI); key != "" {
		return prefixedKey("npi", key)
	}
	if key := normalizeKey(p.NABP); key != "" {
		return prefixedKey("nabp", key)
	}
	return prefixedKey("name", p.Name)
}

// Prescriber is the clinician who wrote the prescription.
type Prescriber struct {
	ID        uuid.UUID `json:"id"`
	NPI       string    `json:"npi"`
	DEA       string    `json:"dea"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	CreatedAt time.Time `json:"created_at"`
}

// NaturalKey prefers NPI, then DEA number, then normalized name.
func (p Prescriber) NaturalKey() string {
	if key := digitsOnly(p.NPI); key != "" {
		return prefixedKey("npi", key)
	}
	if key := normalizeKey(p.DEA); key != "" {
		return prefixedKey("dea", key)
	}
	return prefixedKey("name", p.LastName+" "+p.FirstName)
}

// Drug identifies a dispensed product by NDC.
type Drug struct {
	ID        uuid.UUID `json:"id"`
	NDC       string    `json:"ndc"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// NaturalKey is the digits of the NDC code, falling back to normalized name
// when the code is absent.
func (d Drug) NaturalKey() string {
	if key := digitsOnly(d.NDC); key != "" {
		return key
	}
	return prefixedKey("name", d.Name)
}

// Patient is the person a prescription or claim belongs to.
type Patient struct {
	ID          uuid.UUID  `json:"id"`
	MRN         string     `json:"mrn"`
	ExternalID  string     `json:"external_id"`
	FirstName   string     `json:"first_name"`
	LastName    string     `json:"last_name"`
	DateOfBirth *time.Time `json:"date_of_birth,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

// NaturalKey prefers MRN, then the external patient id, then name plus DOB.
func (p Patient) NaturalKey() string {
	if key := normalizeKey(p.MRN); key != "" {
		return prefixedKey("mrn", key)
	}
	if key := normalizeKey(p.ExternalID); key != "" {
		return prefixedKey("ext", key)
	}
	dob := ""
	if p.DateOfBirth != nil {
		dob = p.DateOfBirth.Format("2006-01-02")
	}
	return prefixedKey("name", p.LastName+" "+p.FirstName+" "+dob)
}

// Location is a dispensing or service site attached to a covered entity.
type Location struct {
	ID              uuid.UUID `json:"id"`
	CoveredEntityID uuid.UUID `json:"covered_entity_id"`
	Name            string    `json:"name"`
	CreatedAt       time.Time `json:"created_at"`
}

// NaturalKey scopes the normalized site name by its covered entity so two
// entities can both have a "Main Campus".
func (l Location) NaturalKey() string {
	name := normalizeKey(l.Name)
	if name == "" {
		return ""
	}
	return l.CoveredEntityID.String() + ":" + name
}

// InsurancePlan is the payer plan a claim was adjudicated under.
type InsurancePlan struct {
	ID          uuid.UUID `json:"id"`
	BIN         string    `json:"bin"`
	PCN         string    `json:"pcn"`
	GroupNumber string    `json:"group_number"`
	Name        string    `json:"name"`
	CreatedAt   time.Time `json:"created_at"`
}

// NaturalKey combines BIN, PCN and group number; plans without routing
// identifiers fall back to normalized name.
func (p InsurancePlan) NaturalKey() string {
	bin := normalizeKey(p.BIN)
	if bin == "" {
		return prefixedKey("name", p.Name)
	}
	return strings.Join([]string{bin, normalizeKey(p.PCN), normalizeKey(p.GroupNumber)}, ":")
}

// normalizeKey canonicalizes a natural-key attribute: case-folded, trimmed,
// inner whitespace collapsed, punctuation stripped.
func normalizeKey(value string) string {
	var b strings.Builder
	lastSpace := false
	for _, r := range strings.TrimSpace(strings.ToLower(value)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
			lastSpace = false
		case unicode.IsSpace(r):
			if !lastSpace && b.Len() > 0 {
				b.WriteRune(' ')
			}
			lastSpace = true
		}
	}
	return strings.TrimSpace(b.String())
}

// digitsOnly strips everything but digits; used for NPI, NABP and NDC codes.
func digitsOnly(value string) string {
	var b strings.Builder
	for _, r := range value {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

func prefixedKey(prefix, value string) string {
	normalized := normalizeKey(value)
	if normalized == "" {
		return ""
	}
	return prefix + ":" + normalized
}
