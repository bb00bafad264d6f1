package partner

import (
	"strings"

	"github.com/shopspring/decimal"
)

// FacilityType classifies a customer's facility and drives its default credit ceiling
type FacilityType string

const (
	FacilityTypeNone          FacilityType = ""
	FacilityTypeHospital      FacilityType = "Hospital"
	FacilityTypeSurgeryCenter FacilityType = "Surgery Center"
	FacilityTypeUrgentCare    FacilityType = "Urgent Care"
	FacilityTypeVeterinary    FacilityType = "Veterinary"
	FacilityTypeB2B           FacilityType = "B2B"
	FacilityTypeWholesale     FacilityType = "Wholesale"
	FacilityTypeOther         FacilityType = "Other"
)

// facilityLimits is the credit ceiling per facility type.
// Types without an entry (Other, unknown values) get a zero limit.
var facilityLimits = map[FacilityType]decimal.Decimal{
	FacilityTypeHospital:      decimal.NewFromInt(40000),
	FacilityTypeSurgeryCenter: decimal.NewFromInt(10000),
	FacilityTypeUrgentCare:    decimal.NewFromInt(10000),
	FacilityTypeVeterinary:    decimal.NewFromInt(10000),
	FacilityTypeB2B:           decimal.NewFromInt(999999),
	FacilityTypeWholesale:     decimal.NewFromInt(999999),
}

// AllFacilityTypes returns the selectable facility types in display order
func AllFacilityTypes() []FacilityType {
	return []FacilityType{
		FacilityTypeHospital,
		FacilityTypeSurgeryCenter,
		FacilityTypeUrgentCare,
		FacilityTypeVeterinary,
		FacilityTypeB2B,
		FacilityTypeWholesale,
		FacilityTypeOther,
	}
}

// IsValid reports whether the facility type is one of the selectable values
func (f FacilityType) IsValid() bool {
	for _, t := range AllFacilityTypes() {
		if f == t {
			return true
		}
	}
	return false
}

// String returns the display label
func (f FacilityType) String() string {
	return string(f)
}

// LimitForFacility returns the credit ceiling for a facility type.
// Unmapped types yield zero; no error is raised.
func LimitForFacility(f FacilityType) decimal.Decimal {
	if limit, ok := facilityLimits[f]; ok {
		return limit
	}
	return decimal.Zero
}

// ParseFacilityType matches a label case-insensitively.
// Unknown labels are returned unchanged so they map to a zero limit.
func ParseFacilityType(s string) FacilityType {
	trimmed := strings.TrimSpace(s)
	for _, t := range AllFacilityTypes() {
		if strings.EqualFold(trimmed, string(t)) {
			return t
		}
	}
	return FacilityType(trimmed)
}
