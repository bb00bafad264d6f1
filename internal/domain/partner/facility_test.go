package partner

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestLimitForFacility(t *testing.T) {
	tests := []struct {
		facility FacilityType
		want     int64
	}{
		{FacilityTypeHospital, 40000},
		{FacilityTypeSurgeryCenter, 10000},
		{FacilityTypeUrgentCare, 10000},
		{FacilityTypeVeterinary, 10000},
		{FacilityTypeB2B, 999999},
		{FacilityTypeWholesale, 999999},
		{FacilityTypeOther, 0},
		{FacilityType("Dental Lab"), 0},
	}

	for _, tt := range tests {
		t.Run(string(tt.facility), func(t *testing.T) {
			assert.True(t, decimal.NewFromInt(tt.want).Equal(LimitForFacility(tt.facility)))
		})
	}
}

func TestParseFacilityType(t *testing.T) {
	assert.Equal(t, FacilityTypeSurgeryCenter, ParseFacilityType("surgery center"))
	assert.Equal(t, FacilityTypeB2B, ParseFacilityType(" b2b "))
	assert.Equal(t, FacilityType("Clinic"), ParseFacilityType("Clinic"))
	assert.Equal(t, FacilityTypeNone, ParseFacilityType(""))
}

func TestFacilityType_IsValid(t *testing.T) {
	for _, ft := range AllFacilityTypes() {
		assert.True(t, ft.IsValid(), ft)
	}
	assert.False(t, FacilityTypeNone.IsValid())
	assert.False(t, FacilityType("Clinic").IsValid())
}
