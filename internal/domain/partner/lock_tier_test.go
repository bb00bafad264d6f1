package partner

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLockTierFor(t *testing.T) {
	tests := []struct {
		name string
		days int
		want LockTier
	}{
		{"negative", -5, LockTierNone},
		{"zero", 0, LockTierNone},
		{"just below soft", 39, LockTierNone},
		{"soft boundary", 40, LockTierSoft},
		{"inside soft", 45, LockTierSoft},
		{"just below hard", 49, LockTierSoft},
		{"hard boundary", 50, LockTierHard},
		{"far overdue", 365, LockTierHard},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, LockTierFor(tt.days))
		})
	}
}

func TestBannerFor(t *testing.T) {
	t.Run("none is hidden", func(t *testing.T) {
		b := BannerFor(LockTierNone)
		assert.False(t, b.Visible)
		assert.Empty(t, b.Text)
	})

	t.Run("soft is a warning", func(t *testing.T) {
		b := BannerFor(LockTierSoft)
		assert.True(t, b.Visible)
		assert.Equal(t, BannerStyleWarning, b.Style)
		assert.Equal(t, "CUSTOMER IS SOFT LOCKED (40+ DAYS OVERDUE) SEE ACCOUNTING", b.Text)
	})

	t.Run("hard is an error", func(t *testing.T) {
		b := BannerFor(LockTierHard)
		assert.True(t, b.Visible)
		assert.Equal(t, BannerStyleError, b.Style)
		assert.Equal(t, "CUSTOMER IS HARD LOCKED (50+ DAYS OVERDUE)", b.Text)
	})
}
