package partner

// LockTier is the overdue severity derived from days overdue.
// It is advisory and independent of the customer's account lock flag.
type LockTier string

const (
	LockTierNone LockTier = "NONE"
	LockTierSoft LockTier = "SOFT"
	LockTierHard LockTier = "HARD"
)

const (
	SoftLockDays = 40
	HardLockDays = 50
)

// BannerStyle is the visual severity of a lock banner
type BannerStyle string

const (
	BannerStyleNone    BannerStyle = ""
	BannerStyleWarning BannerStyle = "warning"
	BannerStyleError   BannerStyle = "error"
)

const (
	SoftLockBannerText = "CUSTOMER IS SOFT LOCKED (40+ DAYS OVERDUE) SEE ACCOUNTING"
	HardLockBannerText = "CUSTOMER IS HARD LOCKED (50+ DAYS OVERDUE)"
)

// Banner is the display descriptor for a lock tier
type Banner struct {
	Visible bool        `json:"visible"`
	Style   BannerStyle `json:"style,omitempty"`
	Text    string      `json:"text,omitempty"`
}

// LockTierFor derives the tier from days overdue; negative values are NONE
func LockTierFor(overdueDays int) LockTier {
	switch {
	case overdueDays >= HardLockDays:
		return LockTierHard
	case overdueDays >= SoftLockDays:
		return LockTierSoft
	default:
		return LockTierNone
	}
}

// BannerFor returns the banner for a tier
func BannerFor(tier LockTier) Banner {
	switch tier {
	case LockTierHard:
		return Banner{Visible: true, Style: BannerStyleError, Text: HardLockBannerText}
	case LockTierSoft:
		return Banner{Visible: true, Style: BannerStyleWarning, Text: SoftLockBannerText}
	default:
		return Banner{}
	}
}
