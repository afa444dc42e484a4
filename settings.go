package fund

// Settings holds the fund-level configuration, a singleton per fund.
type Settings struct {
	// BaselineTotalValue is the USD value of the pool at inception, used for
	// the total-return display.
	BaselineTotalValue Money `json:"baselineTotalValue"`
	// InitialQuotaValue is the starting per-share price, typically 1.00.
	InitialQuotaValue Money `json:"initialQuotaValue"`
}

// DefaultSettings returns the settings callers must assume when none are on
// file: no baseline, shares issued at $1.00.
func DefaultSettings() Settings {
	return Settings{
		BaselineTotalValue: M(0),
		InitialQuotaValue:  M(1),
	}
}

// initialQuota returns the configured initial quota value, guarding against a
// zero value that would make share conversion meaningless.
func (s Settings) initialQuota() Money {
	if s.InitialQuotaValue.IsZero() {
		return M(1)
	}
	return s.InitialQuotaValue
}
