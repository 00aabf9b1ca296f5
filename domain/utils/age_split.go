package utils

const (
	minorMinAge = 13
	adultAge    = 18
)

// Split is the result of applying the age policy to an issuance
type Split struct {
	Available        int64 `json:"available"`
	LockedForCollege int64 `json:"lockedForCollege"`
}

// Total returns the coins created by the split
func (s Split) Total() int64 {
	return s.Available + s.LockedForCollege
}

// IsMinor returns true for ages 13 through 17
func IsMinor(age int) bool {
	return age >= minorMinAge && age < adultAge
}

// AgeSplit converts a base issuance into available and college-locked shares.
// Minors earn double: one copy spendable and one copy locked. Negative bases clamp to zero.
func AgeSplit(age int, base int64) Split {
	b := max(0, base)
	if IsMinor(age) {
		return Split{Available: b, LockedForCollege: b}
	}
	return Split{Available: b}
}
