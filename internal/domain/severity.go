package domain

// Severity is the ordered display tier for outage records.
type Severity string

const (
	SeverityPartial Severity = "partial"
	SeverityMajor   Severity = "major"
	SeverityTotal   Severity = "total"
)

// Intensity is the ordered display tier for conflict records.
type Intensity string

const (
	IntensityLow      Intensity = "low"
	IntensityElevated Intensity = "elevated"
	IntensityHigh     Intensity = "high"
	IntensityCritical Intensity = "critical"
)

// Rank returns the position of the intensity in the ordering
// critical > high > elevated > low. Unknown values rank as low.
func (i Intensity) Rank() int {
	switch i {
	case IntensityCritical:
		return 3
	case IntensityHigh:
		return 2
	case IntensityElevated:
		return 1
	default:
		return 0
	}
}

// ClassifyOutageSeverity maps a provider-normalized 0–1 score to a severity
// tier. Monotonic non-decreasing in the score.
func ClassifyOutageSeverity(score float64) Severity {
	switch {
	case score >= 0.8:
		return SeverityTotal
	case score >= 0.5:
		return SeverityMajor
	default:
		return SeverityPartial
	}
}

// ClassifyConflictIntensity maps a forecast's expected fatalities and raw 0–1
// conflict probability to an intensity tier. The two metrics combine with OR
// semantics: either one alone can escalate the tier.
func ClassifyConflictIntensity(fatalities, probability float64) Intensity {
	switch {
	case fatalities >= 100 || probability >= 0.99:
		return IntensityCritical
	case fatalities >= 25 || probability >= 0.75:
		return IntensityHigh
	case fatalities >= 5 || probability >= 0.25:
		return IntensityElevated
	default:
		return IntensityLow
	}
}
