package models

// Mastery buckets an average percentage.
type Mastery string

const (
	MasteryIlluminated Mastery = "illuminated"
	MasteryFoundation  Mastery = "foundation"
	MasteryVeiled      Mastery = "veiled"
)

// MasteryFor maps a percentage to its bucket: ≥80 illuminated, ≥50 foundation.
func MasteryFor(percentage int) Mastery {
	switch {
	case percentage >= 80:
		return MasteryIlluminated
	case percentage >= 50:
		return MasteryFoundation
	default:
		return MasteryVeiled
	}
}

// PerformanceSummary aggregates a user's quiz history.
type PerformanceSummary struct {
	Attempts       int
	AveragePercent int
	BestPercent    int
	Recent         []QuizAttempt
	Mastery        Mastery
}
