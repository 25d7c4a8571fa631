package pipeline

import "strings"

// Energy is the user's self-reported energy level for instant mode.
type Energy string

// Energy levels.
const (
	EnergyLow    Energy = "low"
	EnergyMedium Energy = "medium"
	EnergyHigh   Energy = "high"
)

// ParseEnergy normalizes user input into an Energy level.
func ParseEnergy(s string) (Energy, error) {
	switch Energy(strings.ToLower(strings.TrimSpace(s))) {
	case EnergyLow:
		return EnergyLow, nil
	case EnergyMedium:
		return EnergyMedium, nil
	case EnergyHigh:
		return EnergyHigh, nil
	}
	return "", &ValidationError{Field: "energy", Reason: "must be low, medium, or high"}
}

// TaskForEnergy suggests a task type matched to the energy level.
func TaskForEnergy(e Energy) string {
	switch e {
	case EnergyLow:
		return "Flashcards or Light Revision"
	case EnergyHigh:
		return "Essays or Full Past Paper Sections"
	default:
		return "Practice Questions or Diagrams"
	}
}
