package standards

import "time"

// Age band boundaries, inclusive upper ages.
const (
	maxAge8U   = 8
	maxAge910  = 10
	maxAge1112 = 12
	maxAge1314 = 14
	maxAge1516 = 16
	maxAge1718 = 18

	ageGroupOpen = "Open"
)

// AgeGroupOn returns the age-group code in effect for a swimmer on a given
// date, from the configured birth date. Historical swims must classify
// against the band the swimmer was in on the swim date, never the band in
// effect today, so this is a pure function of its two arguments.
func AgeGroupOn(birthDate, onDate time.Time) string {
	age := ageOn(birthDate, onDate)
	switch {
	case age <= maxAge8U:
		return "8U"
	case age <= maxAge910:
		return "9-10"
	case age <= maxAge1112:
		return "11-12"
	case age <= maxAge1314:
		return "13-14"
	case age <= maxAge1516:
		return "15-16"
	case age <= maxAge1718:
		return "17-18"
	default:
		return ageGroupOpen
	}
}

// ageOn computes whole years of age on a date, accounting for whether the
// birthday anniversary has passed that year.
func ageOn(birthDate, onDate time.Time) int {
	age := onDate.Year() - birthDate.Year()
	anniversary := time.Date(onDate.Year(), birthDate.Month(), birthDate.Day(),
		0, 0, 0, 0, time.UTC)
	if onDate.Before(anniversary) {
		age--
	}
	return age
}
