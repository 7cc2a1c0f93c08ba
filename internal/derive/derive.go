// Package derive holds the pure derivation rules shared by the API response
// layer, the seeder, and the client SDK. Age and age group are a function of
// the current date and must never be persisted; total score is a pure sum of
// the four sub-scores and is likewise recomputed on every read.
package derive

import "time"

// Age group ladder, ordered, first matching upper-exclusive bound wins.
// This is the single canonical ladder for the whole system.
var ageGroupLadder = []struct {
	below int
	label string
}{
	{7, "Mini"},
	{9, "U-09"},
	{11, "U-11"},
	{13, "U-13"},
	{15, "U-15"},
	{17, "U-17"},
	{19, "U-19"},
	{21, "U-21"},
}

// SeniorsLabel is the open-ended top rung of the ladder.
const SeniorsLabel = "Seniors"

// Age returns the number of completed calendar years between birth and now.
// Exact month/day arithmetic: the year difference is decremented when the
// birthday has not yet occurred in now's year.
func Age(birth, now time.Time) int {
	age := now.Year() - birth.Year()
	if now.Month() < birth.Month() ||
		(now.Month() == birth.Month() && now.Day() < birth.Day()) {
		age--
	}
	return age
}

// AgeGroup maps an age to its ladder label. Total over all non-negative ages.
func AgeGroup(age int) string {
	for _, rung := range ageGroupLadder {
		if age < rung.below {
			return rung.label
		}
	}
	return SeniorsLabel
}

// AgeGroupAt derives the age group label for a birth date at a reference time.
func AgeGroupAt(birth, now time.Time) string {
	return AgeGroup(Age(birth, now))
}

// AgeGroups lists every ladder label in ascending age order, for filter
// dropdowns and validation.
func AgeGroups() []string {
	labels := make([]string, 0, len(ageGroupLadder)+1)
	for _, rung := range ageGroupLadder {
		labels = append(labels, rung.label)
	}
	return append(labels, SeniorsLabel)
}

// TotalScore sums the four sub-scores of a test result.
func TotalScore(leftHand, rightHand, forehand, backhand int) int {
	return leftHand + rightHand + forehand + backhand
}
