package models

import (
	"time"

	"speedballhub/internal/derive"
)

const (
	GenderMale   = "male"
	GenderFemale = "female"
)

func ValidGender(gender string) bool {
	return gender == GenderMale || gender == GenderFemale
}

type Player struct {
	BaseUUIDModel
	Name        string `gorm:"type:varchar(255);not null" json:"name"`
	DateOfBirth Date   `gorm:"not null"                   json:"dateOfBirth"`
	Gender      string `gorm:"type:varchar(10);not null"  json:"gender"`

	TestResults []TestResult `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Player) TableName() string {
	return "players"
}

// PlayerWithAge is the read shape of a player: the stored row plus the
// derived age and age group, recomputed on every read.
type PlayerWithAge struct {
	Player
	Age      int    `json:"age"`
	AgeGroup string `json:"ageGroup"`
}

// PlayerWithResults additionally nests the player's test results, each with
// its derived total and associated test.
type PlayerWithResults struct {
	PlayerWithAge
	TestResults []ResultWithTotal `json:"testResults"`
}

// WithAge derives the read shape at the given reference time.
func (p Player) WithAge(now time.Time) PlayerWithAge {
	age := derive.Age(p.DateOfBirth.Time, now)
	return PlayerWithAge{
		Player:   p,
		Age:      age,
		AgeGroup: derive.AgeGroup(age),
	}
}

type CreatePlayerRequest struct {
	Name        string `json:"name"`
	DateOfBirth string `json:"dateOfBirth"`
	Gender      string `json:"gender"`
}

func (r *CreatePlayerRequest) Validate() (*Player, error) {
	fields := map[string]string{}

	if r.Name == "" {
		fields["name"] = "name is required"
	} else if len(r.Name) > 255 {
		fields["name"] = "name is too long"
	}

	var dateOfBirth Date
	if r.DateOfBirth == "" {
		fields["dateOfBirth"] = "dateOfBirth is required"
	} else {
		parsed, err := ParseDate(r.DateOfBirth)
		if err != nil {
			fields["dateOfBirth"] = err.Error()
		} else {
			dateOfBirth = parsed
		}
	}

	if r.Gender == "" {
		fields["gender"] = "gender is required"
	} else if !ValidGender(r.Gender) {
		fields["gender"] = "gender must be male or female"
	}

	if len(fields) > 0 {
		return nil, NewValidationError("invalid player", fields)
	}

	return &Player{
		Name:        r.Name,
		DateOfBirth: dateOfBirth,
		Gender:      r.Gender,
	}, nil
}

// UpdatePlayerRequest carries a partial update; nil fields keep their prior
// values.
type UpdatePlayerRequest struct {
	Name        *string `json:"name"`
	DateOfBirth *string `json:"dateOfBirth"`
	Gender      *string `json:"gender"`
}

// Apply validates the provided fields and copies them onto the player.
func (r *UpdatePlayerRequest) Apply(player *Player) error {
	fields := map[string]string{}

	if r.Name != nil {
		if *r.Name == "" {
			fields["name"] = "name must not be empty"
		} else if len(*r.Name) > 255 {
			fields["name"] = "name is too long"
		} else {
			player.Name = *r.Name
		}
	}

	if r.DateOfBirth != nil {
		parsed, err := ParseDate(*r.DateOfBirth)
		if err != nil {
			fields["dateOfBirth"] = err.Error()
		} else {
			player.DateOfBirth = parsed
		}
	}

	if r.Gender != nil {
		if !ValidGender(*r.Gender) {
			fields["gender"] = "gender must be male or female"
		} else {
			player.Gender = *r.Gender
		}
	}

	if len(fields) > 0 {
		return NewValidationError("invalid player update", fields)
	}

	return nil
}

// PlayerListFilter captures the query parameters of the players collection.
// AgeGroup filters on the derived label after derivation, never in SQL.
type PlayerListFilter struct {
	Search   string
	Gender   string
	AgeGroup string
	Page     int
	Limit    int
}
