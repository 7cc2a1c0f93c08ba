package models

import "speedballhub/internal/derive"

type TestResult struct {
	BaseUUIDModel
	PlayerID       string `gorm:"type:varchar(64);not null;index" json:"playerId"`
	TestID         string `gorm:"type:varchar(64);not null;index" json:"testId"`
	LeftHandScore  int    `gorm:"not null"                        json:"leftHandScore"`
	RightHandScore int    `gorm:"not null"                        json:"rightHandScore"`
	ForehandScore  int    `gorm:"not null"                        json:"forehandScore"`
	BackhandScore  int    `gorm:"not null"                        json:"backhandScore"`

	Player *Player `gorm:"constraint:OnDelete:CASCADE" json:"-"`
	Test   *Test   `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (TestResult) TableName() string {
	return "test_results"
}

// ResultWithTotal is the read shape of a result: the stored row plus its
// derived total, optionally nested with its test.
type ResultWithTotal struct {
	TestResult
	TotalScore int   `json:"totalScore"`
	Test       *Test `json:"test,omitempty"`
}

// ResultWithPlayer nests the owning player with its derived fields instead.
type ResultWithPlayer struct {
	TestResult
	TotalScore int            `json:"totalScore"`
	Player     *PlayerWithAge `json:"player,omitempty"`
}

// WithTotal derives the read shape of the result.
func (r TestResult) WithTotal() ResultWithTotal {
	return ResultWithTotal{
		TestResult: r,
		TotalScore: derive.TotalScore(r.LeftHandScore, r.RightHandScore, r.ForehandScore, r.BackhandScore),
	}
}

type CreateResultRequest struct {
	PlayerID       string `json:"playerId"`
	TestID         string `json:"testId"`
	LeftHandScore  *int   `json:"leftHandScore"`
	RightHandScore *int   `json:"rightHandScore"`
	ForehandScore  *int   `json:"forehandScore"`
	BackhandScore  *int   `json:"backhandScore"`
}

func (r *CreateResultRequest) Validate() (*TestResult, error) {
	fields := map[string]string{}

	if r.PlayerID == "" {
		fields["playerId"] = "playerId is required"
	}
	if r.TestID == "" {
		fields["testId"] = "testId is required"
	}

	scores := map[string]*int{
		"leftHandScore":  r.LeftHandScore,
		"rightHandScore": r.RightHandScore,
		"forehandScore":  r.ForehandScore,
		"backhandScore":  r.BackhandScore,
	}
	for name, score := range scores {
		if score == nil {
			fields[name] = name + " is required"
		} else if *score < 0 {
			fields[name] = name + " must be non-negative"
		}
	}

	if len(fields) > 0 {
		return nil, NewValidationError("invalid test result", fields)
	}

	return &TestResult{
		PlayerID:       r.PlayerID,
		TestID:         r.TestID,
		LeftHandScore:  *r.LeftHandScore,
		RightHandScore: *r.RightHandScore,
		ForehandScore:  *r.ForehandScore,
		BackhandScore:  *r.BackhandScore,
	}, nil
}

type UpdateResultRequest struct {
	LeftHandScore  *int `json:"leftHandScore"`
	RightHandScore *int `json:"rightHandScore"`
	ForehandScore  *int `json:"forehandScore"`
	BackhandScore  *int `json:"backhandScore"`
}

func (r *UpdateResultRequest) Apply(result *TestResult) error {
	fields := map[string]string{}

	apply := func(name string, score *int, target *int) {
		if score == nil {
			return
		}
		if *score < 0 {
			fields[name] = name + " must be non-negative"
			return
		}
		*target = *score
	}

	apply("leftHandScore", r.LeftHandScore, &result.LeftHandScore)
	apply("rightHandScore", r.RightHandScore, &result.RightHandScore)
	apply("forehandScore", r.ForehandScore, &result.ForehandScore)
	apply("backhandScore", r.BackhandScore, &result.BackhandScore)

	if len(fields) > 0 {
		return NewValidationError("invalid test result update", fields)
	}

	return nil
}

type ResultListFilter struct {
	Page  int
	Limit int
}
