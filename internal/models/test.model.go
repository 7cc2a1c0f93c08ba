package models

const (
	// Interval protocol codes: seconds of work / seconds of rest.
	TestType6030 = "60_30"
	TestType3030 = "30_30"
	TestType3060 = "30_60"
)

func ValidTestType(testType string) bool {
	switch testType {
	case TestType6030, TestType3030, TestType3060:
		return true
	}
	return false
}

type Test struct {
	BaseUUIDModel
	Name          string  `gorm:"type:varchar(255);not null" json:"name"`
	TestType      string  `gorm:"type:varchar(10);not null"  json:"testType"`
	DateConducted Date    `gorm:"not null"                   json:"dateConducted"`
	Description   *string `gorm:"type:text"                  json:"description,omitempty"`

	TestResults []TestResult `gorm:"constraint:OnDelete:CASCADE" json:"-"`
}

func (Test) TableName() string {
	return "tests"
}

// TestWithResults nests the test's results, each with its derived total and
// the player it belongs to (with the player's derived fields).
type TestWithResults struct {
	Test
	TestResults []ResultWithPlayer `json:"testResults"`
}

type CreateTestRequest struct {
	Name          string  `json:"name"`
	TestType      string  `json:"testType"`
	DateConducted string  `json:"dateConducted"`
	Description   *string `json:"description"`
}

func (r *CreateTestRequest) Validate() (*Test, error) {
	fields := map[string]string{}

	if r.Name == "" {
		fields["name"] = "name is required"
	} else if len(r.Name) > 255 {
		fields["name"] = "name is too long"
	}

	if r.TestType == "" {
		fields["testType"] = "testType is required"
	} else if !ValidTestType(r.TestType) {
		fields["testType"] = "testType must be one of 60_30, 30_30, 30_60"
	}

	var dateConducted Date
	if r.DateConducted == "" {
		fields["dateConducted"] = "dateConducted is required"
	} else {
		parsed, err := ParseDate(r.DateConducted)
		if err != nil {
			fields["dateConducted"] = err.Error()
		} else {
			dateConducted = parsed
		}
	}

	if len(fields) > 0 {
		return nil, NewValidationError("invalid test", fields)
	}

	return &Test{
		Name:          r.Name,
		TestType:      r.TestType,
		DateConducted: dateConducted,
		Description:   r.Description,
	}, nil
}

type UpdateTestRequest struct {
	Name          *string `json:"name"`
	TestType      *string `json:"testType"`
	DateConducted *string `json:"dateConducted"`
	Description   *string `json:"description"`
}

func (r *UpdateTestRequest) Apply(test *Test) error {
	fields := map[string]string{}

	if r.Name != nil {
		if *r.Name == "" {
			fields["name"] = "name must not be empty"
		} else if len(*r.Name) > 255 {
			fields["name"] = "name is too long"
		} else {
			test.Name = *r.Name
		}
	}

	if r.TestType != nil {
		if !ValidTestType(*r.TestType) {
			fields["testType"] = "testType must be one of 60_30, 30_30, 30_60"
		} else {
			test.TestType = *r.TestType
		}
	}

	if r.DateConducted != nil {
		parsed, err := ParseDate(*r.DateConducted)
		if err != nil {
			fields["dateConducted"] = err.Error()
		} else {
			test.DateConducted = parsed
		}
	}

	if r.Description != nil {
		test.Description = r.Description
	}

	if len(fields) > 0 {
		return NewValidationError("invalid test update", fields)
	}

	return nil
}

type TestListFilter struct {
	TestType string
	Page     int
	Limit    int
}

// TestResultFilter narrows the nested result array of a test detail read.
type TestResultFilter struct {
	Gender   string
	AgeGroup string
}
