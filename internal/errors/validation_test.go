package errors_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/gurps-api/internal/errors"
)

type ValidationTestSuite struct {
	suite.Suite
}

func TestValidationSuite(t *testing.T) {
	suite.Run(t, new(ValidationTestSuite))
}

func (s *ValidationTestSuite) fieldErrors(err error) map[string][]string {
	s.Require().NotNil(err)
	meta := errors.GetMeta(err)
	fields, ok := meta["validation_errors"].(map[string][]string)
	s.Require().True(ok)
	return fields
}

func (s *ValidationTestSuite) TestValidationError() {
	ve := errors.NewValidationError()
	ve.AddFieldError("name", "is required")
	ve.AddFieldErrorf("ST", "must be between %d and %d", 1, 200)

	s.Assert().True(ve.HasErrors())
	s.Assert().Contains(ve.Error(), "name: is required")
	s.Assert().Contains(ve.Error(), "ST: must be between 1 and 200")

	err := ve.ToError()
	s.Assert().Equal(errors.CodeInvalidArgument, err.Code)
	s.Assert().NotNil(err.Meta["validation_errors"])
}

func (s *ValidationTestSuite) TestValidationBuilder() {
	err := errors.NewValidationBuilder().
		Field("skills.add[0].name", "is required").
		Fieldf("DX", "must be between %d and %d", 1, 200).
		RequiredField("player_id").
		InvalidField("difficulty", "unknown tier").
		Build()

	s.Assert().True(errors.IsInvalidArgument(err))
	fields := s.fieldErrors(err)
	s.Assert().Len(fields, 4)
}

func (s *ValidationTestSuite) TestValidationBuilderNoErrors() {
	s.Assert().Nil(errors.NewValidationBuilder().Build())
}

func (s *ValidationTestSuite) TestValidateRequired() {
	testCases := []struct {
		name      string
		value     string
		shouldErr bool
	}{
		{"valid value", "Dai Blackthorn", false},
		{"empty string", "", true},
		{"whitespace only", "   ", true},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateRequired("name", tc.value, vb)
			if tc.shouldErr {
				s.Assert().Error(vb.Build())
			} else {
				s.Assert().NoError(vb.Build())
			}
		})
	}
}

func (s *ValidationTestSuite) TestValidateMaxLength() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMaxLength("techLevel", "12345", 3, vb)
	errors.ValidateMaxLength("name", "Dai", 64, vb)

	fields := s.fieldErrors(vb.Build())
	s.Assert().Contains(fields["techLevel"][0], "must be no more than 3 characters")
	s.Assert().NotContains(fields, "name")
}

func (s *ValidationTestSuite) TestValidateRange() {
	vb := errors.NewValidationBuilder()
	errors.ValidateRange("ST", 0, 1, 200, vb)
	errors.ValidateRange("DX", 14, 1, 200, vb)
	errors.ValidateRange("IQ", 201, 1, 200, vb)

	fields := s.fieldErrors(vb.Build())
	s.Assert().Contains(fields["ST"][0], "must be between 1 and 200")
	s.Assert().Contains(fields, "IQ")
	s.Assert().NotContains(fields, "DX")
}

func (s *ValidationTestSuite) TestValidateMinFloat() {
	vb := errors.NewValidationBuilder()
	errors.ValidateMinFloat("basicSpeed", -0.25, 0, vb)
	errors.ValidateMinFloat("currentWeight", 12.5, 0, vb)

	fields := s.fieldErrors(vb.Build())
	s.Assert().Contains(fields["basicSpeed"][0], "must be at least 0")
	s.Assert().NotContains(fields, "currentWeight")
}

func (s *ValidationTestSuite) TestValidateMinFloatRejectsNonFinite() {
	testCases := []struct {
		name  string
		value float64
	}{
		{name: "NaN", value: math.NaN()},
		{name: "positive infinity", value: math.Inf(1)},
		{name: "negative infinity", value: math.Inf(-1)},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			vb := errors.NewValidationBuilder()
			errors.ValidateMinFloat("basicSpeed", tc.value, 0, vb)

			fields := s.fieldErrors(vb.Build())
			s.Assert().Equal([]string{"must be a finite number"}, fields["basicSpeed"])
		})
	}
}

func (s *ValidationTestSuite) TestValidateEnum() {
	allowed := []string{"E", "A", "H", "VH"}

	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("difficulty", "X", allowed, vb)
	errors.ValidateEnum("other", "H", allowed, vb)

	fields := s.fieldErrors(vb.Build())
	s.Assert().Contains(fields["difficulty"][0], "must be one of: E, A, H, VH")
	s.Assert().NotContains(fields, "other")
}

func (s *ValidationTestSuite) TestValidateEnumTyped() {
	type tier string
	vb := errors.NewValidationBuilder()
	errors.ValidateEnum("encumbrance", tier("crushing"), []tier{"none", "light"}, vb)

	fields := s.fieldErrors(vb.Build())
	s.Assert().Equal([]string{"must be one of: none, light"}, fields["encumbrance"])
}

func (s *ValidationTestSuite) TestMessageIsSorted() {
	err := errors.NewValidationBuilder().
		RequiredField("name").
		RequiredField("DX").
		RequiredField("ST").
		Build()

	s.Assert().Equal("INVALID_ARGUMENT: validation failed: DX: is required; ST: is required; name: is required", err.Error())
}
