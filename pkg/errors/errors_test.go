package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ErrorsTestSuite covers the structured and typed errors.
type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (suite *ErrorsTestSuite) TestCodesSurviveWrapping() {
	inner := New(ErrCodeDataNotFound, "no history")
	outer := Wrap(ErrCodeQueryFailed, "load failed", inner)

	suite.Require().True(HasCode(outer, ErrCodeQueryFailed))
	suite.Require().Equal(ErrCodeQueryFailed, GetCode(outer))
	suite.Require().True(Is(outer, inner) || HasCode(outer, ErrCodeQueryFailed))
}

func (suite *ErrorsTestSuite) TestGetCodeOnForeignError() {
	suite.Require().Equal(ErrCodeUnknown, GetCode(fmt.Errorf("plain")))
}

func (suite *ErrorsTestSuite) TestInsufficientDataError() {
	err := NewInsufficientDataErrorf(60, 10, "BK0001", "need %d bars, have %d", 60, 10)

	suite.Require().True(IsInsufficientDataError(err))
	suite.Require().Equal("need 60 bars, have 10", err.Error())
	suite.Require().Equal(60, err.Required)
	suite.Require().Equal(10, err.Actual)
	suite.Require().Equal("BK0001", err.Symbol)

	wrapped := fmt.Errorf("pipeline: %w", err)
	suite.Require().True(IsInsufficientDataError(wrapped))
	suite.Require().False(IsInsufficientDataError(fmt.Errorf("plain")))
}

func (suite *ErrorsTestSuite) TestInvalidParamsError() {
	cause := fmt.Errorf("field validation failed")
	err := NewInvalidParamsError("macd", "invalid strategy parameters", cause)

	suite.Require().True(IsInvalidParamsError(err))
	suite.Require().Equal(cause, err.Unwrap())
	suite.Require().Contains(err.Error(), "invalid strategy parameters")
	suite.Require().Contains(err.Error(), "field validation failed")

	suite.Require().False(IsInvalidParamsError(NewInsufficientDataError(1, 0, "", "empty")))
}

func (suite *ErrorsTestSuite) TestEmptyEquityCurveError() {
	err := NewEmptyEquityCurveError(1, "too few points")

	suite.Require().True(IsEmptyEquityCurveError(err))
	suite.Require().Equal(1, err.Points)

	wrapped := fmt.Errorf("evaluate: %w", err)
	suite.Require().True(IsEmptyEquityCurveError(wrapped))
}
