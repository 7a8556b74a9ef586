package main

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/suite"
)

// ImportTestSuite covers CSV parsing for the import command.
type ImportTestSuite struct {
	suite.Suite
}

func TestImportSuite(t *testing.T) {
	suite.Run(t, new(ImportTestSuite))
}

func (suite *ImportTestSuite) TestReadBarsCSV() {
	csv := strings.Join([]string{
		"date,open,high,low,close,volume,turnover",
		"20240102,10,11,9,10.5,1000,10500",
		"20240103,10.5,12,10,11.5,1200,",
	}, "\n")

	bars, err := readBarsCSV(strings.NewReader(csv))
	suite.Require().NoError(err)
	suite.Require().Len(bars, 2)

	suite.Require().Equal(10.5, bars[0].Close)
	suite.Require().Equal(1000.0, bars[0].Volume)
	suite.Require().True(bars[0].Turnover.IsSome())
	suite.Require().True(bars[1].Turnover.IsNone())
}

func (suite *ImportTestSuite) TestReadBarsCSVWithoutTurnoverColumn() {
	csv := strings.Join([]string{
		"date,open,high,low,close,volume",
		"20240102,10,11,9,10.5,1000",
	}, "\n")

	bars, err := readBarsCSV(strings.NewReader(csv))
	suite.Require().NoError(err)
	suite.Require().Len(bars, 1)
	suite.Require().True(bars[0].Turnover.IsNone())
}

func (suite *ImportTestSuite) TestReadBarsCSVRejectsBadRows() {
	cases := []struct {
		name string
		csv  string
	}{
		{
			name: "bad date",
			csv:  "date,open,high,low,close,volume\n2024-01-02,10,11,9,10.5,1000",
		},
		{
			name: "bad number",
			csv:  "date,open,high,low,close,volume\n20240102,ten,11,9,10.5,1000",
		},
		{
			name: "too few columns",
			csv:  "date,close\n20240102,10",
		},
	}

	for _, tc := range cases {
		_, err := readBarsCSV(strings.NewReader(tc.csv))
		suite.Require().Error(err, tc.name)
	}
}
