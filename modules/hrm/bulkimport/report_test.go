package bulkimport_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hrgate/hrgate/modules/hrm/bulkimport"
)

func TestBuildResult_CountsAddUp(t *testing.T) {
	errs := []bulkimport.RowError{
		{Row: 3, Code: bulkimport.CodeInvalidEmail},
		{Row: 3, Code: bulkimport.CodeInvalidDate},
		{Row: 5, Code: bulkimport.CodeAlreadyExists},
	}
	created := []bulkimport.CreatedEmployee{
		{Code: "EMP00001", Name: "Jane Doe"},
		{Code: "EMP00002", Name: "John Smith"},
	}

	result := bulkimport.BuildResult(4, errs, created)
	require.False(t, result.Success)
	require.Equal(t, 4, result.TotalRows)
	require.Equal(t, 2, result.SuccessCount)
	require.Equal(t, 2, result.FailedCount)
	require.Equal(t, result.TotalRows, result.SuccessCount+result.FailedCount)
}

func TestBuildResult_AllCreated(t *testing.T) {
	result := bulkimport.BuildResult(1, nil, []bulkimport.CreatedEmployee{{Code: "EMP00001"}})
	require.True(t, result.Success)
	require.Zero(t, result.FailedCount)
}

func TestBuildResult_SerializesWithEmptySlices(t *testing.T) {
	data, err := json.Marshal(bulkimport.BuildResult(0, nil, nil))
	require.NoError(t, err)
	require.JSONEq(t, `{
		"success": true,
		"totalRows": 0,
		"successCount": 0,
		"failedCount": 0,
		"errors": [],
		"createdEntities": []
	}`, string(data))
}

func TestBuildValidationReport_CountsDistinctFailedRows(t *testing.T) {
	errs := []bulkimport.RowError{
		{Row: 2, Code: bulkimport.CodeMissingField},
		{Row: 2, Code: bulkimport.CodeInvalidDate},
		{Row: 4, Code: bulkimport.CodeDuplicateInFile},
	}

	report := bulkimport.BuildValidationReport(5, errs, []string{"Engineering"})
	require.False(t, report.Valid)
	require.Equal(t, 5, report.TotalRows)
	require.Equal(t, 3, report.ValidRows)
	require.Len(t, report.Errors, 3)
	require.Equal(t, []string{"Engineering"}, report.AvailableDepartments)
}

func TestBuildValidationReport_CleanFile(t *testing.T) {
	report := bulkimport.BuildValidationReport(3, nil, nil)
	require.True(t, report.Valid)
	require.Equal(t, 3, report.ValidRows)
	require.NotNil(t, report.Errors)
	require.NotNil(t, report.AvailableDepartments)
}
