package bulkimport

// UploadResult is the aggregate outcome of one import call. It is always
// fully populated, including when nothing was created, so callers can render
// a complete diagnostic view.
type UploadResult struct {
	Success      bool              `json:"success"`
	TotalRows    int               `json:"totalRows"`
	SuccessCount int               `json:"successCount"`
	FailedCount  int               `json:"failedCount"`
	Errors       []RowError        `json:"errors"`
	Created      []CreatedEmployee `json:"createdEntities"`
	// Message carries the cause when ingestion was aborted by an
	// infrastructure failure; empty otherwise.
	Message string `json:"message,omitempty"`
}

// ValidationReport is the outcome of a dry run. No persistence side effects
// have occurred when one is produced.
type ValidationReport struct {
	Valid                bool       `json:"valid"`
	TotalRows            int        `json:"totalRows"`
	ValidRows            int        `json:"validRows"`
	Errors               []RowError `json:"errors"`
	AvailableDepartments []string   `json:"availableReferenceValues"`
}

// BuildResult derives the counts from what actually happened: successCount is
// the number of created entities, failedCount is everything else. The two
// always add up to totalRows.
func BuildResult(totalRows int, errs []RowError, created []CreatedEmployee) *UploadResult {
	if errs == nil {
		errs = []RowError{}
	}
	if created == nil {
		created = []CreatedEmployee{}
	}
	successCount := len(created)
	return &UploadResult{
		Success:      totalRows == successCount,
		TotalRows:    totalRows,
		SuccessCount: successCount,
		FailedCount:  totalRows - successCount,
		Errors:       errs,
		Created:      created,
	}
}

// BuildValidationReport mirrors BuildResult for the dry-run path.
func BuildValidationReport(totalRows int, errs []RowError, availableDepartments []string) *ValidationReport {
	if errs == nil {
		errs = []RowError{}
	}
	if availableDepartments == nil {
		availableDepartments = []string{}
	}
	failedRows := map[int]bool{}
	for _, e := range errs {
		failedRows[e.Row] = true
	}
	return &ValidationReport{
		Valid:                len(errs) == 0,
		TotalRows:            totalRows,
		ValidRows:            totalRows - len(failedRows),
		Errors:               errs,
		AvailableDepartments: availableDepartments,
	}
}
