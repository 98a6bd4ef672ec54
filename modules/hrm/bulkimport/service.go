package bulkimport

import (
	"context"
	"time"

	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/department"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/sequence"
	"github.com/hrgate/hrgate/pkg/composables"
	"github.com/hrgate/hrgate/pkg/eventbus"
)

// Options carries the resource bounds and code format for one service
// instance.
type Options struct {
	MaxUploadSize int64
	MaxRows       int
	Timeout       time.Duration
	CodePrefix    string
	CodePadding   int
}

// Upload is one file as received from the transport layer.
type Upload struct {
	Filename string
	MIME     string
	Data     []byte
}

// Service runs the ingestion pipeline: parse, validate per row, check the
// batch, ingest the survivors, report. The dry-run path stops after the
// batch check and has no side effects.
type Service struct {
	opts      Options
	parser    *Parser
	checker   *ConsistencyChecker
	ingestor  *Ingestor
	publisher eventbus.EventBus
}

func NewService(
	opts Options,
	departments department.Repository,
	employees employee.Repository,
	allocator sequence.Allocator,
	publisher eventbus.EventBus,
) *Service {
	return &Service{
		opts:      opts,
		parser:    NewParser(opts.MaxUploadSize, opts.MaxRows),
		checker:   NewConsistencyChecker(departments, employees),
		ingestor:  NewIngestor(allocator, employees, publisher, opts.CodePrefix, opts.CodePadding),
		publisher: publisher,
	}
}

// Validate runs the pipeline up to the consistency check and reports what an
// import of this file would reject. Calling it twice on the same unmodified
// file yields identical error sets.
func (s *Service) Validate(ctx context.Context, upload Upload) (*ValidationReport, error) {
	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	rows, rowErrs, err := s.parseAndValidate(upload)
	if err != nil {
		return nil, err
	}

	_, rowErrs, err = s.checker.Check(ctx, rows, rowErrs)
	if err != nil {
		return nil, err
	}
	available, err := s.checker.AvailableDepartments(ctx)
	if err != nil {
		return nil, err
	}

	return BuildValidationReport(len(rows), rowErrs, available), nil
}

// Import runs the full pipeline. The returned result is non-nil whenever
// ingestion started, also when it was later aborted by an infrastructure
// failure — completed row-creates are never dropped from the report.
func (s *Service) Import(ctx context.Context, upload Upload) (*UploadResult, error) {
	ctx, cancel := s.withBudget(ctx)
	defer cancel()

	rows, rowErrs, err := s.parseAndValidate(upload)
	if err != nil {
		return nil, err
	}

	eligible, rowErrs, err := s.checker.Check(ctx, rows, rowErrs)
	if err != nil {
		return nil, err
	}

	created, ingestErrs, ingestErr := s.ingestor.Ingest(ctx, eligible)
	rowErrs = append(rowErrs, ingestErrs...)

	result := BuildResult(len(rows), rowErrs, created)
	if ingestErr != nil {
		result.Success = false
		result.Message = ingestErr.Error()
	}

	s.publishCompleted(ctx, result)

	if ingestErr != nil {
		return result, ingestErr
	}
	return result, nil
}

// parseAndValidate covers the stages that are pure functions of the file.
func (s *Service) parseAndValidate(upload Upload) ([]Row, []RowError, error) {
	rows, err := s.parser.Parse(upload.Data, upload.MIME)
	if err != nil {
		return nil, nil, err
	}
	var rowErrs []RowError
	for _, row := range rows {
		rowErrs = append(rowErrs, ValidateRow(row)...)
	}
	return rows, rowErrs, nil
}

func (s *Service) withBudget(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.opts.Timeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.opts.Timeout)
}

func (s *Service) publishCompleted(ctx context.Context, result *UploadResult) {
	if s.publisher == nil {
		return
	}
	ev, err := NewImportCompletedEvent(ctx, result)
	if err != nil {
		composables.UseLogger(ctx).WithError(err).Warn("skipping import completed event")
		return
	}
	s.publisher.Publish(ev)
}
