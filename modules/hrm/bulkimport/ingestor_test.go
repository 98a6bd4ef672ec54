package bulkimport_test

import (
	"context"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/stretchr/testify/require"

	"github.com/hrgate/hrgate/modules/hrm/bulkimport"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/sequence"
	"github.com/hrgate/hrgate/modules/hrm/infrastructure/persistence"
)

func eligibleRows(emails ...string) []bulkimport.EligibleRow {
	rows := make([]bulkimport.EligibleRow, len(emails))
	for i, email := range emails {
		rows[i] = bulkimport.EligibleRow{Row: validRow(i+2, email), DepartmentID: 1}
	}
	return rows
}

func TestIngestor_AssignsCodesInFileOrder(t *testing.T) {
	employees := &employeeRepositoryMock{}
	ingestor := bulkimport.NewIngestor(newMemAllocator(), employees, nil, "EMP", 5)

	created, rowErrs, err := ingestor.Ingest(tenantContext(), eligibleRows("a@example.com", "b@example.com", "c@example.com"))
	require.NoError(t, err)
	require.Empty(t, rowErrs)
	require.Len(t, created, 3)
	require.Equal(t, "EMP00001", created[0].Code)
	require.Equal(t, "EMP00002", created[1].Code)
	require.Equal(t, "EMP00003", created[2].Code)
	require.Equal(t, 3, employees.createdCount())
}

func TestIngestor_BurnedNumberLeavesGap(t *testing.T) {
	employees := &employeeRepositoryMock{createErrs: map[string]error{
		"taken@example.com": persistence.ErrEmployeeExists,
	}}
	ingestor := bulkimport.NewIngestor(newMemAllocator(), employees, nil, "EMP", 5)

	created, rowErrs, err := ingestor.Ingest(tenantContext(),
		eligibleRows("a@example.com", "taken@example.com", "b@example.com"))
	require.NoError(t, err)

	require.Len(t, rowErrs, 1)
	require.Equal(t, 3, rowErrs[0].Row)
	require.Equal(t, bulkimport.CodeCreateFailed, rowErrs[0].Code)

	// The number allocated for the failed row is burned, never reissued.
	require.Len(t, created, 2)
	require.Equal(t, "EMP00001", created[0].Code)
	require.Equal(t, "EMP00003", created[1].Code)
}

func TestIngestor_InfrastructureFailureAbortsWithPartials(t *testing.T) {
	employees := &employeeRepositoryMock{createErrs: map[string]error{
		"boom@example.com": errors.New("connection reset"),
	}}
	ingestor := bulkimport.NewIngestor(newMemAllocator(), employees, nil, "EMP", 5)

	created, _, err := ingestor.Ingest(tenantContext(),
		eligibleRows("a@example.com", "boom@example.com", "never@example.com"))
	require.Error(t, err)
	require.NotErrorIs(t, err, persistence.ErrEmployeeExists)

	// The row created before the failure is reported, the rest never ran.
	require.Len(t, created, 1)
	require.Equal(t, "EMP00001", created[0].Code)
	require.Equal(t, 1, employees.createdCount())
}

func TestIngestor_AllocatorFailureAborts(t *testing.T) {
	allocator := newMemAllocator()
	allocator.failAt = 1
	allocator.failErr = sequence.ErrStorageUnavailable
	employees := &employeeRepositoryMock{}
	ingestor := bulkimport.NewIngestor(allocator, employees, nil, "EMP", 5)

	created, _, err := ingestor.Ingest(tenantContext(), eligibleRows("a@example.com", "b@example.com"))
	require.ErrorIs(t, err, sequence.ErrStorageUnavailable)
	require.Len(t, created, 1)
}

func TestIngestor_CancelledContextMarksRemainingRows(t *testing.T) {
	ctx, cancel := context.WithCancel(tenantContext())
	cancel()

	employees := &employeeRepositoryMock{}
	ingestor := bulkimport.NewIngestor(newMemAllocator(), employees, nil, "EMP", 5)

	created, rowErrs, err := ingestor.Ingest(ctx, eligibleRows("a@example.com", "b@example.com"))
	require.NoError(t, err)
	require.Empty(t, created)
	require.Zero(t, employees.createdCount())

	require.Len(t, rowErrs, 2)
	for i, e := range rowErrs {
		require.Equal(t, i+2, e.Row)
		require.Equal(t, bulkimport.CodeTimeout, e.Code)
	}
}

func TestIngestor_DeadlineMidBatchMarksRemainingRows(t *testing.T) {
	allocator := newMemAllocator()
	allocator.failAt = 1
	allocator.failErr = context.DeadlineExceeded
	employees := &employeeRepositoryMock{}
	ingestor := bulkimport.NewIngestor(allocator, employees, nil, "EMP", 5)

	created, rowErrs, err := ingestor.Ingest(tenantContext(),
		eligibleRows("a@example.com", "b@example.com", "c@example.com"))

	// Running out of budget mid-row is a timeout outcome, not an
	// infrastructure failure.
	require.NoError(t, err)
	require.Len(t, created, 1)
	require.Equal(t, "EMP00001", created[0].Code)
	require.Equal(t, 1, employees.createdCount())

	require.Len(t, rowErrs, 2)
	for i, e := range rowErrs {
		require.Equal(t, i+3, e.Row)
		require.Equal(t, bulkimport.CodeTimeout, e.Code)
	}
}

func TestIngestor_DeadlineDuringPersistMarksRemainingRows(t *testing.T) {
	employees := &employeeRepositoryMock{createErrs: map[string]error{
		"slow@example.com": context.DeadlineExceeded,
	}}
	ingestor := bulkimport.NewIngestor(newMemAllocator(), employees, nil, "EMP", 5)

	created, rowErrs, err := ingestor.Ingest(tenantContext(),
		eligibleRows("a@example.com", "slow@example.com", "never@example.com"))
	require.NoError(t, err)
	require.Len(t, created, 1)

	require.Len(t, rowErrs, 2)
	require.Equal(t, 3, rowErrs[0].Row)
	require.Equal(t, 4, rowErrs[1].Row)
	for _, e := range rowErrs {
		require.Equal(t, bulkimport.CodeTimeout, e.Code)
	}
}

func TestAllocator_ConcurrentAllocationsAreUnique(t *testing.T) {
	const workers = 200
	allocator := newMemAllocator()
	ctx := tenantContext()

	results := make([]int64, workers)
	errs := make([]error, workers)
	var wg sync.WaitGroup
	wg.Add(workers)
	for i := 0; i < workers; i++ {
		go func(slot int) {
			defer wg.Done()
			results[slot], errs[slot] = allocator.Allocate(ctx, sequence.ClassEmployee)
		}(i)
	}
	wg.Wait()

	for _, err := range errs {
		require.NoError(t, err)
	}

	seen := make(map[int64]bool, workers)
	for _, seq := range results {
		require.False(t, seen[seq], "sequence %d allocated twice", seq)
		require.GreaterOrEqual(t, seq, int64(1))
		require.LessOrEqual(t, seq, int64(workers))
		seen[seq] = true
	}

	next, err := allocator.Peek(ctx, sequence.ClassEmployee)
	require.NoError(t, err)
	require.Equal(t, int64(workers+1), next)
}

func TestAllocator_ClassesAreIndependent(t *testing.T) {
	allocator := newMemAllocator()
	ctx := tenantContext()

	for i := 1; i <= 3; i++ {
		seq, err := allocator.Allocate(ctx, sequence.ClassEmployee)
		require.NoError(t, err)
		require.Equal(t, int64(i), seq)
	}

	other, err := allocator.Allocate(ctx, sequence.EntityClass("contractor"))
	require.NoError(t, err)
	require.Equal(t, int64(1), other)
}
