package services

import (
	"context"
	"sync"
	"testing"

	"github.com/go-faster/errors"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/require"

	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/sequence"
	"github.com/hrgate/hrgate/pkg/composables"
)

// txStub satisfies pgx.Tx so service tests can run the transactional paths
// without a database.
type txStub struct{}

func (txStub) Begin(context.Context) (pgx.Tx, error) { return txStub{}, nil }
func (txStub) Commit(context.Context) error          { return nil }
func (txStub) Rollback(context.Context) error        { return nil }
func (txStub) CopyFrom(context.Context, pgx.Identifier, []string, pgx.CopyFromSource) (int64, error) {
	return 0, nil
}
func (txStub) SendBatch(context.Context, *pgx.Batch) pgx.BatchResults { return nil }
func (txStub) LargeObjects() pgx.LargeObjects                         { return pgx.LargeObjects{} }
func (txStub) Prepare(context.Context, string, string) (*pgconn.StatementDescription, error) {
	return nil, nil
}
func (txStub) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	return pgconn.CommandTag{}, nil
}
func (txStub) Query(context.Context, string, ...any) (pgx.Rows, error) { return nil, nil }
func (txStub) QueryRow(context.Context, string, ...any) pgx.Row        { return nil }
func (txStub) Conn() *pgx.Conn                                         { return nil }

func txContext() context.Context {
	return composables.WithTx(context.Background(), txStub{})
}

type allocatorStub struct {
	mu   sync.Mutex
	seq  int64
	fail error
}

func (a *allocatorStub) Allocate(context.Context, sequence.EntityClass) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail != nil {
		return 0, a.fail
	}
	a.seq++
	return a.seq, nil
}

func (a *allocatorStub) Peek(context.Context, sequence.EntityClass) (int64, error) {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.fail != nil {
		return 0, a.fail
	}
	return a.seq + 1, nil
}

type employeeRepoStub struct {
	created   []employee.Employee
	createErr error
}

func (r *employeeRepoStub) Count(context.Context) (int64, error) {
	return int64(len(r.created)), nil
}
func (r *employeeRepoStub) GetAll(context.Context) ([]employee.Employee, error) {
	return r.created, nil
}
func (r *employeeRepoStub) GetPaginated(context.Context, *employee.FindParams) ([]employee.Employee, error) {
	return r.created, nil
}
func (r *employeeRepoStub) GetByID(context.Context, uint) (employee.Employee, error) {
	return nil, nil
}
func (r *employeeRepoStub) FindByEmails(context.Context, []string) ([]employee.Employee, error) {
	return nil, nil
}
func (r *employeeRepoStub) Create(_ context.Context, data employee.Employee) (employee.Employee, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.created = append(r.created, data)
	return data, nil
}

type stubPublisher struct {
	published []interface{}
}

func (s *stubPublisher) Publish(args ...interface{})   { s.published = append(s.published, args...) }
func (s *stubPublisher) Subscribe(handler interface{}) {}
func (s *stubPublisher) Unsubscribe(interface{})       {}
func (s *stubPublisher) Clear()                        {}
func (s *stubPublisher) SubscribersCount() int         { return 0 }

func validCreateDTO() *employee.CreateDTO {
	return &employee.CreateDTO{
		FirstName:    "Jane",
		LastName:     "Doe",
		Email:        "jane@example.com",
		Phone:        "+1 555 0100",
		BirthDate:    "1990-04-12",
		Gender:       "female",
		DepartmentID: 1,
		Position:     "Backend Engineer",
		Salary:       "95000.00",
		HireDate:     "2024-02-01",
	}
}

func tenantTxContext() context.Context {
	return composables.WithTenantID(txContext(), uuid.New())
}

func TestEmployeeService_CreateAssignsSequentialCodes(t *testing.T) {
	repo := &employeeRepoStub{}
	publisher := &stubPublisher{}
	svc := NewEmployeeService(repo, &allocatorStub{}, publisher, "EMP", 5)
	ctx := tenantTxContext()

	first, err := svc.Create(ctx, validCreateDTO())
	require.NoError(t, err)
	require.Equal(t, "EMP00001", first.Code())

	dto := validCreateDTO()
	dto.Email = "second@example.com"
	second, err := svc.Create(ctx, dto)
	require.NoError(t, err)
	require.Equal(t, "EMP00002", second.Code())

	require.Len(t, repo.created, 2)
	require.Len(t, publisher.published, 2)
	ev, ok := publisher.published[0].(*employee.CreatedEvent)
	require.True(t, ok)
	require.Equal(t, "EMP00001", ev.Result.Code())
}

func TestEmployeeService_CreateAllocatorFailure(t *testing.T) {
	repo := &employeeRepoStub{}
	allocator := &allocatorStub{fail: sequence.ErrStorageUnavailable}
	svc := NewEmployeeService(repo, allocator, &stubPublisher{}, "EMP", 5)

	_, err := svc.Create(tenantTxContext(), validCreateDTO())
	require.ErrorIs(t, err, sequence.ErrStorageUnavailable)
	require.Empty(t, repo.created)
}

func TestEmployeeService_CreatePersistFailurePropagates(t *testing.T) {
	repo := &employeeRepoStub{createErr: errors.New("insert failed")}
	publisher := &stubPublisher{}
	svc := NewEmployeeService(repo, &allocatorStub{}, publisher, "EMP", 5)

	_, err := svc.Create(tenantTxContext(), validCreateDTO())
	require.Error(t, err)
	require.Empty(t, repo.created)
	// No event leaves the failed transaction.
	require.Empty(t, publisher.published)
}

func TestEmployeeService_NextCodeIsPreviewOnly(t *testing.T) {
	allocator := &allocatorStub{}
	svc := NewEmployeeService(&employeeRepoStub{}, allocator, &stubPublisher{}, "EMP", 5)
	ctx := tenantTxContext()

	code, err := svc.NextCode(ctx)
	require.NoError(t, err)
	require.Equal(t, "EMP00001", code)

	// Repeated peeks do not consume the number.
	again, err := svc.NextCode(ctx)
	require.NoError(t, err)
	require.Equal(t, code, again)

	_, err = svc.Create(ctx, validCreateDTO())
	require.NoError(t, err)

	moved, err := svc.NextCode(ctx)
	require.NoError(t, err)
	require.Equal(t, "EMP00002", moved)
}

func TestSequenceService_DelegatesToRepository(t *testing.T) {
	svc := NewSequenceService(&allocatorStub{})
	ctx := context.Background()

	seq, err := svc.Allocate(ctx, sequence.ClassEmployee)
	require.NoError(t, err)
	require.Equal(t, int64(1), seq)

	next, err := svc.Peek(ctx, sequence.ClassEmployee)
	require.NoError(t, err)
	require.Equal(t, int64(2), next)
}
