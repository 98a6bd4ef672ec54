package services

import (
	"context"

	"github.com/hrgate/hrgate/modules/hrm/domain/aggregates/employee"
	"github.com/hrgate/hrgate/modules/hrm/domain/entities/sequence"
	"github.com/hrgate/hrgate/pkg/composables"
	"github.com/hrgate/hrgate/pkg/eventbus"
)

type EmployeeService struct {
	repo        employee.Repository
	allocator   sequence.Allocator
	publisher   eventbus.EventBus
	codePrefix  string
	codePadding int
}

func NewEmployeeService(
	repo employee.Repository,
	allocator sequence.Allocator,
	publisher eventbus.EventBus,
	codePrefix string,
	codePadding int,
) *EmployeeService {
	return &EmployeeService{
		repo:        repo,
		allocator:   allocator,
		publisher:   publisher,
		codePrefix:  codePrefix,
		codePadding: codePadding,
	}
}

func (s *EmployeeService) Count(ctx context.Context) (int64, error) {
	return s.repo.Count(ctx)
}

func (s *EmployeeService) GetAll(ctx context.Context) ([]employee.Employee, error) {
	return s.repo.GetAll(ctx)
}

func (s *EmployeeService) GetByID(ctx context.Context, id uint) (employee.Employee, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *EmployeeService) GetPaginated(ctx context.Context, params *employee.FindParams) ([]employee.Employee, error) {
	return s.repo.GetPaginated(ctx, params)
}

// Create persists one manually entered employee. The code is assigned from
// the shared per-tenant sequence inside the same transaction as the insert,
// so a failed insert rolls the counter increment back with it and the number
// is reissued to the next creation. Bulk import allocates outside a shared
// transaction and burns the numbers of failed rows instead.
func (s *EmployeeService) Create(ctx context.Context, data *employee.CreateDTO) (employee.Employee, error) {
	return composables.InTxResult(ctx, func(txCtx context.Context) (employee.Employee, error) {
		seq, err := s.allocator.Allocate(txCtx, sequence.ClassEmployee)
		if err != nil {
			return nil, err
		}
		entity, err := data.ToEntity(employee.WithCode(employee.FormatCode(s.codePrefix, s.codePadding, seq)))
		if err != nil {
			return nil, err
		}
		created, err := s.repo.Create(txCtx, entity)
		if err != nil {
			return nil, err
		}
		ev, err := employee.NewCreatedEvent(txCtx, created)
		if err != nil {
			return nil, err
		}
		s.publisher.Publish(ev)
		return created, nil
	})
}

// NextCode previews the code the next creation would receive. The preview is
// not a reservation; a concurrent create invalidates it.
func (s *EmployeeService) NextCode(ctx context.Context) (string, error) {
	seq, err := s.allocator.Peek(ctx, sequence.ClassEmployee)
	if err != nil {
		return "", err
	}
	return employee.FormatCode(s.codePrefix, s.codePadding, seq), nil
}
