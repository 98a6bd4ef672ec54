package services

import (
	"context"

	"github.com/hrgate/hrgate/modules/hrm/domain/entities/department"
)

type DepartmentService struct {
	repo department.Repository
}

func NewDepartmentService(repo department.Repository) *DepartmentService {
	return &DepartmentService{repo: repo}
}

func (s *DepartmentService) GetAll(ctx context.Context) ([]*department.Department, error) {
	return s.repo.GetAll(ctx)
}

func (s *DepartmentService) GetByID(ctx context.Context, id uint) (*department.Department, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *DepartmentService) Create(ctx context.Context, name string) (*department.Department, error) {
	return s.repo.Create(ctx, department.New(name))
}
