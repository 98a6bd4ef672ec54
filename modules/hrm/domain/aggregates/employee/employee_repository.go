package employee

import "context"

type FindParams struct {
	Limit  int
	Offset int
	SortBy []string
}

type Repository interface {
	Count(ctx context.Context) (int64, error)
	GetAll(ctx context.Context) ([]Employee, error)
	GetPaginated(ctx context.Context, params *FindParams) ([]Employee, error)
	GetByID(ctx context.Context, id uint) (Employee, error)
	// FindByEmails resolves existing employees for the tenant in one batched
	// query. Emails are matched case-insensitively.
	FindByEmails(ctx context.Context, emails []string) ([]Employee, error)
	Create(ctx context.Context, data Employee) (Employee, error)
}
