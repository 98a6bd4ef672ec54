package department

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Department is read-only reference data from the importer's point of view.
type Department struct {
	id        uint
	tenantID  uuid.UUID
	name      string
	createdAt time.Time
}

type Option func(*Department)

func WithID(id uint) Option {
	return func(d *Department) {
		d.id = id
	}
}

func WithTenantID(tenantID uuid.UUID) Option {
	return func(d *Department) {
		d.tenantID = tenantID
	}
}

func WithCreatedAt(createdAt time.Time) Option {
	return func(d *Department) {
		d.createdAt = createdAt
	}
}

func New(name string, opts ...Option) *Department {
	d := &Department{
		name:      name,
		createdAt: time.Now(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *Department) ID() uint            { return d.id }
func (d *Department) TenantID() uuid.UUID { return d.tenantID }
func (d *Department) Name() string        { return d.name }
func (d *Department) CreatedAt() time.Time {
	return d.createdAt
}

type Repository interface {
	GetAll(ctx context.Context) ([]*Department, error)
	GetByID(ctx context.Context, id uint) (*Department, error)
	Create(ctx context.Context, data *Department) (*Department, error)
}
