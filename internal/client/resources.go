package client

import (
	"context"
	"net/http"

	"github.com/dom/meucoracao/internal/domain"
	"github.com/google/uuid"
)

// Resource paths on the API.
const (
	PathAgenda   = "/agenda"
	PathAlergias = "/alergias"
	PathLaudos   = "/laudos"
	PathRemedios = "/remedios"
)

// ResourceClient calls the CRUD routes of one record type.
type ResourceClient[T any] struct {
	c    *Client
	path string
}

func NewResourceClient[T any](c *Client, path string) *ResourceClient[T] {
	return &ResourceClient[T]{c: c, path: path}
}

func (c *Client) Appointments() *ResourceClient[domain.Appointment] {
	return NewResourceClient[domain.Appointment](c, PathAgenda)
}

func (c *Client) Allergies() *ResourceClient[domain.Allergy] {
	return NewResourceClient[domain.Allergy](c, PathAlergias)
}

func (c *Client) Reports() *ResourceClient[domain.Report] {
	return NewResourceClient[domain.Report](c, PathLaudos)
}

func (c *Client) Medications() *ResourceClient[domain.Medication] {
	return NewResourceClient[domain.Medication](c, PathRemedios)
}

func (r *ResourceClient[T]) List(ctx context.Context) ([]T, error) {
	var records []T
	if err := r.c.do(ctx, http.MethodGet, r.path, nil, &records); err != nil {
		return nil, err
	}
	if records == nil {
		records = []T{}
	}
	return records, nil
}

func (r *ResourceClient[T]) Get(ctx context.Context, id uuid.UUID) (*T, error) {
	var record T
	if err := r.c.do(ctx, http.MethodGet, r.path+"/"+id.String(), nil, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Create sends body, usually the record's Input type or a map of fields.
func (r *ResourceClient[T]) Create(ctx context.Context, body any) (*T, error) {
	var record T
	if err := r.c.do(ctx, http.MethodPost, r.path, body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

// Update sends the fields in body; fields left out keep their value.
func (r *ResourceClient[T]) Update(ctx context.Context, id uuid.UUID, body any) (*T, error) {
	var record T
	if err := r.c.do(ctx, http.MethodPut, r.path+"/"+id.String(), body, &record); err != nil {
		return nil, err
	}
	return &record, nil
}

func (r *ResourceClient[T]) Delete(ctx context.Context, id uuid.UUID) error {
	return r.c.do(ctx, http.MethodDelete, r.path+"/"+id.String(), nil, nil)
}
