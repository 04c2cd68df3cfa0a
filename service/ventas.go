package service

import (
	"context"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
	goerrors "github.com/goliatone/go-errors"

	crm "github.com/goliatone/go-crm-client"
)

// Sale mirrors the backend's sales record
type Sale struct {
	ID         string  `json:"id,omitempty"`
	Client     string  `json:"cliente"`
	Amount     float64 `json:"monto"`
	Date       string  `json:"fecha,omitempty"`
	Status     string  `json:"estado,omitempty"`
	SellerID   string  `json:"vendedorId,omitempty"`
	SellerName string  `json:"vendedorNombre,omitempty"`
}

// Validate will run validation rules
func (s Sale) Validate() error {
	return validation.ValidateStruct(&s,
		validation.Field(&s.Client, validation.Required, validation.Length(1, 200)),
		validation.Field(&s.Amount, validation.Required, validation.Min(0.01)),
	)
}

// SalesSummary is the aggregate the dashboard renders
type SalesSummary struct {
	Total     float64 `json:"total"`
	Count     int     `json:"count"`
	MonthOver float64 `json:"monthOverMonth,omitempty"`
}

// Sales is the typed client for the ventas endpoints
type Sales struct {
	client *crm.Client
}

// NewSales builds the sales client
func NewSales(client *crm.Client) *Sales {
	return &Sales{client: client}
}

// List returns all sales records
func (s *Sales) List(ctx context.Context) ([]Sale, error) {
	var records []Sale
	if err := s.client.Get(ctx, "/api/ventas", &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Create validates and records a sale
func (s *Sales) Create(ctx context.Context, record Sale) (*Sale, error) {
	if err := record.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid sale payload")
	}

	created := &Sale{}
	if err := s.client.Post(ctx, "/api/ventas", record, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Delete removes a sale record
func (s *Sales) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/api/ventas/"+url.PathEscape(id))
}

// Summary returns the dashboard aggregate
func (s *Sales) Summary(ctx context.Context) (*SalesSummary, error) {
	summary := &SalesSummary{}
	if err := s.client.Get(ctx, "/api/ventas/summary", summary); err != nil {
		return nil, err
	}
	return summary, nil
}
