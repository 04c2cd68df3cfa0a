// Package service provides typed clients for the CRM's domain endpoints.
// Every call rides the shared crm.Client, so credential attachment, cookie
// auth and failure normalization behave the same on every page.
package service

import (
	"context"
	"fmt"
	"net/url"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"
	goerrors "github.com/goliatone/go-errors"
	"github.com/nyaruka/phonenumbers"

	crm "github.com/goliatone/go-crm-client"
)

// DefaultPhoneRegion is assumed when an employee phone has no country prefix
const DefaultPhoneRegion = "MX"

// Employee mirrors the backend's employee record
type Employee struct {
	ID           string  `json:"id,omitempty"`
	FirstName    string  `json:"nombre"`
	LastName     string  `json:"apellido"`
	Email        string  `json:"email"`
	Phone        string  `json:"telefono,omitempty"`
	Position     string  `json:"puesto,omitempty"`
	Department   string  `json:"departamento,omitempty"`
	Salary       float64 `json:"salario,omitempty"`
	HireDate     string  `json:"fechaIngreso,omitempty"`
	Active       bool    `json:"activo"`
	UserRoleName string  `json:"roleName,omitempty"`
}

// Validate will run validation rules
func (e Employee) Validate() error {
	return validation.ValidateStruct(&e,
		validation.Field(&e.FirstName, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.LastName, validation.Required, validation.Length(1, 200)),
		validation.Field(&e.Email, validation.Required, is.Email),
	)
}

// EmployeeFilters narrows List results. The zero value lists everything.
type EmployeeFilters struct {
	Department string `json:"departamento,omitempty"`
	Active     *bool  `json:"activo,omitempty"`
	Search     string `json:"q,omitempty"`
}

func (f EmployeeFilters) query() string {
	q := url.Values{}
	if f.Department != "" {
		q.Set("departamento", f.Department)
	}
	if f.Active != nil {
		q.Set("activo", fmt.Sprintf("%t", *f.Active))
	}
	if f.Search != "" {
		q.Set("q", f.Search)
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

// Employees is the typed client for the employee endpoints
type Employees struct {
	client *crm.Client
	region string
}

// NewEmployees builds the employees client
func NewEmployees(client *crm.Client) *Employees {
	return &Employees{client: client, region: DefaultPhoneRegion}
}

// WithPhoneRegion overrides the region used to normalize bare phone numbers
func (s *Employees) WithPhoneRegion(region string) *Employees {
	if region != "" {
		s.region = region
	}
	return s
}

// List returns employees matching filters
func (s *Employees) List(ctx context.Context, filters EmployeeFilters) ([]Employee, error) {
	var records []Employee
	if err := s.client.Get(ctx, "/api/employees"+filters.query(), &records); err != nil {
		return nil, err
	}
	return records, nil
}

// Get returns one employee by id
func (s *Employees) Get(ctx context.Context, id string) (*Employee, error) {
	record := &Employee{}
	if err := s.client.Get(ctx, "/api/employees/"+url.PathEscape(id), record); err != nil {
		return nil, err
	}
	return record, nil
}

// Create validates and creates an employee. The phone, when present, is
// normalized to E.164 before submission so the backend stores one format.
func (s *Employees) Create(ctx context.Context, record Employee) (*Employee, error) {
	if err := record.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid employee payload")
	}

	if record.Phone != "" {
		normalized, err := NormalizePhone(record.Phone, s.region)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid employee phone number")
		}
		record.Phone = normalized
	}

	created := &Employee{}
	if err := s.client.Post(ctx, "/api/employees", record, created); err != nil {
		return nil, err
	}
	return created, nil
}

// Update modifies an existing employee
func (s *Employees) Update(ctx context.Context, id string, record Employee) (*Employee, error) {
	if err := record.Validate(); err != nil {
		return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid employee payload")
	}

	if record.Phone != "" {
		normalized, err := NormalizePhone(record.Phone, s.region)
		if err != nil {
			return nil, goerrors.Wrap(err, goerrors.CategoryValidation, "invalid employee phone number")
		}
		record.Phone = normalized
	}

	updated := &Employee{}
	if err := s.client.Put(ctx, "/api/employees/"+url.PathEscape(id), record, updated); err != nil {
		return nil, err
	}
	return updated, nil
}

// Delete removes an employee
func (s *Employees) Delete(ctx context.Context, id string) error {
	return s.client.Delete(ctx, "/api/employees/"+url.PathEscape(id))
}

// NormalizePhone parses raw against region and renders it in E.164
func NormalizePhone(raw, region string) (string, error) {
	parsed, err := phonenumbers.Parse(raw, region)
	if err != nil {
		return "", err
	}

	if !phonenumbers.IsValidNumber(parsed) {
		return "", goerrors.New("phone number is not valid", goerrors.CategoryValidation)
	}

	return phonenumbers.Format(parsed, phonenumbers.E164), nil
}
