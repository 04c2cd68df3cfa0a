package service

import (
	"context"
	"net/url"

	crm "github.com/goliatone/go-crm-client"
)

// AttendanceRecord is one check-in/check-out pair
type AttendanceRecord struct {
	ID         string `json:"id,omitempty"`
	EmployeeID string `json:"empleadoId"`
	Date       string `json:"fecha"`
	CheckIn    string `json:"entrada,omitempty"`
	CheckOut   string `json:"salida,omitempty"`
	Status     string `json:"estado,omitempty"`
}

// Attendance is the typed client for the asistencia endpoints
type Attendance struct {
	client *crm.Client
}

// NewAttendance builds the attendance client
func NewAttendance(client *crm.Client) *Attendance {
	return &Attendance{client: client}
}

// CheckIn registers the session user's arrival
func (s *Attendance) CheckIn(ctx context.Context) (*AttendanceRecord, error) {
	record := &AttendanceRecord{}
	if err := s.client.Post(ctx, "/api/asistencia/check-in", nil, record); err != nil {
		return nil, err
	}
	return record, nil
}

// CheckOut registers the session user's departure
func (s *Attendance) CheckOut(ctx context.Context) (*AttendanceRecord, error) {
	record := &AttendanceRecord{}
	if err := s.client.Post(ctx, "/api/asistencia/check-out", nil, record); err != nil {
		return nil, err
	}
	return record, nil
}

// History returns an employee's attendance records
func (s *Attendance) History(ctx context.Context, employeeID string) ([]AttendanceRecord, error) {
	var records []AttendanceRecord
	err := s.client.Get(ctx, "/api/asistencia/"+url.PathEscape(employeeID), &records)
	if err != nil {
		return nil, err
	}
	return records, nil
}
