package service_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	crm "github.com/goliatone/go-crm-client"
	"github.com/goliatone/go-crm-client/service"
)

func newTestAttendance(t *testing.T, handler http.Handler) *service.Attendance {
	t.Helper()

	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := crm.NewClient(&crm.BaseConfig{BaseURL: srv.URL}, crm.NewMemoryTokenStore())
	return service.NewAttendance(client)
}

func TestAttendanceCheckIn(t *testing.T) {
	attendance := newTestAttendance(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/asistencia/check-in", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"a-1","empleadoId":"7","fecha":"2026-08-30","entrada":"09:02","estado":"presente"}`))
	}))

	record, err := attendance.CheckIn(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "a-1", record.ID)
	assert.Equal(t, "7", record.EmployeeID)
	assert.Equal(t, "09:02", record.CheckIn)
	assert.Empty(t, record.CheckOut)
}

func TestAttendanceCheckOut(t *testing.T) {
	attendance := newTestAttendance(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/asistencia/check-out", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"a-1","empleadoId":"7","fecha":"2026-08-30","entrada":"09:02","salida":"18:11","estado":"completo"}`))
	}))

	record, err := attendance.CheckOut(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "18:11", record.CheckOut)
	assert.Equal(t, "completo", record.Status)
}

func TestAttendanceHistory(t *testing.T) {
	var gotPath string
	attendance := newTestAttendance(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":"a-1","empleadoId":"7","fecha":"2026-08-29","entrada":"09:00","salida":"18:00"},
			{"id":"a-2","empleadoId":"7","fecha":"2026-08-30","entrada":"09:02"}
		]`))
	}))

	records, err := attendance.History(context.Background(), "7")
	require.NoError(t, err)

	assert.Equal(t, "/api/asistencia/7", gotPath)
	require.Len(t, records, 2)
	assert.Equal(t, "2026-08-29", records[0].Date)
	assert.Empty(t, records[1].CheckOut)
}

func TestAttendanceCheckInRejected(t *testing.T) {
	attendance := newTestAttendance(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusConflict)
		_, _ = w.Write([]byte(`{"error":"ya existe un registro de entrada para hoy"}`))
	}))

	_, err := attendance.CheckIn(context.Background())
	require.Error(t, err)
	assert.Equal(t, http.StatusConflict, crm.StatusFromError(err))
	assert.Equal(t, "ya existe un registro de entrada para hoy", crm.ServerMessageFromError(err))
}
