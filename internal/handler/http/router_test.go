package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/jwt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testSecret = "test-secret-key-for-jwt"
	leaveID    = "7b0f4a57-3c6e-4d55-9a57-2f1c3b0d9e11"
)

type fakeLeaveService struct {
	leave.LeaveService
	lastCaller user.Identity
	lastStatus leave.UpdateLeaveStatusRequest
	statusErr  error
}

func (f *fakeLeaveService) CreateLeaveRequest(ctx context.Context, caller user.Identity, req leave.CreateLeaveRequestRequest) (leave.LeaveRequest, error) {
	f.lastCaller = caller
	if err := req.Validate(); err != nil {
		return leave.LeaveRequest{}, err
	}
	return leave.LeaveRequest{ID: leaveID, EmployeeID: caller.UserID, Status: leave.StatusPending}, nil
}

func (f *fakeLeaveService) UpdateLeaveStatus(ctx context.Context, caller user.Identity, req leave.UpdateLeaveStatusRequest) (leave.LeaveRequest, error) {
	f.lastCaller = caller
	f.lastStatus = req
	if f.statusErr != nil {
		return leave.LeaveRequest{}, f.statusErr
	}
	return leave.LeaveRequest{ID: req.ID, Status: leave.Status(req.Status)}, nil
}

func (f *fakeLeaveService) ListLeaveRequests(ctx context.Context, caller user.Identity, filter leave.LeaveRequestFilter) (leave.ListLeaveRequestResponse, error) {
	if err := filter.Validate(); err != nil {
		return leave.ListLeaveRequestResponse{}, err
	}
	return leave.ListLeaveRequestResponse{
		TotalCount: 41,
		Page:       filter.Page,
		Limit:      filter.Limit,
		TotalPages: 3,
		Requests:   []leave.LeaveRequest{{ID: leaveID}},
	}, nil
}

type fakeAttendanceService struct {
	attendance.AttendanceService
}

func (fakeAttendanceService) CheckIn(ctx context.Context, caller user.Identity) (attendance.Attendance, error) {
	return attendance.Attendance{EmployeeID: caller.UserID, Status: attendance.StatusLate}, nil
}

func (fakeAttendanceService) CheckOut(ctx context.Context, caller user.Identity) (attendance.Attendance, error) {
	return attendance.Attendance{}, attendance.ErrMissingCheckIn
}

type fakePayrollService struct {
	payroll.PayrollService
}

func (fakePayrollService) ExportPeriod(ctx context.Context, caller user.Identity, month, year int, w io.Writer) error {
	req := payroll.GenerateBatchRequest{Month: month, Year: year}
	if err := req.Validate(); err != nil {
		return err
	}
	_, err := w.Write([]byte("PK-workbook"))
	return err
}

type testServer struct {
	handler http.Handler
	leaves  *fakeLeaveService
	admin   string
	staff   string
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	tokens := jwt.NewJWTService(testSecret, "1h")

	admin, _, err := tokens.GenerateAccessToken("admin-1", user.RoleAdmin)
	require.NoError(t, err)
	staff, _, err := tokens.GenerateAccessToken("emp-1", user.RoleEmployee)
	require.NoError(t, err)

	leaves := &fakeLeaveService{}
	router := NewRouter(
		RouterOptions{Env: "test", AvatarDir: t.TempDir()},
		tokens,
		NewEmployeeHandler(nil),
		NewMasterHandler(nil),
		NewAttendanceHandler(fakeAttendanceService{}),
		NewLeaveHandler(leaves),
		NewPayrollHandler(fakePayrollService{}),
		NewDocumentHandler(nil, 10<<20),
		NewTaskHandler(nil),
		NewDashboardHandler(nil),
	)

	return &testServer{handler: router, leaves: leaves, admin: admin, staff: staff}
}

func (s *testServer) do(t *testing.T, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	s.handler.ServeHTTP(rec, req)
	return rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) response.Response {
	t.Helper()
	var resp response.Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	return resp
}

func TestRouter_RequiresToken(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/leaves", "", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, decode(t, rec).Success)

	forged, _, err := jwt.NewJWTService("another-secret", "1h").GenerateAccessToken("admin-1", user.RoleAdmin)
	require.NoError(t, err)
	rec = s.do(t, http.MethodGet, "/api/v1/leaves", forged, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestRouter_CreateLeaveUsesTokenIdentity(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/leaves", s.staff, map[string]string{
		"leave_type": "annual",
		"start_date": "2025-11-10",
		"end_date":   "2025-11-12",
		"reason":     "Family visit",
	})
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, user.Identity{UserID: "emp-1", Role: user.RoleEmployee}, s.leaves.lastCaller)

	resp := decode(t, rec)
	assert.True(t, resp.Success)
	assert.Equal(t, "Leave request created successfully", resp.Message)
}

func TestRouter_CreateLeaveValidation(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/leaves", s.staff, map[string]string{"leave_type": "vacation"})
	require.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	resp := decode(t, rec)
	require.NotNil(t, resp.Error)
	assert.Contains(t, resp.Error.Details, "leave_type")
	assert.Contains(t, resp.Error.Details, "reason")

	req := httptest.NewRequest(http.MethodPost, "/api/v1/leaves", strings.NewReader("{"))
	req.Header.Set("Authorization", "Bearer "+s.staff)
	bad := httptest.NewRecorder()
	s.handler.ServeHTTP(bad, req)
	assert.Equal(t, http.StatusBadRequest, bad.Code)
}

func TestRouter_LeaveStatusIsAdminOnly(t *testing.T) {
	s := newTestServer(t)
	path := "/api/v1/leaves/" + leaveID + "/status"

	rec := s.do(t, http.MethodPut, path, s.staff, map[string]string{"status": "approved"})
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodPut, path, s.admin, map[string]string{"status": "approved"})
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, leaveID, s.leaves.lastStatus.ID)
	assert.Equal(t, "admin-1", s.leaves.lastCaller.UserID)
	assert.Equal(t, "Leave request approved successfully", decode(t, rec).Message)

	s.leaves.statusErr = leave.ErrInvalidStateTransition
	rec = s.do(t, http.MethodPut, path, s.admin, map[string]string{"status": "rejected"})
	assert.Equal(t, http.StatusConflict, rec.Code)
}

func TestRouter_ListMeta(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/leaves?page=2&limit=15", s.staff, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	resp := decode(t, rec)
	require.NotNil(t, resp.Meta)
	assert.Equal(t, 2, resp.Meta.Page)
	assert.Equal(t, 15, resp.Meta.Limit)
	assert.Equal(t, int64(41), resp.Meta.TotalItems)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestRouter_Attendance(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodPost, "/api/v1/attendance/check-in", s.staff, nil)
	require.Equal(t, http.StatusCreated, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/check-out", s.staff, nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = s.do(t, http.MethodPost, "/api/v1/attendance/mark-absent", s.staff, map[string]string{"date": "2025-11-10"})
	assert.Equal(t, http.StatusForbidden, rec.Code)
}

func TestRouter_SalaryExport(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/api/v1/salaries/export?month=11&year=2025", s.staff, nil)
	assert.Equal(t, http.StatusForbidden, rec.Code)

	rec = s.do(t, http.MethodGet, "/api/v1/salaries/export?month=11&year=2025", s.admin, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, xlsxContentType, rec.Header().Get("Content-Type"))
	assert.Equal(t, `attachment; filename="salaries-2025-11.xlsx"`, rec.Header().Get("Content-Disposition"))
	assert.Equal(t, "PK-workbook", rec.Body.String())

	rec = s.do(t, http.MethodGet, "/api/v1/salaries/export?month=13&year=2025", s.admin, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Type"), "application/json")
}

func TestRouter_OpsEndpoints(t *testing.T) {
	s := newTestServer(t)

	rec := s.do(t, http.MethodGet, "/", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	// Generate at least one observation before scraping
	s.do(t, http.MethodGet, "/api/v1/leaves", "", nil)

	rec = s.do(t, http.MethodGet, "/metrics", "", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "officehr_http_request_duration_seconds")
}

func TestRouter_ExpiredToken(t *testing.T) {
	s := newTestServer(t)

	expired, _, err := jwt.NewJWTService(testSecret, "-2h").GenerateAccessToken("emp-1", user.RoleEmployee)
	require.NoError(t, err)

	rec := s.do(t, http.MethodGet, "/api/v1/leaves", expired, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
