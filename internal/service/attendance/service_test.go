package attendance

import (
	"context"
	"sync"
	"testing"
	"time"
	_ "time/tzdata"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/validator"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeAttendanceRepo mimics the unique (employee_id, date) index and the
// conditional check-out update of the PostgreSQL repository.
type fakeAttendanceRepo struct {
	mu      sync.Mutex
	records map[string]*attendance.Attendance
	filter  attendance.AttendanceFilter
	absent  time.Time
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{records: map[string]*attendance.Attendance{}}
}

func key(employeeID string, date time.Time) string {
	return employeeID + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceRepo) GetAttendance(ctx context.Context, employeeID string, date time.Time) (*attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if rec, ok := f.records[key(employeeID, date)]; ok {
		cp := *rec
		return &cp, nil
	}
	return nil, nil
}

func (f *fakeAttendanceRepo) InsertAttendance(ctx context.Context, a attendance.Attendance) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	k := key(a.EmployeeID, a.Date)
	if _, ok := f.records[k]; ok {
		return attendance.Attendance{}, attendance.ErrDuplicateCheckIn
	}
	a.ID = uuid.NewString()
	f.records[k] = &a
	return a, nil
}

func (f *fakeAttendanceRepo) UpdateAttendanceCheckout(ctx context.Context, id string, checkOut time.Time, hours decimal.Decimal) (attendance.Attendance, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, rec := range f.records {
		if rec.ID != id {
			continue
		}
		if rec.CheckOut != nil {
			return attendance.Attendance{}, attendance.ErrAlreadyCheckedOut
		}
		rec.CheckOut = &checkOut
		rec.WorkingHours = &hours
		return *rec, nil
	}
	return attendance.Attendance{}, attendance.ErrAttendanceNotFound
}

func (f *fakeAttendanceRepo) ListAttendance(ctx context.Context, filter attendance.AttendanceFilter) ([]attendance.Attendance, int64, error) {
	f.filter = filter
	return []attendance.Attendance{}, 41, nil
}

func (f *fakeAttendanceRepo) ListByEmployeeAndPeriod(ctx context.Context, employeeID string, from, to time.Time) ([]attendance.Attendance, error) {
	return nil, nil
}

func (f *fakeAttendanceRepo) MarkAbsent(ctx context.Context, date time.Time) (int64, error) {
	f.absent = date
	return 3, nil
}

type fakeEmployeeRepo struct {
	employee.EmployeeRepository
	employees map[string]employee.Employee
}

func (f *fakeEmployeeRepo) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	emp, ok := f.employees[id]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return emp, nil
}

var (
	karachi, _ = time.LoadLocation("Asia/Karachi")
	emp        = user.Identity{UserID: "emp-1", Role: user.RoleEmployee}
	admin      = user.Identity{UserID: "admin-1", Role: user.RoleAdmin}
)

func newTestService(t *testing.T, now time.Time) (*AttendanceServiceImpl, *fakeAttendanceRepo) {
	t.Helper()
	repo := newFakeAttendanceRepo()
	employees := &fakeEmployeeRepo{employees: map[string]employee.Employee{
		"emp-1":    {ID: "emp-1", IsActive: true},
		"inactive": {ID: "inactive", IsActive: false},
	}}
	policy := attendance.CutoffPolicy{Hour: 9, Location: karachi}
	svc := NewAttendanceService(repo, employees, policy).(*AttendanceServiceImpl)
	svc.now = func() time.Time { return now }
	return svc, repo
}

func TestCheckIn_ClassifiesAgainstLocalCutoff(t *testing.T) {
	ctx := context.Background()

	// 09:00:00 Karachi is 04:00:00 UTC
	onTime, _ := newTestService(t, time.Date(2025, 3, 3, 4, 0, 0, 0, time.UTC))
	rec, err := onTime.CheckIn(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusPresent, rec.Status)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), rec.Date)

	late, _ := newTestService(t, time.Date(2025, 3, 3, 4, 0, 1, 0, time.UTC))
	rec, err = late.CheckIn(ctx, emp)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, rec.Status)
}

func TestCheckIn_DateFollowsConfiguredZone(t *testing.T) {
	// 20:00 UTC on the 2nd is already the 3rd in Karachi
	svc, _ := newTestService(t, time.Date(2025, 3, 2, 20, 0, 0, 0, time.UTC))
	rec, err := svc.CheckIn(context.Background(), emp)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), rec.Date)
}

func TestCheckIn_Twice(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2025, 3, 3, 3, 0, 0, 0, time.UTC))

	_, err := svc.CheckIn(ctx, emp)
	require.NoError(t, err)

	_, err = svc.CheckIn(ctx, emp)
	assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)
}

func TestCheckIn_ConcurrentCallsCreateOneRecord(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, time.Date(2025, 3, 3, 3, 0, 0, 0, time.UTC))

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = svc.CheckIn(ctx, emp)
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
		} else {
			assert.ErrorIs(t, err, attendance.ErrDuplicateCheckIn)
		}
	}
	assert.Equal(t, 1, succeeded)
	assert.Len(t, repo.records, 1)
}

func TestCheckIn_Rejections(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, time.Date(2025, 3, 3, 3, 0, 0, 0, time.UTC))

	_, err := svc.CheckIn(ctx, user.Identity{UserID: "inactive", Role: user.RoleEmployee})
	assert.ErrorIs(t, err, attendance.ErrEmployeeInactive)

	_, err = svc.CheckIn(ctx, user.Identity{UserID: "ghost", Role: user.RoleEmployee})
	assert.ErrorIs(t, err, employee.ErrEmployeeNotFound)

	_, err = svc.CheckIn(ctx, user.Identity{})
	assert.ErrorIs(t, err, user.ErrInvalidIdentity)
}

func TestCheckOut(t *testing.T) {
	ctx := context.Background()
	in := time.Date(2025, 3, 3, 3, 0, 0, 0, time.UTC)

	svc, repo := newTestService(t, in)

	_, err := svc.CheckOut(ctx, emp)
	assert.ErrorIs(t, err, attendance.ErrMissingCheckIn)

	_, err = svc.CheckIn(ctx, emp)
	require.NoError(t, err)

	svc.now = func() time.Time { return in.Add(8*time.Hour + 20*time.Minute) }
	rec, err := svc.CheckOut(ctx, emp)
	require.NoError(t, err)
	require.NotNil(t, rec.WorkingHours)
	assert.True(t, decimal.RequireFromString("8.33").Equal(*rec.WorkingHours))

	_, err = svc.CheckOut(ctx, emp)
	assert.ErrorIs(t, err, attendance.ErrAlreadyCheckedOut)

	today, err := svc.GetToday(ctx, emp)
	require.NoError(t, err)
	require.NotNil(t, today)
	assert.True(t, today.CheckedOut())
	assert.Len(t, repo.records, 1)
}

func TestCheckOut_AbsentRecordHasNoCheckIn(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 3, 3, 10, 0, 0, 0, time.UTC)
	svc, repo := newTestService(t, now)

	date := time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC)
	repo.records[key("emp-1", date)] = &attendance.Attendance{ID: "x", EmployeeID: "emp-1", Date: date, Status: attendance.StatusAbsent}

	_, err := svc.CheckOut(ctx, emp)
	assert.ErrorIs(t, err, attendance.ErrMissingCheckIn)
}

func TestList_ScopesEmployeesToOwnRecords(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, time.Now())

	other := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	resp, err := svc.List(ctx, emp, attendance.AttendanceFilter{EmployeeID: &other})
	require.NoError(t, err)
	require.NotNil(t, repo.filter.EmployeeID)
	assert.Equal(t, "emp-1", *repo.filter.EmployeeID)
	assert.Equal(t, 1, resp.Page)
	assert.Equal(t, 20, resp.Limit)
	assert.Equal(t, 3, resp.TotalPages)

	_, err = svc.List(ctx, admin, attendance.AttendanceFilter{EmployeeID: &other})
	require.NoError(t, err)
	assert.Equal(t, other, *repo.filter.EmployeeID)

	bad := "2025-13-01"
	_, err = svc.List(ctx, admin, attendance.AttendanceFilter{StartDate: &bad})
	var verrs validator.ValidationErrors
	assert.ErrorAs(t, err, &verrs)
}

func TestMarkAbsent(t *testing.T) {
	ctx := context.Background()
	svc, repo := newTestService(t, time.Now())

	_, err := svc.MarkAbsent(ctx, emp, attendance.MarkAbsentRequest{Date: "2025-03-03"})
	assert.ErrorIs(t, err, user.ErrAdminPrivilegeRequired)

	resp, err := svc.MarkAbsent(ctx, admin, attendance.MarkAbsentRequest{Date: "2025-03-03"})
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.Marked)
	assert.Equal(t, time.Date(2025, 3, 3, 0, 0, 0, 0, time.UTC), repo.absent)
}
