package main

import (
	"fmt"
	"time"

	"github.com/cmlabs-hris/officehr-backend-go/internal/config"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/dashboard"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/document"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/payroll"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/task"
	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/database"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/storage"
	"github.com/cmlabs-hris/officehr-backend-go/internal/repository/postgresql"
	attendanceService "github.com/cmlabs-hris/officehr-backend-go/internal/service/attendance"
	dashboardService "github.com/cmlabs-hris/officehr-backend-go/internal/service/dashboard"
	documentService "github.com/cmlabs-hris/officehr-backend-go/internal/service/document"
	employeeService "github.com/cmlabs-hris/officehr-backend-go/internal/service/employee"
	"github.com/cmlabs-hris/officehr-backend-go/internal/service/file"
	leaveService "github.com/cmlabs-hris/officehr-backend-go/internal/service/leave"
	"github.com/cmlabs-hris/officehr-backend-go/internal/service/master"
	payrollService "github.com/cmlabs-hris/officehr-backend-go/internal/service/payroll"
	taskService "github.com/cmlabs-hris/officehr-backend-go/internal/service/task"
)

// systemIdentity is the caller of operations started from the command line.
var systemIdentity = user.Identity{UserID: "system", Role: user.RoleAdmin}

// services holds the wired application services.
type services struct {
	employee   employee.EmployeeService
	master     master.MasterService
	attendance attendance.AttendanceService
	leave      leave.LeaveService
	payroll    payroll.PayrollService
	document   document.DocumentService
	task       task.TaskService
	dashboard  dashboard.DashboardService
}

// rules turns the rule configuration into the domain parameters.
func rules(cfg config.RulesConfig) (attendance.CutoffPolicy, payroll.Rates, leave.OverdrawPolicy, leave.LeaveBalance, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return attendance.CutoffPolicy{}, payroll.Rates{}, "", leave.LeaveBalance{}, fmt.Errorf("invalid timezone: %w", err)
	}
	hour, minute, second, err := cfg.Cutoff()
	if err != nil {
		return attendance.CutoffPolicy{}, payroll.Rates{}, "", leave.LeaveBalance{}, err
	}
	policy := attendance.CutoffPolicy{Hour: hour, Minute: minute, Second: second, Location: loc}

	p := cfg.Payroll
	rates, err := payroll.ParseRates(p.TransportRate, p.MedicalRate, p.BonusFlat, p.TaxRate, p.InsuranceRate, p.OtherFlat)
	if err != nil {
		return attendance.CutoffPolicy{}, payroll.Rates{}, "", leave.LeaveBalance{}, err
	}

	overdraw, err := leave.ParseOverdrawPolicy(cfg.OverdrawPolicy)
	if err != nil {
		return attendance.CutoffPolicy{}, payroll.Rates{}, "", leave.LeaveBalance{}, err
	}

	defaults := leave.LeaveBalance{
		Annual: cfg.LeaveDefaults.Annual,
		Sick:   cfg.LeaveDefaults.Sick,
		Casual: cfg.LeaveDefaults.Casual,
	}
	return policy, rates, overdraw, defaults, nil
}

func newServices(cfg *config.Config, db *database.DB, fileStorage storage.FileStorage) (*services, error) {
	policy, rates, overdraw, defaultBalance, err := rules(cfg.Rules)
	if err != nil {
		return nil, err
	}

	transactor := postgresql.NewTransactor(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	departmentRepo := postgresql.NewDepartmentRepository(db)
	designationRepo := postgresql.NewDesignationRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)
	leaveRequestRepo := postgresql.NewLeaveRequestRepository(db)
	leaveBalanceRepo := postgresql.NewLeaveBalanceRepository(db)
	salaryRepo := postgresql.NewPayrollRepository(db)
	documentRepo := postgresql.NewDocumentRepository(db)
	taskRepo := postgresql.NewTaskRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	fileService := file.NewFileService(fileStorage)

	return &services{
		employee:   employeeService.NewEmployeeService(employeeRepo, fileService, defaultBalance),
		master:     master.NewMasterService(departmentRepo, designationRepo),
		attendance: attendanceService.NewAttendanceService(attendanceRepo, employeeRepo, policy),
		leave:      leaveService.NewLeaveService(transactor, leaveRequestRepo, leaveBalanceRepo, employeeRepo, overdraw),
		payroll:    payrollService.NewPayrollService(salaryRepo, attendanceRepo, employeeRepo, rates),
		document:   documentService.NewDocumentService(documentRepo, fileService),
		task:       taskService.NewTaskService(taskRepo, employeeRepo),
		dashboard: dashboardService.NewDashboardService(
			dashboardRepo,
			employeeRepo,
			attendanceRepo,
			leaveRequestRepo,
			leaveBalanceRepo,
			salaryRepo,
			policy,
		),
	}, nil
}

// connect opens the database described by cfg.
func connect(cfg *config.Config) (*database.DB, error) {
	db, err := database.NewPostgreSQLDB(cfg.DatabaseURL())
	if err != nil {
		return nil, fmt.Errorf("error connecting to database: %w", err)
	}
	return db, nil
}
