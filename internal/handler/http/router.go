package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cmlabs-hris/officehr-backend-go/internal/handler/http/middleware"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/metrics"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// RouterOptions carries the settings of the outer router.
type RouterOptions struct {
	Env            string
	AllowedOrigins []string
	// AvatarDir is served publicly under /uploads/avatars/. Documents are only
	// reachable through the authenticated download route.
	AvatarDir string
}

func NewRouter(
	opts RouterOptions,
	JWTService jwt.Service,
	employeeHandler EmployeeHandler,
	masterHandler MasterHandler,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
	documentHandler DocumentHandler,
	taskHandler TaskHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "officehr"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	allowedOrigins := opts.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(chiMiddleware.RequestID)
	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))
	r.Use(metrics.Middleware)

	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	if opts.AvatarDir != "" {
		r.Handle("/uploads/avatars/*", http.StripPrefix("/uploads/avatars/", http.FileServer(http.Dir(opts.AvatarDir))))
	}

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/me", func(r chi.Router) {
				r.Get("/", employeeHandler.GetProfile)
				r.Post("/avatar", employeeHandler.UploadAvatar)
			})

			r.Route("/employees", func(r chi.Router) {
				r.With(middleware.AdminOnly).Get("/", employeeHandler.ListEmployees)
				r.With(middleware.AdminOnly).Post("/", employeeHandler.CreateEmployee)
				r.Route("/{id}", func(r chi.Router) {
					// Employees may read their own record
					r.Get("/", employeeHandler.GetEmployee)

					r.Group(func(r chi.Router) {
						r.Use(middleware.AdminOnly)
						r.Put("/", employeeHandler.UpdateEmployee)
						r.Delete("/", employeeHandler.DeleteEmployee)
					})
				})
			})

			r.Route("/departments", func(r chi.Router) {
				r.Get("/", masterHandler.ListDepartments)
				r.Get("/{id}", masterHandler.GetDepartment)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateDepartment)
					r.Put("/{id}", masterHandler.UpdateDepartment)
					r.Delete("/{id}", masterHandler.DeleteDepartment)
				})
			})

			r.Route("/designations", func(r chi.Router) {
				r.Get("/", masterHandler.ListDesignations)
				r.Get("/{id}", masterHandler.GetDesignation)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", masterHandler.CreateDesignation)
					r.Put("/{id}", masterHandler.UpdateDesignation)
					r.Delete("/{id}", masterHandler.DeleteDesignation)
				})
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.List)
				r.Get("/today", attendanceHandler.GetToday)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.With(middleware.AdminOnly).Post("/mark-absent", attendanceHandler.MarkAbsent)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Get("/", leaveHandler.ListRequests)
				r.Post("/", leaveHandler.CreateRequest)
				r.Get("/balance", leaveHandler.GetMyBalance)
				r.Get("/{id}", leaveHandler.GetRequest)
				r.With(middleware.AdminOnly).Put("/{id}/status", leaveHandler.UpdateStatus)
			})

			r.Route("/salaries", func(r chi.Router) {
				r.Get("/", payrollHandler.ListSalaries)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/generate", payrollHandler.GenerateSalary)
					r.Post("/generate-batch", payrollHandler.GenerateBatch)
					r.Get("/export", payrollHandler.ExportPeriod)
					r.Put("/{id}/pay", payrollHandler.MarkPaid)
				})

				r.Get("/{id}", payrollHandler.GetSalary)
			})

			r.Route("/documents", func(r chi.Router) {
				r.Get("/", documentHandler.List)
				r.Get("/{id}/download", documentHandler.Download)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", documentHandler.Upload)
					r.Delete("/{id}", documentHandler.Delete)
				})
			})

			r.Route("/tasks", func(r chi.Router) {
				r.Get("/", taskHandler.List)
				r.Post("/", taskHandler.Create)
				r.Get("/stats", taskHandler.Stats)
				r.Route("/{id}", func(r chi.Router) {
					r.Get("/", taskHandler.Get)
					r.Put("/", taskHandler.Update)
					r.Delete("/", taskHandler.Delete)
					r.Post("/comments", taskHandler.AddComment)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.With(middleware.AdminOnly).Get("/admin", dashboardHandler.GetAdminStats)
				r.Get("/employee", dashboardHandler.GetEmployeeStats)
			})
		})
	})
	return r
}
