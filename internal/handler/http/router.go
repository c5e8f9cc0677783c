package http

import (
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/attendance-marker/attendance-backend-go/internal/domain/auth"
	"github.com/attendance-marker/attendance-backend-go/internal/handler/http/middleware"
	"github.com/attendance-marker/attendance-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

// Handlers groups every HTTP handler mounted by NewRouter.
type Handlers struct {
	Auth       AuthHandler
	Employee   EmployeeHandler
	Attendance AttendanceHandler
	Leave      LeaveHandler
	LOP        LOPHandler
	Report     ReportHandler
}

// RouterOptions carries the deployment settings the router needs.
type RouterOptions struct {
	AllowedOrigins []string
	Env            string
	RequestTimeout time.Duration
}

func NewRouter(jwtService jwt.Service, h Handlers, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(opts.Env != "production")
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-marker"),
		slog.String("version", "v1.0.0"),
		slog.String("env", opts.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelInfo,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	if opts.RequestTimeout > 0 {
		r.Use(chiMiddleware.Timeout(opts.RequestTimeout))
	}
	r.Use(chiMiddleware.Heartbeat("/healthcheck"))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/admin", h.Auth.LoginAdmin)
			r.Post("/hr", h.Auth.LoginHR)
			r.Post("/tl", h.Auth.LoginTeamLeader)
		})

		// Kiosk endpoints
		r.Get("/employees/attendance", h.Employee.ListForAttendance)
		r.Route("/attendance", func(r chi.Router) {
			r.Post("/verify-pin", h.Attendance.VerifyPIN)
			r.Post("/otp", h.Attendance.RequestOTP)
			r.Post("/otp/verify", h.Attendance.VerifyOTP)
			r.Post("/mark", h.Attendance.Mark)
		})
		r.Post("/leaves", h.Leave.Apply)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleAdmin))

				r.Route("/employees", func(r chi.Router) {
					r.Post("/", h.Employee.Register)
					r.Get("/", h.Employee.List)
					r.Put("/{id}", h.Employee.Update)
					r.Delete("/{id}", h.Employee.Delete)
					r.Put("/{id}/tl-password", h.Employee.SetTeamLeaderPassword)
				})

				r.Route("/lop", func(r chi.Router) {
					r.Post("/", h.LOP.Mark)
					r.Get("/{employeeCode}", h.LOP.ListForEmployee)
				})

				r.Route("/reports", func(r chi.Router) {
					r.Post("/monthly", h.Report.Monthly)
					r.Post("/daily", h.Report.Daily)
					r.Get("/lop-statement", h.Report.LOPStatement)
				})
			})

			r.Route("/tl/leaves", func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleTeamLeader))
				r.Get("/", h.Leave.ListForTeamLeader)
				r.Post("/action", h.Leave.TeamLeaderAction)
				r.Get("/{id}/summary", h.Leave.TeamLeaderSummary)
			})

			r.Route("/hr/leaves", func(r chi.Router) {
				r.Use(middleware.RequireRole(auth.RoleHR))
				r.Get("/", h.Leave.ListPendingForHR)
				r.Post("/action", h.Leave.HRAction)
				r.Get("/{id}/summary", h.Leave.HRSummary)
			})
		})
	})

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, http.StatusText(http.StatusNotFound), http.StatusNotFound)
	})
	return r
}
