package http

import (
	"log/slog"
	"os"

	"github.com/forher-hr/hr-backend-go/internal/handler/http/middleware"
	"github.com/forher-hr/hr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	shiftHandler ShiftHandler,
	attendanceHandler AttendanceHandler,
	holidayHandler HolidayHandler,
	leaveHandler LeaveHandler,
	payrollHandler PayrollHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "hr-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		r.Route("/auth", func(r chi.Router) {
			r.Post("/kiosk/{companyId}/login", authHandler.KioskLogin)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Put("/auth/pin", authHandler.SetPIN)

			r.Route("/shifts", func(r chi.Router) {
				r.Post("/", shiftHandler.CreateTemplate)
				r.Get("/", shiftHandler.ListTemplates)
				r.Get("/{id}", shiftHandler.GetTemplate)
				r.Delete("/{id}", shiftHandler.DeleteTemplate)

				r.Route("/assignments", func(r chi.Router) {
					r.Post("/", shiftHandler.Assign)
					r.Get("/", shiftHandler.ListAssignments)
					r.Delete("/{id}", shiftHandler.DeleteAssignment)
				})
			})

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
				r.Get("/", attendanceHandler.List)
				r.Get("/{id}", attendanceHandler.Get)
				r.Put("/{id}/times", attendanceHandler.UpdateTimes)
				r.Post("/{id}/submit", attendanceHandler.Submit)
				r.Post("/{id}/confirm", attendanceHandler.Confirm)
				r.Post("/{id}/validate", attendanceHandler.Validate)
				r.Post("/{id}/reject", attendanceHandler.Reject)
				r.Post("/{id}/reset", attendanceHandler.ResetToDraft)
				r.Delete("/{id}", attendanceHandler.Delete)
			})

			r.Route("/holidays", func(r chi.Router) {
				r.Post("/", holidayHandler.Create)
				r.Get("/", holidayHandler.List)
				r.Delete("/{id}", holidayHandler.Delete)
			})

			r.Route("/leaves", func(r chi.Router) {
				r.Post("/", leaveHandler.Create)
				r.Get("/{id}", leaveHandler.Get)
				r.Post("/{id}/approve", leaveHandler.Approve)
				r.Post("/{id}/reject", leaveHandler.Reject)
			})

			r.Route("/payroll", func(r chi.Router) {
				r.Route("/structures", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateStructure)
					r.Get("/", payrollHandler.ListStructures)
					r.Get("/{id}", payrollHandler.GetStructure)
					r.Post("/{id}/rules", payrollHandler.CreateRule)
					r.Delete("/{id}/rules/{ruleId}", payrollHandler.DeleteRule)
				})

				r.Route("/payslips", func(r chi.Router) {
					r.Post("/", payrollHandler.CreatePayslip)
					r.Get("/", payrollHandler.ListPayslips)
					r.Get("/{id}", payrollHandler.GetPayslip)
					r.Put("/{id}/inputs", payrollHandler.UpdatePayslipInputs)
					r.Post("/{id}/compute", payrollHandler.ComputePayslip)
					r.Post("/{id}/confirm", payrollHandler.ConfirmPayslip)
					r.Post("/{id}/done", payrollHandler.DonePayslip)
					r.Post("/{id}/cancel", payrollHandler.CancelPayslip)
					r.Post("/{id}/reset", payrollHandler.ResetPayslip)
				})

				r.Route("/runs", func(r chi.Router) {
					r.Post("/", payrollHandler.CreateRun)
					r.Get("/", payrollHandler.ListRuns)
					r.Get("/{id}", payrollHandler.GetRun)
					r.Post("/{id}/generate", payrollHandler.GeneratePayslips)
					r.Post("/{id}/compute", payrollHandler.ComputeRun)
					r.Post("/{id}/validate", payrollHandler.ValidateRun)
					r.Post("/{id}/done", payrollHandler.DoneRun)
					r.Post("/{id}/cancel", payrollHandler.CancelRun)
					r.Post("/{id}/reset", payrollHandler.ResetRun)
					r.Post("/{id}/sales", payrollHandler.ImportSales)
				})
			})
		})
	})
	return r
}
