package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/hrcore/attendance-backend-go/internal/config"
	"github.com/hrcore/attendance-backend-go/internal/handler/http/middleware"
	"github.com/hrcore/attendance-backend-go/internal/pkg/jwt"
)

func NewRouter(
	cfg *config.Config,
	jwtService jwt.Service,
	attendanceHandler AttendanceHandler,
	leaveHandler LeaveHandler,
) *chi.Mux {
	r := chi.NewRouter()

	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "attendance-backend"),
		slog.String("env", cfg.App.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
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
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/attendances", func(r chi.Router) {
				r.Post("/records", attendanceHandler.UpsertDailyRecord)
				r.Route("/{userID}/{monthYear}", func(r chi.Router) {
					r.Get("/", attendanceHandler.GetMonthly)
					r.Get("/verify", attendanceHandler.VerifySummary)
				})
			})

			r.Route("/leave", func(r chi.Router) {
				r.Route("/balances/{userID}", func(r chi.Router) {
					r.Get("/", leaveHandler.GetBalance)
					r.Post("/accrue", leaveHandler.Accrue)
					r.Post("/preview-usage", leaveHandler.PreviewUsage)
					r.Post("/reset", leaveHandler.ResetBalance)
				})

				r.Route("/requests", func(r chi.Router) {
					r.Post("/", leaveHandler.SubmitRequest)
					r.Get("/pending", leaveHandler.ListPendingRequests)
					r.Post("/bulk", leaveHandler.BulkDecide)
					r.Route("/{requestID}", func(r chi.Router) {
						r.Post("/approve", leaveHandler.ApproveRequest)
						r.Post("/reject", leaveHandler.RejectRequest)
					})
				})
			})
		})
	})

	return r
}
