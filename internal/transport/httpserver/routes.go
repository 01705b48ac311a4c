package httpserver

import (
	"net/http"
	"time"

	"amparo-go/internal/config"
	authdomain "amparo-go/internal/domain/auth"
	"amparo-go/internal/transport/httpserver/handler"
	authmw "amparo-go/internal/transport/httpserver/middleware"
	"amparo-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, authSvc *authdomain.Service, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.CORSAllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)
		r.Post("/auth/login", handlers.Login)

		auth := authmw.NewAuth(authSvc, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)
			r.Use(authmw.StaffOrReadOnly)

			r.Get("/auth/me", handlers.AuthMe)
			r.Post("/auth/users", handlers.CreateUser)

			r.Get("/families", handlers.ListFamilies)
			r.Post("/families", handlers.CreateFamily)
			r.Get("/families/{id}", handlers.GetFamily)
			r.Put("/families/{id}", handlers.UpdateFamily)
			r.Delete("/families/{id}", handlers.DeleteFamily)
			r.Get("/families/{id}/guardians", handlers.ListGuardians)
			r.Post("/families/{id}/guardians", handlers.CreateGuardian)
			r.Put("/guardians/{id}", handlers.UpdateGuardian)
			r.Delete("/guardians/{id}", handlers.DeleteGuardian)

			r.Get("/members", handlers.ListMembers)
			r.Post("/members", handlers.CreateMember)
			r.Get("/members/{id}", handlers.GetMember)
			r.Put("/members/{id}", handlers.UpdateMember)
			r.Delete("/members/{id}", handlers.DeleteMember)

			r.Get("/class-groups", handlers.ListClassGroups)
			r.Post("/class-groups", handlers.CreateClassGroup)
			r.Get("/class-groups/suggest", handlers.SuggestClassGroup)
			r.Get("/class-groups/{id}", handlers.GetClassGroup)
			r.Put("/class-groups/{id}", handlers.UpdateClassGroup)
			r.Delete("/class-groups/{id}", handlers.DeleteClassGroup)

			r.Get("/attendance", handlers.ListAttendance)
			r.Post("/attendance", handlers.CreateAttendance)
			r.Post("/attendance/batch", handlers.CreateAttendanceBatch)
			r.Get("/attendance/frequency", handlers.ReportFrequency)
			r.Get("/attendance/by-class-group", handlers.AttendanceByClassGroup)
			r.Get("/attendance/history", handlers.AttendanceHistory)
			r.Get("/attendance/{id}", handlers.GetAttendance)
			r.Put("/attendance/{id}", handlers.UpdateAttendance)
			r.Put("/attendance/{id}/status", handlers.SetAttendanceStatus)
			r.Delete("/attendance/{id}", handlers.DeleteAttendance)

			r.Get("/basket-deliveries", handlers.ListBaskets)
			r.Post("/basket-deliveries", handlers.CreateBasket)
			r.Post("/basket-deliveries/batch", handlers.CreateBasketBatch)
			r.Get("/basket-deliveries/by-family", handlers.BasketsByFamily)
			r.Get("/basket-deliveries/{id}", handlers.GetBasket)
			r.Put("/basket-deliveries/{id}", handlers.UpdateBasket)
			r.Delete("/basket-deliveries/{id}", handlers.DeleteBasket)

			r.Get("/reports", handlers.ListReports)
			r.Post("/reports/generate", handlers.GenerateReport)
			r.Get("/reports/summary", handlers.ReportSummary)
			r.Get("/reports/frequency", handlers.ReportFrequency)
			r.Get("/reports/baskets", handlers.ReportBaskets)
			r.Get("/reports/sizes", handlers.ReportSizes)
			r.Get("/reports/programs", handlers.ReportPrograms)
			r.Get("/reports/{id}", handlers.GetReport)
			r.Delete("/reports/{id}", handlers.DeleteReport)
		})
	})

	return r
}
