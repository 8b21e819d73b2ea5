package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"

	"github.com/diewo77/backoffice/internal/httpx"
	"github.com/diewo77/backoffice/internal/models"
	"github.com/diewo77/backoffice/internal/resource"
	"github.com/diewo77/backoffice/internal/schema"
	"github.com/diewo77/backoffice/internal/view"
)

// New constructs the root http.Handler: health endpoints, the index page, and
// the API + UI routers for all eight entity kinds.
func New(conn *gorm.DB) http.Handler {
	r := chi.NewRouter()
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		if err := conn.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Get("/", index(conn))

	render := resource.RenderFunc(view.Render)
	mount[models.Company](r, models.CompanyDescriptor, conn, render)
	mount[models.Project](r, models.ProjectDescriptor, conn, render,
		// A project's detail page is its quote collection, not a generic
		// detail template.
		resource.WithDetailOverride(func(w http.ResponseWriter, req *http.Request, entity any) {
			project, ok := entity.(*models.Project)
			if !ok {
				http.Error(w, "unexpected entity", http.StatusInternalServerError)
				return
			}
			conn.WithContext(req.Context()).
				Where("project_id = ?", project.ID).
				Find(&project.Quotes)
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			data := map[string]any{"project": project, "active_page": "quotes"}
			if err := view.Render(w, req, "quotes/quotes.html", data); err != nil {
				http.Error(w, "template render error: "+err.Error(), http.StatusInternalServerError)
			}
		}))
	mount[models.ContactPerson](r, models.ContactPersonDescriptor, conn, render)
	mount[models.Quote](r, models.QuoteDescriptor, conn, render)
	mount[models.QuoteItem](r, models.QuoteItemDescriptor, conn, render)
	mount[models.Receipt](r, models.ReceiptDescriptor, conn, render)
	mount[models.Employee](r, models.EmployeeDescriptor, conn, render)
	mount[models.Timesheet](r, models.TimesheetDescriptor, conn, render)

	return r
}

func mount[T any](r chi.Router, desc schema.Descriptor, conn *gorm.DB, render resource.RenderFunc, opts ...resource.Option) {
	api, web := resource.Routes[T](desc, resource.NewGormStore[T](conn), render, opts...)
	r.Mount("/api/v1/"+desc.Name, api)
	r.Mount("/ui/"+desc.Name, web)
}

// index renders the dashboard with a few headline counts.
func index(conn *gorm.DB) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var projectCount, pendingQuotes, employeeCount int64
		conn.Model(&models.Project{}).Count(&projectCount)
		conn.Model(&models.Quote{}).Where("status = ?", "draft").Count(&pendingQuotes)
		conn.Model(&models.Employee{}).Count(&employeeCount)
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		data := map[string]any{
			"active_page":    "home",
			"project_count":  projectCount,
			"pending_quotes": pendingQuotes,
			"employee_count": employeeCount,
		}
		if err := view.Render(w, r, "index.html", data); err != nil {
			http.Error(w, "template render error: "+err.Error(), http.StatusInternalServerError)
		}
	}
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}
