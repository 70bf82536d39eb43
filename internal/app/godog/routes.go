// Package godog предоставляет маршруты для основного приложения.
package godog

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	httpSwagger "github.com/swaggo/http-swagger"

	adminrevenue "github.com/godogapp/godog/internal/http/handlers/admin/revenue"
	advicedaily "github.com/godogapp/godog/internal/http/handlers/advice/daily"
	"github.com/godogapp/godog/internal/http/handlers/auth/login"
	"github.com/godogapp/godog/internal/http/handlers/auth/register"
	bookingcreate "github.com/godogapp/godog/internal/http/handlers/booking/create"
	bookinglist "github.com/godogapp/godog/internal/http/handlers/booking/list"
	"github.com/godogapp/godog/internal/http/handlers/booking/updatestatus"
	dealcreate "github.com/godogapp/godog/internal/http/handlers/deal/create"
	deallist "github.com/godogapp/godog/internal/http/handlers/deal/list"
	dealremove "github.com/godogapp/godog/internal/http/handlers/deal/remove"
	dogadd "github.com/godogapp/godog/internal/http/handlers/dog/add"
	"github.com/godogapp/godog/internal/http/handlers/dog/addalbum"
	"github.com/godogapp/godog/internal/http/handlers/dog/addmedia"
	doglist "github.com/godogapp/godog/internal/http/handlers/dog/list"
	dogremove "github.com/godogapp/godog/internal/http/handlers/dog/remove"
	"github.com/godogapp/godog/internal/http/handlers/dog/removemedia"
	dogupdate "github.com/godogapp/godog/internal/http/handlers/dog/update"
	"github.com/godogapp/godog/internal/http/handlers/profile/addon"
	profileget "github.com/godogapp/godog/internal/http/handlers/profile/get"
	"github.com/godogapp/godog/internal/http/handlers/profile/promotion"
	"github.com/godogapp/godog/internal/http/handlers/profile/quote"
	"github.com/godogapp/godog/internal/http/handlers/profile/subscribe"
	"github.com/godogapp/godog/internal/http/handlers/profile/trialstatus"
	profileupdate "github.com/godogapp/godog/internal/http/handlers/profile/update"
	"github.com/godogapp/godog/internal/http/middlewarectx"
	adviceservice "github.com/godogapp/godog/internal/services/advice"
	authservice "github.com/godogapp/godog/internal/services/auth"
	bookingservice "github.com/godogapp/godog/internal/services/booking"
	dealservice "github.com/godogapp/godog/internal/services/deal"
	dogservice "github.com/godogapp/godog/internal/services/dog"
	profileservice "github.com/godogapp/godog/internal/services/profile"
	revenueservice "github.com/godogapp/godog/internal/services/revenue"
)

// Services собирает доменные сервисы, нужные маршрутам.
type Services struct {
	Auth    *authservice.Service
	Profile *profileservice.Service
	Dog     *dogservice.Service
	Booking *bookingservice.Service
	Deal    *dealservice.Service
	Revenue *revenueservice.Service
	Advice  *adviceservice.Client
}

// RegisterRoutes регистрирует все маршруты приложения.
//
// Платежные маршруты (подписка, продвижение, дополнение) и сводка пробного
// периода живут внутри JWT-группы, но до проверки блокировки: заблокированный
// пользователь должен иметь возможность оплатить и снять блокировку.
func RegisterRoutes(r chi.Router, logger *slog.Logger, s *Services) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api/v1", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, s.Auth).ServeHTTP)
		r.Post("/auth/login", login.New(logger, s.Auth).ServeHTTP)
		r.Get("/advice/daily", advicedaily.New(logger, s.Advice).ServeHTTP)

		// Группа с JWT аутентификацией, без проверки блокировки
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(s.Auth, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/profile", profileget.New(logger, s.Profile).ServeHTTP)
			r.Get("/profile/trial-status", trialstatus.New(logger, s.Profile).ServeHTTP)
			r.Get("/profile/quote", quote.New(logger, s.Profile).ServeHTTP)
			r.Post("/profile/subscribe", subscribe.New(logger, s.Profile).ServeHTTP)
			r.Post("/profile/promotion", promotion.New(logger, s.Profile).ServeHTTP)
			r.Post("/profile/addon", addon.New(logger, s.Profile).ServeHTTP)

			// Группа с проверкой триальной блокировки
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.BlockCheckMiddleware(logger, s.Profile))

				r.Put("/profile", profileupdate.New(logger, s.Profile).ServeHTTP)

				r.Get("/dogs", doglist.New(logger, s.Dog).ServeHTTP)
				r.Post("/dogs", dogadd.New(logger, s.Dog).ServeHTTP)
				r.Put("/dogs/{dogID}", dogupdate.New(logger, s.Dog).ServeHTTP)
				r.Delete("/dogs/{dogID}", dogremove.New(logger, s.Dog).ServeHTTP)
				r.Post("/dogs/{dogID}/media", addmedia.New(logger, s.Dog).ServeHTTP)
				r.Delete("/dogs/{dogID}/media/{mediaID}", removemedia.New(logger, s.Dog).ServeHTTP)
				r.Post("/dogs/{dogID}/albums", addalbum.New(logger, s.Dog).ServeHTTP)

				r.Post("/bookings", bookingcreate.New(logger, s.Booking).ServeHTTP)
				r.Get("/bookings", bookinglist.New(logger, s.Booking).ServeHTTP)
				r.Patch("/bookings/{id}/status", updatestatus.New(logger, s.Booking).ServeHTTP)

				r.Post("/deals", dealcreate.New(logger, s.Deal).ServeHTTP)
				r.Get("/deals", deallist.New(logger, s.Deal).ServeHTTP)
				r.Delete("/deals/{id}", dealremove.New(logger, s.Deal).ServeHTTP)

				r.Get("/admin/revenue", adminrevenue.New(logger, s.Revenue).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
