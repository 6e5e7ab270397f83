// Package lumilibrary предоставляет маршруты для основного приложения.
package lumilibrary

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/magabrotheeeer/lumi-library/internal/http/handlers/auth/login"
	"github.com/magabrotheeeer/lumi-library/internal/http/handlers/auth/profile"
	"github.com/magabrotheeeer/lumi-library/internal/http/handlers/auth/register"
	bookcreate "github.com/magabrotheeeer/lumi-library/internal/http/handlers/book/create"
	booklist "github.com/magabrotheeeer/lumi-library/internal/http/handlers/book/list"
	bookread "github.com/magabrotheeeer/lumi-library/internal/http/handlers/book/read"
	bookremove "github.com/magabrotheeeer/lumi-library/internal/http/handlers/book/remove"
	bookreview "github.com/magabrotheeeer/lumi-library/internal/http/handlers/book/review"
	bookupdate "github.com/magabrotheeeer/lumi-library/internal/http/handlers/book/update"
	"github.com/magabrotheeeer/lumi-library/internal/http/handlers/contact"
	"github.com/magabrotheeeer/lumi-library/internal/http/handlers/health"
	subadminlist "github.com/magabrotheeeer/lumi-library/internal/http/handlers/subscription/adminlist"
	subadminremove "github.com/magabrotheeeer/lumi-library/internal/http/handlers/subscription/adminremove"
	subcreate "github.com/magabrotheeeer/lumi-library/internal/http/handlers/subscription/create"
	subread "github.com/magabrotheeeer/lumi-library/internal/http/handlers/subscription/read"
	userlist "github.com/magabrotheeeer/lumi-library/internal/http/handlers/user/list"
	userremove "github.com/magabrotheeeer/lumi-library/internal/http/handlers/user/remove"
	userrole "github.com/magabrotheeeer/lumi-library/internal/http/handlers/user/role"
	wishlistadd "github.com/magabrotheeeer/lumi-library/internal/http/handlers/wishlist/add"
	wishlistlist "github.com/magabrotheeeer/lumi-library/internal/http/handlers/wishlist/list"
	wishlistremove "github.com/magabrotheeeer/lumi-library/internal/http/handlers/wishlist/remove"
	"github.com/magabrotheeeer/lumi-library/internal/http/middlewarectx"
	authservice "github.com/magabrotheeeer/lumi-library/internal/services/auth"
	bookservice "github.com/magabrotheeeer/lumi-library/internal/services/book"
	contactservice "github.com/magabrotheeeer/lumi-library/internal/services/contact"
	subservice "github.com/magabrotheeeer/lumi-library/internal/services/subscription"
	userservice "github.com/magabrotheeeer/lumi-library/internal/services/user"
	"github.com/magabrotheeeer/lumi-library/internal/storage/repository"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(
	r chi.Router,
	logger *slog.Logger,
	db *repository.Storage,
	authService *authservice.AuthService,
	bookService *bookservice.BookService,
	userService *userservice.UserService,
	subscriptionService *subservice.SubscriptionService,
	contactPublisher *contactservice.ContactPublisher,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)
		r.Get("/books", booklist.New(logger, bookService).ServeHTTP)
		r.Get("/books/{id}", bookread.New(logger, bookService).ServeHTTP)
		r.Post("/contact", contact.New(logger, contactPublisher).ServeHTTP)
		r.Get("/health", health.New(logger, db).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/auth/profile", profile.New(logger, userService).ServeHTTP)
			r.Post("/books/{id}/reviews", bookreview.New(logger, bookService).ServeHTTP)
			r.Post("/users/wishlist", wishlistadd.New(logger, userService).ServeHTTP)
			r.Get("/users/wishlist", wishlistlist.New(logger, userService).ServeHTTP)
			r.Delete("/users/wishlist/{bookId}", wishlistremove.New(logger, userService).ServeHTTP)
			r.Post("/subscriptions", subcreate.New(logger, subscriptionService).ServeHTTP)
			r.Get("/subscriptions", subread.New(logger, subscriptionService).ServeHTTP)

			// Группа административных маршрутов, роль перечитывается из базы
			r.Group(func(r chi.Router) {
				r.Use(middlewarectx.RequireAdmin(db, logger))

				r.Post("/books", bookcreate.New(logger, bookService).ServeHTTP)
				r.Put("/books/{id}", bookupdate.New(logger, bookService).ServeHTTP)
				r.Delete("/books/{id}", bookremove.New(logger, bookService).ServeHTTP)
				r.Get("/admin/users", userlist.New(logger, userService).ServeHTTP)
				r.Put("/users/{uid}/role", userrole.New(logger, userService).ServeHTTP)
				r.Delete("/users/{uid}", userremove.New(logger, userService).ServeHTTP)
				r.Get("/admin/subscriptions", subadminlist.New(logger, subscriptionService).ServeHTTP)
				r.Delete("/admin/subscriptions/{id}", subadminremove.New(logger, subscriptionService).ServeHTTP)
			})
		})
	})

	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
