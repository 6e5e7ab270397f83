// Package create реализует HTTP-обработчик добавления книги в каталог.
// Маршрут доступен только администраторам.
package create

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator"

	"github.com/magabrotheeeer/lumi-library/internal/http/response"
	"github.com/magabrotheeeer/lumi-library/internal/lib/sl"
	"github.com/magabrotheeeer/lumi-library/internal/models"
)

// Request — входные данные для добавления книги
type Request struct {
	Title         string `json:"title" validate:"required"`
	Author        string `json:"author" validate:"required"`
	Description   string `json:"description"`
	Category      string `json:"category" validate:"required"`
	CoverImage    string `json:"cover_image"`
	SampleContent string `json:"sample_content"`
	FullContent   string `json:"full_content"`
}

// Service описывает интерфейс бизнес-логики добавления книги.
type Service interface {
	Create(ctx context.Context, book models.Book) (int, error)
}

// Handler управляет HTTP-запросами на добавление книги.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Добавить книгу
// @Description Добавляет книгу в каталог. Только для администраторов.
// @Tags Books
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body Request true "Данные книги"
// @Success 201 {object} response.Response "Книга добавлена"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 403 {object} response.ErrorResponse "Требуются права администратора"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /books [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.book.create"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	book := models.Book{
		Title:         req.Title,
		Author:        req.Author,
		Description:   req.Description,
		Category:      req.Category,
		CoverImage:    req.CoverImage,
		SampleContent: req.SampleContent,
		FullContent:   req.FullContent,
	}
	id, err := h.service.Create(r.Context(), book)
	if err != nil {
		log.Error("failed to create book", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create book"))
		return
	}

	log.Info("book created", slog.Int("id", id))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, response.OKWithData(map[string]any{
		"id": id,
	}))
}
