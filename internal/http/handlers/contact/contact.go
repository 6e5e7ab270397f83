// Package contact реализует HTTP-обработчик формы обратной связи.
//
// Сообщения не сохраняются в базе: они публикуются в почтовую очередь
// и пересылаются почтовым воркером на служебный ящик поддержки.
package contact

import (
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

// Request — входные данные формы обратной связи
type Request struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Subject string `json:"subject" validate:"required"`
	Message string `json:"message" validate:"required"`
}

// Publisher описывает публикацию сообщения в почтовую очередь.
type Publisher interface {
	Publish(message models.ContactMessage) error
}

// Handler управляет HTTP-запросами формы обратной связи.
type Handler struct {
	log       *slog.Logger
	publisher Publisher
	validate  *validator.Validate
}

// New создает новый Handler с переданными логгером и издателем.
func New(log *slog.Logger, publisher Publisher) *Handler {
	return &Handler{
		log:       log,
		publisher: publisher,
		validate:  validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отправить сообщение в поддержку
// @Description Принимает сообщение формы обратной связи и ставит его в очередь на отправку.
// @Tags Contact
// @Accept json
// @Produce json
// @Param request body Request true "Сообщение"
// @Success 200 {object} response.Response "Сообщение принято"
// @Failure 400 {object} response.ErrorResponse "Некорректный JSON"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /contact [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.contact"

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

	message := models.ContactMessage{
		Name:    req.Name,
		Email:   req.Email,
		Subject: req.Subject,
		Message: req.Message,
	}
	if err := h.publisher.Publish(message); err != nil {
		log.Error("failed to publish contact message", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to send message"))
		return
	}

	log.Info("contact message queued", slog.String("email", req.Email))
	render.JSON(w, r, response.OKWithMessage("message sent"))
}
