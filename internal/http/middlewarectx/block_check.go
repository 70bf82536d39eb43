package middlewarectx

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"github.com/godogapp/godog/internal/http/response"
	"github.com/godogapp/godog/internal/lib/sl"
	"github.com/godogapp/godog/internal/metrics"
	"github.com/godogapp/godog/internal/models"
)

// BlockService отвечает, закрыт ли пользователю доступ на данный момент.
type BlockService interface {
	BlockStatus(ctx context.Context, userUID string) (bool, models.UserRole, error)
}

// BlockCheckMiddleware вычисляет триальную блокировку на каждый запрос.
// Статус нигде не хранится: решение принимается по датам профиля и
// текущему времени. Заблокированный пользователь получает 403 с
// выделенным статусом Blocked — это состояние продукта, а не ошибка.
func BlockCheckMiddleware(log *slog.Logger, blockService BlockService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userUID, ok := r.Context().Value(UserUID).(string)
			if !ok || userUID == "" {
				log.Error("user identification missing")
				w.WriteHeader(http.StatusUnauthorized)
				render.JSON(w, r, response.Error("user identification missing"))
				return
			}

			blocked, role, err := blockService.BlockStatus(r.Context(), userUID)
			if err != nil {
				log.Error("failed to compute block status", sl.Err(err))
				w.WriteHeader(http.StatusInternalServerError)
				render.JSON(w, r, response.Error("internal service error"))
				return
			}

			if blocked {
				metrics.BlockedAccess.WithLabelValues(string(role)).Inc()
				log.Info("access denied: trial expired", slog.String("user_uid", userUID), slog.String("role", string(role)))
				w.WriteHeader(http.StatusForbidden)
				render.JSON(w, r, response.Blocked())
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
