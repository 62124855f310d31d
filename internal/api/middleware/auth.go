package middleware

import (
	"context"
	"net/http"
	"strconv"

	"github.com/slotta-app/SlottaService/internal/api/handlers"
)

// Заголовки идентификации вызывающей стороны. Аутентификацию как таковую
// выполняет внешний шлюз, сюда приходит уже проверенная личность.
const (
	HeaderMasterID = "X-Master-ID"
	HeaderClientID = "X-Client-ID"
)

type ctxKey int

const (
	masterIDKey ctxKey = iota
	clientIDKey
)

// Auth требует хотя бы один из заголовков идентификации и кладет
// распарсенные ID в контекст запроса
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		found := false

		if raw := r.Header.Get(HeaderMasterID); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-Master-ID")
				return
			}
			ctx = context.WithValue(ctx, masterIDKey, id)
			found = true
		}

		if raw := r.Header.Get(HeaderClientID); raw != "" {
			id, err := strconv.ParseInt(raw, 10, 64)
			if err != nil || id <= 0 {
				handlers.RespondError(w, http.StatusUnauthorized, "некорректный заголовок X-Client-ID")
				return
			}
			ctx = context.WithValue(ctx, clientIDKey, id)
			found = true
		}

		if !found {
			handlers.RespondError(w, http.StatusUnauthorized, "требуется заголовок X-Master-ID или X-Client-ID")
			return
		}

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// MasterID возвращает ID мастера из контекста запроса
func MasterID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(masterIDKey).(int64)
	return id, ok
}

// ClientID возвращает ID клиента из контекста запроса
func ClientID(r *http.Request) (int64, bool) {
	id, ok := r.Context().Value(clientIDKey).(int64)
	return id, ok
}
