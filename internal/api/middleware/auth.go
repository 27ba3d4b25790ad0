package middleware

import (
	"context"
	"net/http"
	"strconv"
)

type contextKey string

const operatorIDKey contextKey = "operatorID"

// HeaderOperatorID заголовок с ID оператора сети
const HeaderOperatorID = "X-Operator-ID"

// Auth извлекает ID оператора из заголовка и кладет его в контекст запроса
// Запросы без корректного заголовка отклоняются с 401
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		operatorIDStr := r.Header.Get(HeaderOperatorID)
		if operatorIDStr == "" {
			http.Error(w, `{"error":"отсутствует заголовок X-Operator-ID"}`, http.StatusUnauthorized)
			return
		}

		operatorID, err := strconv.ParseInt(operatorIDStr, 10, 64)
		if err != nil || operatorID <= 0 {
			http.Error(w, `{"error":"некорректный заголовок X-Operator-ID"}`, http.StatusUnauthorized)
			return
		}

		ctx := context.WithValue(r.Context(), operatorIDKey, operatorID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// GetOperatorID возвращает ID оператора из контекста запроса
func GetOperatorID(ctx context.Context) (int64, bool) {
	operatorID, ok := ctx.Value(operatorIDKey).(int64)
	return operatorID, ok
}
