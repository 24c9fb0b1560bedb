package middleware

import (
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/m04kA/SMC-TeeTimeService/internal/api/handlers"
)

const (
	HeaderUserID = "X-User-ID"
	HeaderRole   = "X-User-Role"

	RoleStaff      = "staff"
	RolePrivileged = "privileged"
)

type ctxKey int

const (
	userIDKey ctxKey = iota
	rolesKey
)

// Auth достает пользователя из заголовков, выставленных API gateway.
// Роли передаются через запятую в X-User-Role.
func Auth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw := r.Header.Get(HeaderUserID)
		userID, err := strconv.ParseInt(raw, 10, 64)
		if raw == "" || err != nil || userID <= 0 {
			handlers.RespondUnauthorized(w, "отсутствует или некорректен заголовок X-User-ID")
			return
		}

		roles := make(map[string]bool)
		for _, role := range strings.Split(r.Header.Get(HeaderRole), ",") {
			if role = strings.TrimSpace(strings.ToLower(role)); role != "" {
				roles[role] = true
			}
		}

		ctx := context.WithValue(r.Context(), userIDKey, userID)
		ctx = context.WithValue(ctx, rolesKey, roles)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// RequireStaff пропускает только сотрудников поля
func RequireStaff(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsStaff(r.Context()) {
			handlers.RespondForbidden(w, "доступно только сотрудникам")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// GetUserID возвращает ID пользователя из контекста
func GetUserID(ctx context.Context) (int64, bool) {
	id, ok := ctx.Value(userIDKey).(int64)
	return id, ok
}

// IsStaff returns true for staff members
func IsStaff(ctx context.Context) bool {
	return hasRole(ctx, RoleStaff)
}

// IsPrivileged returns true for the privileged booking channel (members' reserve)
func IsPrivileged(ctx context.Context) bool {
	return hasRole(ctx, RolePrivileged)
}

// WithUser кладет пользователя в контекст (для тестов handlers)
func WithUser(ctx context.Context, userID int64, roles ...string) context.Context {
	set := make(map[string]bool, len(roles))
	for _, role := range roles {
		set[role] = true
	}
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, rolesKey, set)
}

func hasRole(ctx context.Context, role string) bool {
	roles, _ := ctx.Value(rolesKey).(map[string]bool)
	return roles[role]
}
