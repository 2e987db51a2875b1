package middleware

import (
	"context"
	"net/http"
	"strings"
)

type ctxKey string

const ownerKey ctxKey = "owner_id"

// OwnerContext:
// - Si viene header X-Owner-ID => lo deja en el contexto.
// - Si no hay owner, el request sigue igual; los handlers deciden si lo exigen.
//
// Es el modo single-user del planner: el "login" es declarar quién sos.
// Un verifier real de tokens queda fuera de alcance del engine.
func OwnerContext() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if oid := strings.TrimSpace(r.Header.Get("X-Owner-ID")); oid != "" {
				ctx := context.WithValue(r.Context(), ownerKey, oid)
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

func GetOwnerID(ctx context.Context) (string, bool) {
	v := ctx.Value(ownerKey)
	if v == nil {
		return "", false
	}
	s, ok := v.(string)
	return s, ok && s != ""
}
