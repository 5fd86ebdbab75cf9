package auth

import (
	"context"
	"net/http"
	"strings"
)

// SessionCookie is the cookie carrying the session token.
const SessionCookie = "session"

// Page routes the gate steers between.
const (
	SignInPath    = "/sign-in"
	SignUpPath    = "/sign-up"
	DashboardPath = "/dashboard"
)

// UserClaimsKey is the context key for user claims.
type contextKey string

const UserClaimsKey = contextKey("userClaims")

// ClaimsFromContext retrieves verified session claims from a request
// context, if the gate put any there.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(UserClaimsKey).(*Claims)
	return claims, ok
}

// PathClass partitions request paths for the access decision.
type PathClass int

const (
	PathOther PathClass = iota
	PathProtected
	PathAuthPage
)

// Decision is the gate's verdict for a request.
type Decision int

const (
	Allow Decision = iota
	RedirectToSignIn
	RedirectToApp
)

// ClassifyPath assigns a request path to its class. Anything under the
// dashboard is protected; the sign-in and sign-up pages are auth pages;
// everything else is open.
func ClassifyPath(path string) PathClass {
	switch {
	case path == DashboardPath || strings.HasPrefix(path, DashboardPath+"/"):
		return PathProtected
	case path == SignInPath || path == SignUpPath:
		return PathAuthPage
	default:
		return PathOther
	}
}

// Decide maps (path class, authenticated) to a verdict. It is a total,
// stateless function; an absent token and an invalid one are the same
// "not authenticated" input.
func Decide(class PathClass, authenticated bool) Decision {
	switch class {
	case PathProtected:
		if !authenticated {
			return RedirectToSignIn
		}
	case PathAuthPage:
		if authenticated {
			return RedirectToApp
		}
	}
	return Allow
}

// Gate creates a middleware for page routes: unauthenticated requests
// to protected pages bounce to sign-in, authenticated requests to auth
// pages bounce to the dashboard. Valid claims are passed down via the
// request context.
func Gate(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFromRequest(issuer, r)

			switch Decide(ClassifyPath(r.URL.Path), ok) {
			case RedirectToSignIn:
				http.Redirect(w, r, SignInPath, http.StatusSeeOther)
				return
			case RedirectToApp:
				http.Redirect(w, r, DashboardPath, http.StatusSeeOther)
				return
			}

			if ok {
				r = r.WithContext(context.WithValue(r.Context(), UserClaimsKey, claims))
			}
			next.ServeHTTP(w, r)
		})
	}
}

// RequireAuth creates a middleware for API routes. There is no redirect
// here; a missing or invalid token gets a 401, with no hint of which.
func RequireAuth(issuer *TokenIssuer) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := claimsFromRequest(issuer, r)
			if !ok {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				w.Write([]byte(`{"error":"authentication required"}`))
				return
			}

			ctx := context.WithValue(r.Context(), UserClaimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// claimsFromRequest pulls the token from the session cookie, or from a
// Bearer header for non-browser clients, and verifies it.
func claimsFromRequest(issuer *TokenIssuer, r *http.Request) (*Claims, bool) {
	var tokenStr string

	if cookie, err := r.Cookie(SessionCookie); err == nil {
		tokenStr = cookie.Value
	}

	if tokenStr == "" {
		authHeader := r.Header.Get("Authorization")
		if after, found := strings.CutPrefix(authHeader, "Bearer "); found {
			tokenStr = after
		}
	}

	if tokenStr == "" {
		return nil, false
	}
	return issuer.Verify(tokenStr)
}
