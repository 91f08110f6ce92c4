package http

import (
	"net/http"
	"strconv"

	"github.com/cmlabs-hris/officehr-backend-go/internal/domain/user"
	"github.com/cmlabs-hris/officehr-backend-go/internal/pkg/jwt"
	"github.com/go-chi/jwtauth/v5"
)

// callerFrom builds the caller identity from the verified token of r.
func callerFrom(r *http.Request) (user.Identity, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return user.Identity{}, jwt.ErrInvalidToken
	}
	return jwt.IdentityFromClaims(claims)
}

// queryString returns a pointer to the query parameter, nil when absent or empty.
func queryString(r *http.Request, key string) *string {
	if v := r.URL.Query().Get(key); v != "" {
		return &v
	}
	return nil
}

// queryInt returns the query parameter as an int. Absent or malformed values
// yield zero, which the filters replace with their defaults.
func queryInt(r *http.Request, key string) int {
	n, err := strconv.Atoi(r.URL.Query().Get(key))
	if err != nil {
		return 0
	}
	return n
}

func queryIntPtr(r *http.Request, key string) *int {
	v := r.URL.Query().Get(key)
	if v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		// Out of every valid range so that validation reports it
		n = -1
	}
	return &n
}

func queryBool(r *http.Request, key string) *bool {
	b, err := strconv.ParseBool(r.URL.Query().Get(key))
	if err != nil {
		return nil
	}
	return &b
}
