package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"bingo_caller/internal/model"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type stubAuth struct{}

func (stubAuth) Login(context.Context, string, string) (string, error) { return "", nil }

func (stubAuth) Verify(tok string) (*model.Host, error) {
	if tok != "good" {
		return nil, errors.New("bad token")
	}
	return &model.Host{Login: "host"}, nil
}

func TestRequireHost(t *testing.T) {
	var seen *model.Host
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = HostFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
	h := RequireHost(stubAuth{}, logrus.New())(next)

	cases := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"bad token", "Bearer nope", http.StatusUnauthorized},
		{"good token", "Bearer good", http.StatusNoContent},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			seen = nil
			r := httptest.NewRequest(http.MethodPost, "/draw", nil)
			if tc.header != "" {
				r.Header.Set("Authorization", tc.header)
			}
			w := httptest.NewRecorder()
			h.ServeHTTP(w, r)
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusNoContent {
				if assert.NotNil(t, seen) {
					assert.Equal(t, "host", seen.Login)
				}
			} else {
				assert.Nil(t, seen)
			}
		})
	}
}
