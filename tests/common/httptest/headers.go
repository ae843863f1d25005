//go:build unit || e2e

package httptest

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func AssertHeaders(t *testing.T, w *httptest.ResponseRecorder, expected map[string]string) {
	t.Helper()
	for k, v := range expected {
		assert.Equal(t, v, w.Header().Get(k), "header %s mismatch", k)
	}
}

func AssertHeadersAbsent(t *testing.T, w *httptest.ResponseRecorder, names ...string) {
	t.Helper()
	for _, k := range names {
		_, present := w.Header()[http.CanonicalHeaderKey(k)]
		assert.False(t, present, "header %s should not be set", k)
	}
}
