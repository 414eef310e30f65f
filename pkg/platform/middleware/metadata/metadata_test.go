package metadata

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"frontdesk/pkg/requestcontext"
)

func TestOperator(t *testing.T) {
	var gotID string
	var gotFloors []string
	h := Operator(http.HandlerFunc(func(_ http.ResponseWriter, r *http.Request) {
		gotID = requestcontext.OperatorID(r.Context())
		gotFloors = GetOperatorFloors(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/visitors", nil)
	req.Header.Set(HeaderOperatorID, " desk-7 ")
	req.Header.Set(HeaderOperatorFloors, "3, ground floor,,5 ")
	h.ServeHTTP(httptest.NewRecorder(), req)

	assert.Equal(t, "desk-7", gotID)
	assert.Equal(t, []string{"3", "ground floor", "5"}, gotFloors)
}

func TestParseFloorsEmpty(t *testing.T) {
	assert.Empty(t, ParseFloors(""))
	assert.Empty(t, ParseFloors(" , "))
}

func TestClientIPFromRequest(t *testing.T) {
	tests := []struct {
		name    string
		headers map[string]string
		remote  string
		want    string
	}{
		{"forwarded chain", map[string]string{"X-Forwarded-For": "10.0.0.1, 10.0.0.2"}, "1.1.1.1:80", "10.0.0.1"},
		{"real ip", map[string]string{"X-Real-IP": "10.0.0.9"}, "1.1.1.1:80", "10.0.0.9"},
		{"remote addr", nil, "192.168.1.4:5555", "192.168.1.4"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remote
			for k, v := range tt.headers {
				req.Header.Set(k, v)
			}
			assert.Equal(t, tt.want, ClientIPFromRequest(req))
		})
	}
}
