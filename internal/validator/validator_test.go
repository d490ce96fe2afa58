package validator

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/msc-labs/evaluate-backend/internal/response"
)

type loginPayload struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
}

func bindJSON(t *testing.T, body string) map[string]string {
	t.Helper()
	gin.SetMode(gin.TestMode)
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	var dst loginPayload
	return Bind(c, &dst)
}

func TestBindTranslatesValidationErrors(t *testing.T) {
	Setup()

	fields := bindJSON(t, `{"email": "not-an-email", "password": "x"}`)
	if fields == nil {
		t.Fatal("invalid payload should produce field errors")
	}
	if _, ok := fields["email"]; !ok {
		t.Errorf("missing email field error: %v", fields)
	}
	if _, ok := fields["password"]; !ok {
		t.Errorf("missing password field error: %v", fields)
	}
}

func TestBindMalformedJSONNeverLeaksDecoderText(t *testing.T) {
	Setup()

	fields := bindJSON(t, `{"email": `)
	if fields == nil {
		t.Fatal("malformed JSON should produce an error map")
	}
	if fields["detail"] != response.MsgInvalidPayload {
		t.Errorf("detail = %q, want canonical %q", fields["detail"], response.MsgInvalidPayload)
	}
	for k, v := range fields {
		if strings.Contains(v, "unexpected") || strings.Contains(v, "EOF") {
			t.Errorf("field %q carries raw decoder text: %q", k, v)
		}
	}
}

func TestBindValidPayload(t *testing.T) {
	Setup()

	if fields := bindJSON(t, `{"email": "a@example.com", "password": "secret1"}`); fields != nil {
		t.Errorf("valid payload rejected: %v", fields)
	}
}
