package validation

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/employee-app/internal/errs"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
)

type idPayload struct {
	ID int64 `param:"id"`
}

func (p *idPayload) Validate() error { return nil }

type namedPayload struct {
	Name string `json:"name" validate:"required,max=5"`
}

func (p *namedPayload) Validate() error { return validator.New().Struct(p) }

type customPayload struct{}

func (p *customPayload) Validate() error {
	return CustomValidationErrors{{Field: "role", Message: "is reserved"}}
}

func newContext(method, target, body string) echo.Context {
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	e := echo.New()
	e.Binder = &Binder{}
	return e.NewContext(req, httptest.NewRecorder())
}

func TestBindAndValidatePathID(t *testing.T) {
	c := newContext(http.MethodDelete, "/employees/7", "")
	c.SetParamNames("id")
	c.SetParamValues("7")

	var p idPayload
	if err := BindAndValidate(c, &p); err != nil {
		t.Fatalf("BindAndValidate() error = %v", err)
	}
	if p.ID != 7 {
		t.Errorf("ID = %d, want 7", p.ID)
	}
}

func TestBindAndValidateNonNumericID(t *testing.T) {
	c := newContext(http.MethodDelete, "/employees/abc", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")

	err := BindAndValidate(c, &idPayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadRequest {
		t.Fatalf("error = %v, want a 400 HTTPError", err)
	}
	if httpErr.Message == "" {
		t.Error("bind error should carry a message")
	}
}

func TestBindAndValidateMalformedJSON(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, "/employees", "{"), &namedPayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) || httpErr.Status != http.StatusBadRequest {
		t.Fatalf("error = %v, want a 400 HTTPError", err)
	}
}

func TestBindAndValidateFieldErrors(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, "/employees", `{"name":"Bartholomew"}`), &namedPayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) {
		t.Fatalf("error = %v, want *errs.HTTPError", err)
	}
	if !httpErr.Override || len(httpErr.Errors) != 1 {
		t.Fatalf("got %+v", httpErr)
	}
	if got := httpErr.Errors[0]; got.Field != "name" || got.Error != "must not exceed 5 characters" {
		t.Errorf("field error = %+v", got)
	}
}

func TestBindAndValidateCustomErrors(t *testing.T) {
	err := BindAndValidate(newContext(http.MethodPost, "/employees", `{}`), &customPayload{})

	var httpErr *errs.HTTPError
	if !errors.As(err, &httpErr) || len(httpErr.Errors) != 1 || httpErr.Errors[0].Field != "role" {
		t.Fatalf("error = %+v", err)
	}
}

func TestBindAndValidateIgnoresNonJSONBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/employees", strings.NewReader("name=Alice"))
	req.Header.Set(echo.HeaderContentType, echo.MIMETextPlain)
	e := echo.New()
	e.Binder = &Binder{}
	c := e.NewContext(req, httptest.NewRecorder())

	var p struct {
		Name *string `json:"name" form:"name"`
	}
	if err := c.Bind(&p); err != nil {
		t.Fatalf("Bind() error = %v", err)
	}
	if p.Name != nil {
		t.Errorf("Name = %q, want nil for a non-JSON body", *p.Name)
	}
}

func TestBindErrorKeepsStatus(t *testing.T) {
	err := bindError(echo.ErrUnsupportedMediaType)
	if err.Status != http.StatusUnsupportedMediaType || err.Code != "UNSUPPORTED_MEDIA_TYPE" {
		t.Errorf("got %d %q", err.Status, err.Code)
	}

	err = bindError(echo.NewHTTPError(http.StatusBadRequest, "bad id"))
	if err.Status != http.StatusBadRequest || err.Message != "bad id" {
		t.Errorf("got %d %q", err.Status, err.Message)
	}
}
