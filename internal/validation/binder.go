package validation

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Binder binds path params, query params (GET, DELETE, HEAD) and JSON
// bodies. A body with any other content type is ignored, so the payload
// keeps its zero values.
type Binder struct {
	echo.DefaultBinder
}

func (b *Binder) Bind(i any, c echo.Context) error {
	if err := b.BindPathParams(c, i); err != nil {
		return err
	}

	method := c.Request().Method
	if method == http.MethodGet || method == http.MethodDelete || method == http.MethodHead {
		if err := b.BindQueryParams(c, i); err != nil {
			return err
		}
	}

	if !strings.HasPrefix(c.Request().Header.Get(echo.HeaderContentType), echo.MIMEApplicationJSON) {
		return nil
	}

	return b.BindBody(c, i)
}
