package http

import (
	"errors"
	"net/http"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
	"github.com/getkin/kin-openapi/openapi3filter"
	"github.com/getkin/kin-openapi/routers"
	"github.com/getkin/kin-openapi/routers/legacy"
	"github.com/labstack/echo/v4"
)

// RequestValidator checks parameters and bodies against the API document
// before they reach a handler. Routes the document does not know are passed through.
func RequestValidator(doc *openapi3.T, basePath string) (echo.MiddlewareFunc, error) {
	// Paths are matched after basePath is stripped.
	routed := *doc
	routed.Servers = nil
	router, err := legacy.NewRouter(&routed)
	if err != nil {
		return nil, err
	}

	options := &openapi3filter.Options{
		AuthenticationFunc: openapi3filter.NoopAuthenticationFunc,
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			lookup := req.Clone(req.Context())
			lookup.URL.Path = strings.TrimPrefix(req.URL.Path, basePath)

			route, pathParams, err := router.FindRoute(lookup)
			if err != nil {
				if isUnroutable(err) {
					return next(c)
				}
				return writeMessage(c, http.StatusBadRequest, err.Error())
			}

			input := &openapi3filter.RequestValidationInput{
				Request:    req,
				PathParams: pathParams,
				Route:      route,
				Options:    options,
			}
			if err := openapi3filter.ValidateRequest(req.Context(), input); err != nil {
				return writeMessage(c, http.StatusBadRequest, validationMessage(err))
			}
			return next(c)
		}
	}, nil
}

// isUnroutable reports whether the document has no operation for the request.
// The router returns a fresh RouteError carrying the sentinel's text, so the
// reason is compared rather than the error value.
func isUnroutable(err error) bool {
	var routeErr *routers.RouteError
	if !errors.As(err, &routeErr) {
		return false
	}
	return routeErr.Reason == routers.ErrPathNotFound.Error() ||
		routeErr.Reason == routers.ErrMethodNotAllowed.Error()
}

func validationMessage(err error) string {
	var reqErr *openapi3filter.RequestError
	if !errors.As(err, &reqErr) {
		return err.Error()
	}
	if reqErr.Parameter != nil && reqErr.Err != nil {
		return "invalid parameter " + reqErr.Parameter.Name + ": " + reqErr.Err.Error()
	}
	return reqErr.Error()
}
