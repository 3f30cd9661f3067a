package handler

import (
	"io"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/event"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/server"
)

// HTTPHandler serves the db-api over Echo by translating to and from
// event.Request / event.Response.
type HTTPHandler struct {
	Handler
	dbAPI *DBAPIHandler
}

func NewHTTPHandler(s *server.Server, dbAPI *DBAPIHandler) *HTTPHandler {
	return &HTTPHandler{
		Handler: NewHandler(s),
		dbAPI:   dbAPI,
	}
}

// ServeDBAPI is registered for every method on the db-api paths.
func (h *HTTPHandler) ServeDBAPI(c echo.Context) error {
	req, err := RequestFromEcho(c)
	if err != nil {
		return err
	}

	res := h.dbAPI.Handle(c.Request().Context(), req)

	return WriteResponse(c, res)
}

// RequestFromEcho converts the incoming HTTP request. Repeated query
// parameters and headers keep their first value. The body size is bounded by
// the router's BodyLimit middleware.
func RequestFromEcho(c echo.Context) (event.Request, error) {
	r := c.Request()

	body, err := io.ReadAll(r.Body)
	if err != nil {
		return event.Request{}, err
	}

	query := make(map[string]string)
	for k, v := range c.QueryParams() {
		if len(v) > 0 {
			query[k] = v[0]
		}
	}

	headers := make(map[string]string, len(r.Header))
	for k := range r.Header {
		headers[k] = r.Header.Get(k)
	}

	return event.Request{
		HTTPMethod:            r.Method,
		Path:                  r.URL.Path,
		QueryStringParameters: query,
		Headers:               headers,
		Body:                  string(body),
	}, nil
}

// WriteResponse copies res onto the Echo response.
func WriteResponse(c echo.Context, res event.Response) error {
	header := c.Response().Header()
	for k, v := range res.Headers {
		header.Set(k, v)
	}

	if res.Body == "" {
		return c.NoContent(res.StatusCode)
	}

	contentType := res.Headers[event.HeaderContentType]
	if contentType == "" {
		contentType = http.DetectContentType([]byte(res.Body))
	}
	return c.Blob(res.StatusCode, contentType, []byte(res.Body))
}
