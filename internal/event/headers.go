package event

import "net/http"

const (
	HeaderContentType = "Content-Type"
	HeaderAllowOrigin = "Access-Control-Allow-Origin"

	ContentTypeJSON = "application/json"
)

// preflightHeaders answers an OPTIONS request.
var preflightHeaders = map[string]string{
	HeaderAllowOrigin:              "*",
	"Access-Control-Allow-Methods": "GET, POST, PUT, DELETE, OPTIONS",
	"Access-Control-Allow-Headers": "Content-Type",
	"Access-Control-Max-Age":       "86400",
}

// Preflight is the CORS preflight response: 200 with an empty body.
func Preflight() Response {
	headers := make(map[string]string, len(preflightHeaders))
	for k, v := range preflightHeaders {
		headers[k] = v
	}
	return Response{
		StatusCode: http.StatusOK,
		Headers:    headers,
		Body:       "",
	}
}

// JSON renders v with status and the headers every non-preflight response carries.
func JSON(status int, v any) (Response, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return Response{}, err
	}
	return Response{
		StatusCode: status,
		Headers: map[string]string{
			HeaderContentType: ContentTypeJSON,
			HeaderAllowOrigin: "*",
		},
		Body: string(body),
	}, nil
}

// Error renders {"error": message}.
func Error(status int, message string) Response {
	// A map of strings always marshals.
	res, _ := JSON(status, map[string]string{"error": message})
	return res
}
