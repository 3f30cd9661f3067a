// Package event defines the platform-neutral request and response
// descriptors the db-api handler works on.
//
// The serverless runtime, the Echo adapter and the `invoke` CLI command all
// translate their own representation into Request and back from Response.
package event

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Request is an incoming invocation. Field names follow the serverless
// event shape so raw events decode directly.
type Request struct {
	HTTPMethod            string            `json:"httpMethod"`
	Path                  string            `json:"path,omitempty"`
	QueryStringParameters map[string]string `json:"queryStringParameters"`
	Headers               map[string]string `json:"headers,omitempty"`
	Body                  string            `json:"body"`
	IsBase64Encoded       bool              `json:"isBase64Encoded,omitempty"`
}

// Method returns the upper-cased HTTP method.
func (r Request) Method() string {
	return strings.ToUpper(r.HTTPMethod)
}

// Query returns the query parameter key, or def when it is absent.
func (r Request) Query(key, def string) string {
	if v, ok := r.QueryStringParameters[key]; ok {
		return v
	}
	return def
}

// Header returns a request header, matching its name case-insensitively.
func (r Request) Header(name string) string {
	for k, v := range r.Headers {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return ""
}

// Response is the handler result.
type Response struct {
	StatusCode      int               `json:"statusCode"`
	Headers         map[string]string `json:"headers"`
	Body            string            `json:"body"`
	IsBase64Encoded bool              `json:"isBase64Encoded"`
}

// Decode parses a raw invocation event.
func Decode(data []byte) (Request, error) {
	var req Request
	err := json.Unmarshal(data, &req)
	return req, err
}

// Encode renders a response as a raw event.
func Encode(res Response) ([]byte, error) {
	return json.Marshal(res)
}
