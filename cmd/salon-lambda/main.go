// Command salon-lambda serves the db-api as an AWS Lambda function behind
// API Gateway (REST proxy integration).
package main

import (
	"context"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/newrelic/go-agent/v3/newrelic"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/app"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/config"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/event"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/handler"
)

type function struct {
	dbAPI *handler.DBAPIHandler
	nrApp *newrelic.Application
}

// handle is invoked once per request. A New Relic transaction wraps it when
// the agent is enabled.
func (f *function) handle(ctx context.Context, in events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	if f.nrApp != nil {
		txn := f.nrApp.StartTransaction("db-api")
		defer txn.End()
		ctx = newrelic.NewContext(ctx, txn)
	}

	res := f.dbAPI.Handle(ctx, toRequest(in))

	return toResponse(res), nil
}

func toRequest(in events.APIGatewayProxyRequest) event.Request {
	return event.Request{
		HTTPMethod:            in.HTTPMethod,
		Path:                  in.Path,
		QueryStringParameters: in.QueryStringParameters,
		Headers:               in.Headers,
		Body:                  in.Body,
		IsBase64Encoded:       in.IsBase64Encoded,
	}
}

func toResponse(res event.Response) events.APIGatewayProxyResponse {
	return events.APIGatewayProxyResponse{
		StatusCode:      res.StatusCode,
		Headers:         res.Headers,
		Body:            res.Body,
		IsBase64Encoded: res.IsBase64Encoded,
	}
}

func main() {
	cfg := config.MustLoad()

	a, err := app.New(cfg)
	if err != nil {
		panic(err)
	}

	f := &function{
		dbAPI: a.Handlers.DBAPI,
		nrApp: a.Server.LoggerService.GetApplication(),
	}

	lambda.Start(f.handle)
}
