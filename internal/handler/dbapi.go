package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/newrelic/go-agent/v3/integrations/nrpkgerrors"
	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/rs/zerolog"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/config"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/errs"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/event"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/model"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/repository"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/service"
	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/sqlerr"
)

// Beginner opens the transaction that scopes one request.
type Beginner interface {
	Begin(ctx context.Context) (pgx.Tx, error)
}

// Inventory is the service the handler dispatches to.
type Inventory interface {
	ListProducts(ctx context.Context, db repository.DBTX) ([]model.ProductView, error)
	ListConsumptions(ctx context.Context, db repository.DBTX) ([]model.ConsumptionView, error)
	AddConsumption(ctx context.Context, tx service.Tx, in model.NewConsumption) (int64, error)
	AddProduct(ctx context.Context, tx service.Tx, in model.NewProduct) (int64, error)
}

type productsResult struct {
	Products []model.ProductView `json:"products"`
}

type consumptionsResult struct {
	Consumptions []model.ConsumptionView `json:"consumptions"`
}

type createdResult struct {
	ID      int64 `json:"id"`
	Success bool  `json:"success"`
}

// DBAPIHandler serves the db-api operations.
type DBAPIHandler struct {
	// db is nil when no connection string is configured.
	db        Beginner
	inventory Inventory
	logger    *zerolog.Logger
}

// NewDBAPIHandler builds the handler. Pass a nil db when cfg has no URL.
func NewDBAPIHandler(cfg config.DatabaseConfig, db Beginner, inventory Inventory, logger *zerolog.Logger) *DBAPIHandler {
	if !cfg.Configured() {
		db = nil
	}
	return &DBAPIHandler{
		db:        db,
		inventory: inventory,
		logger:    logger,
	}
}

// Handle runs one request to completion. It never returns an error: every
// failure is rendered as a response.
func (h *DBAPIHandler) Handle(ctx context.Context, req event.Request) event.Response {
	start := time.Now()

	method := req.Method()
	if method == "" {
		method = http.MethodGet
	}

	if method == http.MethodOptions {
		return event.Preflight()
	}

	logger := h.requestLogger(ctx).With().
		Str("operation", "db_api").
		Str("method", method).
		Logger()
	ctx = logger.WithContext(ctx)

	txn := newrelic.FromContext(ctx)

	route, res := h.serve(ctx, method, req)

	duration := time.Since(start)
	if txn != nil {
		txn.AddAttribute("db_api.route", route.String())
		txn.AddAttribute("db_api.status_code", res.StatusCode)
		txn.AddAttribute("handler.duration_ms", duration.Milliseconds())
	}

	logEvent := logger.Info()
	switch {
	case res.StatusCode >= http.StatusInternalServerError:
		logEvent = logger.Error()
	case res.StatusCode >= http.StatusBadRequest:
		logEvent = logger.Warn()
	}
	logEvent.
		Str("route", route.String()).
		Int("status", res.StatusCode).
		Dur("duration", duration).
		Msg("request completed")

	return res
}

// serve opens the transaction, resolves the route and dispatches. The
// transaction is rolled back on every path; after a commit that is a no-op.
func (h *DBAPIHandler) serve(ctx context.Context, method string, req event.Request) (Route, event.Response) {
	if h.db == nil {
		return RouteInvalid, h.fail(ctx, errs.NewConfigurationError(config.DatabaseURLEnv+" not configured"))
	}

	tx, err := h.db.Begin(ctx)
	if err != nil {
		return RouteInvalid, h.fail(ctx, err)
	}
	defer func() {
		if err := tx.Rollback(context.WithoutCancel(ctx)); err != nil && !errors.Is(err, pgx.ErrTxClosed) {
			zerolog.Ctx(ctx).Warn().Err(err).Msg("rollback failed")
		}
	}()

	body := payload{}
	if method == http.MethodPost {
		if body, err = decodeBody(req); err != nil {
			return RouteInvalid, h.fail(ctx, err)
		}
	}

	route := ResolveRoute(method, req.Query("table", TableProducts), body.action())

	result, err := h.dispatch(ctx, tx, route, body)
	if err != nil {
		return route, h.fail(ctx, err)
	}

	res, err := event.JSON(http.StatusOK, result)
	if err != nil {
		return route, h.fail(ctx, err)
	}
	return route, res
}

func (h *DBAPIHandler) dispatch(ctx context.Context, tx pgx.Tx, route Route, body payload) (any, error) {
	switch route {
	case RouteListProducts:
		products, err := h.inventory.ListProducts(ctx, tx)
		if err != nil {
			return nil, err
		}
		return productsResult{Products: products}, nil

	case RouteListConsumptions:
		consumptions, err := h.inventory.ListConsumptions(ctx, tx)
		if err != nil {
			return nil, err
		}
		return consumptionsResult{Consumptions: consumptions}, nil

	case RouteAddConsumption:
		in, err := body.newConsumption()
		if err != nil {
			return nil, err
		}
		id, err := h.inventory.AddConsumption(ctx, tx, in)
		if err != nil {
			return nil, err
		}
		return createdResult{ID: id, Success: true}, nil

	case RouteAddProduct:
		in, err := body.newProduct()
		if err != nil {
			return nil, err
		}
		id, err := h.inventory.AddProduct(ctx, tx, in)
		if err != nil {
			return nil, err
		}
		return createdResult{ID: id, Success: true}, nil

	case RouteInvalid:
		return nil, errs.NewBadRequestError()
	}

	return nil, errs.NewBadRequestError()
}

// fail renders err as {"error": msg}. Routing errors keep their 400; every
// other error is a 500 carrying the underlying message.
func (h *DBAPIHandler) fail(ctx context.Context, err error) event.Response {
	httpErr := sqlerr.HandleError(err)

	logger := zerolog.Ctx(ctx)
	if httpErr.Status >= http.StatusInternalServerError {
		logger.Error().
			Err(err).
			Str("error_code", httpErr.Code).
			Msg("request failed")

		if txn := newrelic.FromContext(ctx); txn != nil {
			txn.NoticeError(nrpkgerrors.Wrap(err))
			txn.AddAttribute("error.code", httpErr.Code)
		}
	}

	return event.Error(httpErr.Status, httpErr.Message)
}

// requestLogger prefers a logger attached to ctx by the transport.
func (h *DBAPIHandler) requestLogger(ctx context.Context) *zerolog.Logger {
	if l := zerolog.Ctx(ctx); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return h.logger
}
