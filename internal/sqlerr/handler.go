package sqlerr

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	pkgerrors "github.com/pkg/errors"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/pr-poehali-dev/grooming-tools-rebranding/internal/errs"
)

// ErrCode reports the Code for err, or Other when err is not a PostgreSQL error.
func ErrCode(err error) Code {
	var sqlErr *Error
	if errors.As(err, &sqlErr) {
		return sqlErr.Code
	}
	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		return MapCode(pgerr.Code)
	}
	return Other
}

// generateErrorCode builds "<DOMAIN>_<ACTION>" codes for logs and traces.
//
// Example: products + ForeignKeyViolation => PRODUCT_NOT_FOUND
func generateErrorCode(tableName string, errType Code) string {
	if tableName == "" {
		tableName = "RECORD"
	}

	domain := strings.ToUpper(tableName)
	if strings.HasSuffix(domain, "S") && len(domain) > 1 {
		domain = domain[:len(domain)-1]
	}

	action := "ERROR"
	switch errType {
	case ForeignKeyViolation:
		action = "NOT_FOUND"
	case UniqueViolation:
		action = "ALREADY_EXISTS"
	case NotNullViolation:
		action = "REQUIRED"
	case CheckViolation, InvalidText, NumericOutOfRange:
		action = "INVALID"
	}

	return fmt.Sprintf("%s_%s", domain, action)
}

// getEntityName infers an entity name from table/column data.
//
//  1. column ending in "_id" wins: "product_id" -> "Product"
//  2. otherwise the singularised table name
//  3. otherwise "record"
func getEntityName(tableName, columnName string) string {
	if columnName != "" && strings.HasSuffix(strings.ToLower(columnName), "_id") {
		entity := strings.TrimSuffix(strings.ToLower(columnName), "_id")
		return humanizeText(entity)
	}

	if tableName != "" {
		entity := tableName
		if strings.HasSuffix(entity, "s") && len(entity) > 1 {
			entity = entity[:len(entity)-1]
		}
		return humanizeText(entity)
	}

	return "record"
}

// humanizeText converts snake_case into Title Case: "material_consumption" -> "Material Consumption".
func humanizeText(text string) string {
	if text == "" {
		return ""
	}
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

// Describe returns a one-line, human oriented summary for logs,
// e.g. "Product reference violates foreign key".
func Describe(err *Error) string {
	entity := getEntityName(err.TableName, err.ColumnName)
	switch err.Code {
	case ForeignKeyViolation:
		return fmt.Sprintf("%s reference violates foreign key", entity)
	case UniqueViolation:
		return fmt.Sprintf("%s already exists", entity)
	case NotNullViolation:
		return fmt.Sprintf("%s is required", humanizeText(err.ColumnName))
	default:
		return fmt.Sprintf("%s error", entity)
	}
}

// HandleError converts any error raised while talking to the database into
// the 500 the client receives.
//
// Output:
//   - *errs.HTTPError: returned unchanged
//   - *pgconn.PgError: message is the server message, code e.g. PRODUCT_NOT_FOUND
//   - pgx.ErrNoRows: message "no rows in result set"
//   - anything else: the root cause's message
func HandleError(err error) *errs.HTTPError {
	if httpErr, ok := errs.As(err); ok {
		return httpErr
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)
		code := generateErrorCode(sqlErr.TableName, sqlErr.Code)
		return errs.NewInternalServerError(sqlErr.Message, code).WithCause(sqlErr)
	}

	switch {
	case errors.Is(err, pgx.ErrNoRows):
		return errs.NewInternalServerError(pgx.ErrNoRows.Error(), "RECORD_NOT_FOUND").WithCause(err)
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return errs.NewInternalServerError(err.Error(), "TIMEOUT").WithCause(err)
	}

	// Strip repository context ("insert consumption: ...") from the client message.
	return errs.NewInternalServerError(pkgerrors.Cause(err).Error(), "").WithCause(err)
}
