package sqlerr

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/deppfellow/jod-api/internal/errs"
)

// ErrCode reports the Code of the first *Error in err's chain, or Other.
func ErrCode(err error) Code {
	var pgerr *Error
	if errors.As(err, &pgerr) {
		return pgerr.Code
	}
	return Other
}

// ConvertPgError converts a raw PostgreSQL error into an *Error.
func ConvertPgError(src *pgconn.PgError) *Error {
	return &Error{
		Code:           MapCode(src.Code),
		Severity:       MapSeverity(src.Severity),
		DatabaseCode:   src.Code,
		Message:        src.Message,
		SchemaName:     src.SchemaName,
		TableName:      src.TableName,
		ColumnName:     src.ColumnName,
		DataTypeName:   src.DataTypeName,
		ConstraintName: src.ConstraintName,
		driverErr:      src,
	}
}

// clientRule describes how one class of error is shown to API clients.
type clientRule struct {
	// suffix completes the "<ENTITY>_" error code.
	suffix string
	// override marks the message as safe to show end users verbatim.
	override bool
	message  func(e *Error) string
}

var clientRules = map[Code]clientRule{
	ForeignKeyViolation: {
		suffix: "NOT_FOUND",
		message: func(e *Error) string {
			return fmt.Sprintf("The referenced %s does not exist", entity(e.TableName, e.ColumnName))
		},
	},
	UniqueViolation: {
		suffix:   "ALREADY_EXISTS",
		override: true,
		message: func(e *Error) string {
			what := "identifier"
			if column := uniqueColumn(e.ConstraintName); column != "" {
				what = humanize(column)
			}
			return fmt.Sprintf("A %s with this %s already exists", entity(e.TableName, ""), what)
		},
	},
	NotNullViolation: {
		suffix:   "REQUIRED",
		override: true,
		message: func(e *Error) string {
			return fmt.Sprintf("The %s is required", orDefault(humanize(e.ColumnName), "field"))
		},
	},
	CheckViolation: {
		suffix:   "INVALID",
		override: true,
		message: func(e *Error) string {
			if column := humanize(e.ColumnName); column != "" {
				return fmt.Sprintf("The %s value does not meet required conditions", column)
			}
			return "One or more values do not meet required conditions"
		},
	},
	StringDataRightTruncation: {
		suffix:   "INVALID",
		override: true,
		message:  func(*Error) string { return "One or more values are too long" },
	},
	InvalidTextRepresentation: {
		suffix:   "INVALID",
		override: true,
		message:  func(*Error) string { return "One or more values have an invalid format" },
	},
	NumericValueOutOfRange: {
		suffix:   "INVALID",
		override: true,
		message:  func(*Error) string { return "One or more values are out of range" },
	},
}

// HandleError converts an error reaching the HTTP layer into an
// *errs.HTTPError.
//
// An *errs.HTTPError is returned unchanged. PostgreSQL constraint and data
// errors become a 400 coded "<ENTITY>_<REASON>" (SLOT_NOT_FOUND,
// SHIFT_REQUIRED). pgx.ErrNoRows becomes a 404. Everything else is a 500.
func HandleError(err error) error {
	var httpErr *errs.HTTPError
	if errors.As(err, &httpErr) {
		return err
	}

	var pgerr *pgconn.PgError
	if errors.As(err, &pgerr) {
		sqlErr := ConvertPgError(pgerr)

		rule, ok := clientRules[sqlErr.Code]
		if !ok {
			return errs.NewInternalServerError()
		}

		code := entityCode(sqlErr.TableName) + "_" + rule.suffix

		var fieldErrors []errs.FieldError
		if sqlErr.Code == NotNullViolation && sqlErr.ColumnName != "" {
			fieldErrors = []errs.FieldError{{Field: strings.ToLower(sqlErr.ColumnName), Error: "is required"}}
		}

		return errs.NewBadRequestError(rule.message(sqlErr), rule.override, &code, fieldErrors, nil)
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return errs.NewNotFoundError("Resource not found", false, nil)
	}

	return errs.NewInternalServerError()
}

// entityCode turns a table name into the upper-case singular used in error
// codes: "slots" -> "SLOT".
func entityCode(table string) string {
	if table == "" {
		return "RECORD"
	}
	return strings.ToUpper(singular(table))
}

// entity names the thing a client referred to. A "<name>_id" column wins
// over the table, so a bad slots.shift_id reads as "Shift".
func entity(table, column string) string {
	if name, ok := strings.CutSuffix(strings.ToLower(column), "_id"); ok && name != "" {
		return humanize(name)
	}
	if table != "" {
		return humanize(singular(table))
	}
	return "record"
}

func singular(name string) string {
	if len(name) > 1 {
		return strings.TrimSuffix(strings.TrimSuffix(name, "s"), "S")
	}
	return name
}

// humanize turns "shift_start_time" into "Shift Start Time".
func humanize(text string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(text, "_", " "))
}

func orDefault(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

var uniqueConstraintRe = regexp.MustCompile(`^(?:unique_.+_([^_]+)|.+_([^_]+)_u?key)$`)

// uniqueColumn reads the column out of constraint names shaped like
// unique_<table>_<column> or <table>_<column>_key.
func uniqueColumn(constraint string) string {
	m := uniqueConstraintRe.FindStringSubmatch(constraint)
	if m == nil {
		return ""
	}
	return orDefault(m[1], m[2])
}
