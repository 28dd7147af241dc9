package postgres

import (
	"strconv"
	"strings"
)

// ErrorFamily is one of the three closed families of §4.11: ClientError
// (caller misuse), ServerError (the backend rejected something) or
// FatalError (protocol/internal states nothing above this layer can recover
// from).
type ErrorFamily int

const (
	ClientError ErrorFamily = iota
	ServerError
	FatalError
)

func (f ErrorFamily) String() string {
	switch f {
	case ClientError:
		return "ClientError"
	case ServerError:
		return "ServerError"
	case FatalError:
		return "FatalError"
	default:
		return "UnknownErrorFamily"
	}
}

// ErrorCode is a member of one of the three families, named exactly as
// spec §4.11 enumerates them. The zero value, CodeNone, is not itself ever
// placed on an ErrorContext — its presence signals "no error" the way the
// teacher's ExecStatusType mapping returns std::nullopt for success.
type ErrorCode int

const (
	CodeNone ErrorCode = iota

	// ClientError family.
	CodeNotConnected
	CodeInvalidState
	CodeInvalidArgument
	CodeInvalidOption
	CodeInvalidParameter
	CodeTypeMismatch
	CodeSyntaxError
	CodeAuthenticationError
	CodeConfigurationError
	CodeTransactionActive
	CodeNoActiveTransaction

	// ServerError family.
	CodeConnectionError
	CodeConnectionLost
	CodeRuntimeError
	CodeDataError
	CodeDataTooLong
	CodeNumericOverflow
	CodeInvalidDatetime
	CodeDivisionByZero
	CodeInvalidTextFormat
	CodeInvalidEncoding
	CodeConstraintViolation
	CodeNotNullViolation
	CodeForeignKeyViolation
	CodeUniqueViolation
	CodeCheckViolation
	CodeExclusionViolation
	CodeObjectNotFound
	CodeTableNotFound
	CodeColumnNotFound
	CodeFunctionNotFound
	CodeSchemaNotFound
	CodeDatabaseNotFound
	CodePermissionDenied
	CodeTransactionError
	CodeTransactionRollback
	CodeTransactionAborted
	CodeSerializationFailure
	CodeDeadlockDetected
	CodeResourceError
	CodeDiskFull
	CodeOutOfMemory
	CodeTooManyConnections
	CodeConfigurationLimit
	CodeQueryTooComplex
	CodeLockTimeout
	CodeStatementTimeout

	// FatalError family.
	CodeInternalError
	CodeCorruptionDetected
	CodeProtocolViolation
	CodeUnexpectedState
)

var codeNames = map[ErrorCode]string{
	CodeNone:                "None",
	CodeNotConnected:        "NotConnected",
	CodeInvalidState:        "InvalidState",
	CodeInvalidArgument:     "InvalidArgument",
	CodeInvalidOption:       "InvalidOption",
	CodeInvalidParameter:    "InvalidParameter",
	CodeTypeMismatch:        "TypeMismatch",
	CodeSyntaxError:         "SyntaxError",
	CodeAuthenticationError: "AuthenticationError",
	CodeConfigurationError:  "ConfigurationError",
	CodeTransactionActive:   "TransactionActive",
	CodeNoActiveTransaction: "NoActiveTransaction",

	CodeConnectionError:      "ConnectionError",
	CodeConnectionLost:       "ConnectionLost",
	CodeRuntimeError:         "RuntimeError",
	CodeDataError:            "DataError",
	CodeDataTooLong:          "DataTooLong",
	CodeNumericOverflow:      "NumericOverflow",
	CodeInvalidDatetime:      "InvalidDatetime",
	CodeDivisionByZero:       "DivisionByZero",
	CodeInvalidTextFormat:    "InvalidTextFormat",
	CodeInvalidEncoding:      "InvalidEncoding",
	CodeConstraintViolation:  "ConstraintViolation",
	CodeNotNullViolation:     "NotNullViolation",
	CodeForeignKeyViolation:  "ForeignKeyViolation",
	CodeUniqueViolation:      "UniqueViolation",
	CodeCheckViolation:       "CheckViolation",
	CodeExclusionViolation:   "ExclusionViolation",
	CodeObjectNotFound:       "ObjectNotFound",
	CodeTableNotFound:        "TableNotFound",
	CodeColumnNotFound:       "ColumnNotFound",
	CodeFunctionNotFound:     "FunctionNotFound",
	CodeSchemaNotFound:       "SchemaNotFound",
	CodeDatabaseNotFound:     "DatabaseNotFound",
	CodePermissionDenied:     "PermissionDenied",
	CodeTransactionError:     "TransactionError",
	CodeTransactionRollback:  "TransactionRollback",
	CodeTransactionAborted:   "TransactionAborted",
	CodeSerializationFailure: "SerializationFailure",
	CodeDeadlockDetected:     "DeadlockDetected",
	CodeResourceError:        "ResourceError",
	CodeDiskFull:             "DiskFull",
	CodeOutOfMemory:          "OutOfMemory",
	CodeTooManyConnections:   "TooManyConnections",
	CodeConfigurationLimit:   "ConfigurationLimit",
	CodeQueryTooComplex:      "QueryTooComplex",
	CodeLockTimeout:          "LockTimeout",
	CodeStatementTimeout:     "StatementTimeout",

	CodeInternalError:      "InternalError",
	CodeCorruptionDetected: "CorruptionDetected",
	CodeProtocolViolation:  "ProtocolViolation",
	CodeUnexpectedState:    "UnexpectedState",
}

func (c ErrorCode) String() string {
	if n, ok := codeNames[c]; ok {
		return n
	}
	return "Unknown"
}

// Family reports which of the three closed families c belongs to.
func (c ErrorCode) Family() ErrorFamily {
	switch {
	case c >= CodeNotConnected && c <= CodeNoActiveTransaction:
		return ClientError
	case c >= CodeConnectionError && c <= CodeStatementTimeout:
		return ServerError
	default:
		return FatalError
	}
}

// ErrorContext is the structured error every fallible postgres entry point
// returns (§4.11): a unified code, the raw SQLSTATE (empty if the backend
// never supplied one), the primary message, and optional diagnostic
// sections. It implements error so callers can `errors.As` it out of a
// wrapped chain the way the teacher's schema.Changes-style values do.
type ErrorContext struct {
	Code     ErrorCode
	SQLSTATE string
	Message  string
	Detail   string
	Hint     string
	Context  string
	Position int // 0 means absent; PostgreSQL positions are 1-based.
}

// NewErrorContext builds a bare ErrorContext carrying only a code — used
// for connection-level failures that have no SQLSTATE to report.
func NewErrorContext(code ErrorCode, message string) *ErrorContext {
	return &ErrorContext{Code: code, Message: message}
}

// Error implements the error interface with the text layout spec §6 fixes:
// "[<CodeName>] SQLSTATE <sqlstate>: <message>" followed by newline-prefixed
// Detail/Hint/Context/Position sections when present.
func (e *ErrorContext) Error() string {
	var b strings.Builder
	b.WriteByte('[')
	b.WriteString(e.Code.String())
	b.WriteString("] ")
	if e.SQLSTATE != "" {
		b.WriteString("SQLSTATE ")
		b.WriteString(e.SQLSTATE)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Detail != "" {
		b.WriteString("\nDetail: ")
		b.WriteString(e.Detail)
	}
	if e.Hint != "" {
		b.WriteString("\nHint: ")
		b.WriteString(e.Hint)
	}
	if e.Context != "" {
		b.WriteString("\nContext: ")
		b.WriteString(e.Context)
	}
	if e.Position != 0 {
		b.WriteString("\nPosition: ")
		b.WriteString(strconv.Itoa(e.Position))
	}
	return b.String()
}

// MapSQLSTATE implements §4.11's table-driven mapping, transcribed verbatim
// from the original's map_sqlstate (postgres_errors.cpp): first the class
// (first two characters) selects a default code, then exact codes override
// inside the class. Success (class "00", or an empty string) maps to
// CodeNone, never a synthetic success code, per spec.
func MapSQLSTATE(sqlstate string) ErrorCode {
	if sqlstate == "" || sqlstate == "00000" {
		return CodeNone
	}
	class := sqlstate
	if len(class) >= 2 {
		class = sqlstate[:2]
	}
	switch class {
	case "00":
		return CodeNone
	case "08":
		switch sqlstate {
		case "08000":
			return CodeConnectionError
		case "08003":
			return CodeNotConnected
		case "08006":
			return CodeConnectionLost
		case "08P01":
			return CodeProtocolViolation
		default:
			return CodeConnectionError
		}
	case "0A":
		return CodeInvalidOption
	case "20":
		return CodeObjectNotFound
	case "21":
		return CodeDataError
	case "22":
		switch sqlstate {
		case "22000":
			return CodeDataError
		case "22001":
			return CodeDataTooLong
		case "22002":
			return CodeDataError // NULL-conversion; postgres.FieldView uses this code directly, not via MapSQLSTATE.
		case "22003":
			return CodeNumericOverflow
		case "22007", "22008":
			return CodeInvalidDatetime
		case "22012":
			return CodeDivisionByZero
		case "22P02", "22P04":
			return CodeInvalidTextFormat
		case "22P03":
			return CodeInvalidEncoding
		default:
			return CodeDataError
		}
	case "23":
		switch sqlstate {
		case "23502":
			return CodeNotNullViolation
		case "23503":
			return CodeForeignKeyViolation
		case "23505":
			return CodeUniqueViolation
		case "23514":
			return CodeCheckViolation
		case "23P01":
			return CodeExclusionViolation
		default:
			return CodeConstraintViolation
		}
	case "24":
		return CodeInvalidState
	case "25":
		switch sqlstate {
		case "25001", "25P02":
			return CodeTransactionActive
		case "25P01", "25P03":
			return CodeNoActiveTransaction
		default:
			return CodeInvalidState
		}
	case "26":
		return CodeInvalidArgument
	case "28":
		return CodeAuthenticationError
	case "2B":
		return CodeConstraintViolation
	case "2D":
		return CodeTransactionError
	case "2F":
		return CodeRuntimeError
	case "34":
		return CodeInvalidArgument
	case "38", "39":
		return CodeRuntimeError
	case "3B":
		return CodeTransactionError
	case "3D":
		return CodeDatabaseNotFound
	case "3F":
		return CodeSchemaNotFound
	case "40":
		switch sqlstate {
		case "40001":
			return CodeSerializationFailure
		case "40002", "40003":
			return CodeTransactionAborted
		case "40P01":
			return CodeDeadlockDetected
		default:
			return CodeTransactionRollback
		}
	case "42":
		switch sqlstate {
		case "42501":
			return CodePermissionDenied
		case "42601":
			return CodeSyntaxError
		case "42703":
			return CodeColumnNotFound
		case "42704":
			return CodeObjectNotFound
		case "42804", "42846", "42P18":
			return CodeTypeMismatch
		case "42830":
			return CodePermissionDenied
		case "42883":
			return CodeFunctionNotFound
		case "42P01":
			return CodeTableNotFound
		case "42P02":
			return CodeInvalidParameter
		case "42P04":
			return CodeDatabaseNotFound
		case "42P06", "42P15":
			return CodeSchemaNotFound
		default:
			return CodeSyntaxError
		}
	case "44":
		return CodeCheckViolation
	case "53":
		switch sqlstate {
		case "53100":
			return CodeDiskFull
		case "53200":
			return CodeOutOfMemory
		case "53300":
			return CodeTooManyConnections
		case "53400":
			return CodeConfigurationLimit
		default:
			return CodeResourceError
		}
	case "54":
		switch sqlstate {
		case "54001":
			return CodeQueryTooComplex
		case "54011", "54023":
			return CodeTooManyConnections
		default:
			return CodeConfigurationLimit
		}
	case "55":
		switch sqlstate {
		case "55P02", "55P03":
			return CodeLockTimeout
		default:
			return CodeInvalidState
		}
	case "57":
		switch sqlstate {
		case "57014":
			return CodeStatementTimeout
		case "57P01", "57P02", "57P03", "57P04", "57P05":
			return CodeConnectionError
		default:
			return CodeRuntimeError
		}
	case "58":
		switch sqlstate {
		case "58030":
			return CodeCorruptionDetected
		default:
			return CodeInternalError
		}
	case "F0":
		return CodeConfigurationError
	case "HV":
		return CodeRuntimeError
	case "P0":
		switch sqlstate {
		case "P0002":
			return CodeObjectNotFound
		case "P0003":
			return CodeDataError
		case "P0004":
			return CodeInvalidParameter
		default:
			return CodeRuntimeError
		}
	case "XX":
		switch sqlstate {
		case "XX001", "XX002":
			return CodeCorruptionDetected
		default:
			return CodeInternalError
		}
	default:
		return CodeUnexpectedState
	}
}

// Diagnostic field identifiers mirroring libpq's PG_DIAG_* constants, used
// by NativeResult.ErrorField.
const (
	DiagSQLSTATE           byte = 'C'
	DiagMessagePrimary     byte = 'M'
	DiagMessageDetail      byte = 'D'
	DiagMessageHint        byte = 'H'
	DiagContext            byte = 'W'
	DiagStatementPosition  byte = 'P'
)

// errorFromResult builds an ErrorContext from a failed NativeResult's
// diagnostic fields, transcribing the original's extract_error: SQLSTATE
// drives the code via MapSQLSTATE, and every other diagnostic field is
// copied through verbatim.
func errorFromResult(r NativeResult) *ErrorContext {
	sqlstate := r.ErrorField(DiagSQLSTATE)
	ctx := &ErrorContext{
		Code:     MapSQLSTATE(sqlstate),
		SQLSTATE: sqlstate,
		Message:  r.ErrorField(DiagMessagePrimary),
		Detail:   r.ErrorField(DiagMessageDetail),
		Hint:     r.ErrorField(DiagMessageHint),
		Context:  r.ErrorField(DiagContext),
	}
	if ctx.Message == "" {
		ctx.Message = r.ErrorMessage()
	}
	if pos := r.ErrorField(DiagStatementPosition); pos != "" {
		if n, err := strconv.Atoi(pos); err == nil {
			ctx.Position = n
		}
	}
	return ctx
}

// connectionError builds an ErrorContext for a connection-level failure —
// the conn itself rejected the operation before a result was ever produced,
// mirroring the original's extract_connection_error.
func connectionError(conn NativeConn) *ErrorContext {
	if conn == nil {
		return NewErrorContext(CodeNotConnected, "no connection")
	}
	code := CodeRuntimeError
	if conn.Status() == StatusBad {
		code = CodeConnectionLost
	}
	msg := conn.ErrorMessage()
	if msg == "" {
		msg = "unknown connection error"
	}
	return NewErrorContext(code, msg)
}
