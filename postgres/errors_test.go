package postgres_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sqlforge/sqlforge/postgres"
)

func TestMapSQLSTATE_ExactCodesOverrideClass(t *testing.T) {
	cases := []struct {
		sqlstate string
		want     postgres.ErrorCode
	}{
		{"", postgres.CodeNone},
		{"00000", postgres.CodeNone},
		{"08006", postgres.CodeConnectionLost},
		{"08000", postgres.CodeConnectionError},
		{"22P02", postgres.CodeInvalidTextFormat},
		{"22000", postgres.CodeDataError},
		{"23505", postgres.CodeUniqueViolation},
		{"23503", postgres.CodeForeignKeyViolation},
		{"23000", postgres.CodeConstraintViolation}, // class default, no exact override
		{"40P01", postgres.CodeDeadlockDetected},
		{"40001", postgres.CodeSerializationFailure},
		{"42703", postgres.CodeColumnNotFound},
		{"42P01", postgres.CodeTableNotFound},
		{"57014", postgres.CodeStatementTimeout},
		{"XX001", postgres.CodeCorruptionDetected},
		{"99999", postgres.CodeUnexpectedState}, // unrecognized class
	}
	for _, c := range cases {
		require.Equalf(t, c.want, postgres.MapSQLSTATE(c.sqlstate), "sqlstate %q", c.sqlstate)
	}
}

func TestErrorCode_Family(t *testing.T) {
	require.Equal(t, postgres.ClientError, postgres.CodeInvalidState.Family())
	require.Equal(t, postgres.ServerError, postgres.CodeUniqueViolation.Family())
	require.Equal(t, postgres.FatalError, postgres.CodeProtocolViolation.Family())
}

func TestErrorContext_Error_FormatsAllSections(t *testing.T) {
	ec := &postgres.ErrorContext{
		Code:     postgres.CodeUniqueViolation,
		SQLSTATE: "23505",
		Message:  `duplicate key value violates unique constraint "users_pkey"`,
		Detail:   "Key (id)=(1) already exists.",
		Hint:     "",
		Context:  "",
		Position: 0,
	}
	require.Equal(t,
		"[UniqueViolation] SQLSTATE 23505: duplicate key value violates unique constraint \"users_pkey\"\n"+
			"Detail: Key (id)=(1) already exists.",
		ec.Error())
}

func TestErrorContext_Error_WithPosition(t *testing.T) {
	ec := &postgres.ErrorContext{
		Code:     postgres.CodeSyntaxError,
		SQLSTATE: "42601",
		Message:  "syntax error at or near \"FORM\"",
		Position: 15,
	}
	require.Contains(t, ec.Error(), "Position: 15")
}

func TestNewErrorContext_NoSQLSTATE(t *testing.T) {
	ec := postgres.NewErrorContext(postgres.CodeConnectionError, "connection refused")
	require.Equal(t, "[ConnectionError] connection refused", ec.Error())
	require.Empty(t, ec.SQLSTATE)
}
