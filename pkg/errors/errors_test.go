package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestNewUserNotFoundError(t *testing.T) {
	err := NewUserNotFoundError()

	assert.Equal(t, "User Not Found", err.Error())
	assert.Equal(t, codes.NotFound, err.GRPCStatus().Code())

	st, ok := status.FromError(err)
	assert.True(t, ok)
	assert.Equal(t, codes.NotFound, st.Code())
	assert.Equal(t, "User Not Found", st.Message())
}

func TestClassification(t *testing.T) {
	wrappedNotFound := fmt.Errorf("lookup: %w", NewUserNotFoundError())
	wrappedExists := fmt.Errorf("insert: %w", NewAlreadyExistsError("user", ""))
	wrappedInvalid := fmt.Errorf("bind: %w", NewValidationError("id", "must be a number"))

	assert.True(t, IsNotFound(wrappedNotFound))
	assert.False(t, IsNotFound(wrappedExists))

	assert.True(t, IsAlreadyExists(wrappedExists))
	assert.Equal(t, "user already exists", NewAlreadyExistsError("user", "").Error())

	assert.True(t, IsValidation(wrappedInvalid))
	assert.Equal(t, "validation failed: id - must be a number", NewValidationError("id", "must be a number").Error())
}

func TestInternalError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewInternalError("failed to reach storage", cause)

	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "failed to reach storage: connection refused", err.Error())
	assert.Equal(t, codes.Internal, err.GRPCStatus().Code())
	assert.Equal(t, "failed to reach storage", err.GRPCStatus().Message())
}
