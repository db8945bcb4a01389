package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-nuzlocke/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestNewError() {
	testCases := []struct {
		name     string
		code     errors.Code
		message  string
		expected string
	}{
		{
			name:     "not found error",
			code:     errors.CodeNotFound,
			message:  "run not found",
			expected: "NOT_FOUND: run not found",
		},
		{
			name:     "failed precondition error",
			code:     errors.CodeFailedPrecondition,
			message:  "no battle in progress",
			expected: "FAILED_PRECONDITION: no battle in progress",
		},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			err := errors.New(tc.code, tc.message)
			s.Equal(tc.expected, err.Error())
			s.Equal(tc.code, err.Code)
			s.Equal(tc.message, err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWithMeta() {
	err := errors.NotFound("run not found").
		WithMeta("run_id", "run_123").
		WithMeta("area", 16)

	s.Equal("run_123", err.Meta["run_id"])
	s.Equal(16, err.Meta["area"])
	s.Equal(err.Meta, errors.GetMeta(fmt.Errorf("outer: %w", err)))
}

func (s *ErrorsTestSuite) TestWrap() {
	s.Run("plain error becomes internal", func() {
		baseErr := fmt.Errorf("connection refused")
		wrapped := errors.Wrap(baseErr, "failed to load run")

		s.Equal(errors.CodeInternal, wrapped.Code)
		s.Equal("failed to load run", wrapped.Message)
		s.Equal(baseErr, wrapped.Unwrap())
	})

	s.Run("code is preserved", func() {
		baseErr := errors.NotFound("run not found").WithMeta("run_id", "run_1")
		wrapped := errors.Wrapf(baseErr, "failed to get run %s", "run_1")

		s.True(errors.IsNotFound(wrapped))
		s.Equal("run_1", wrapped.Meta["run_id"])
		s.Contains(wrapped.Error(), "failed to get run run_1")
	})

	s.Run("nil stays nil", func() {
		s.Nil(errors.Wrap(nil, "ignored"))
		s.Nil(errors.WrapWithCode(nil, errors.CodeInternal, "ignored"))
	})

	s.Run("code is replaced", func() {
		wrapped := errors.WrapWithCode(fmt.Errorf("bad yaml"), errors.CodeInvalidArgument, "invalid species table")
		s.True(errors.IsInvalidArgument(wrapped))
	})
}

func (s *ErrorsTestSuite) TestIs() {
	err := fmt.Errorf("context: %w", errors.FailedPrecondition("battle in progress"))

	s.True(errors.Is(err, errors.FailedPrecondition("")))
	s.False(errors.Is(err, errors.NotFound("")))
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	testCases := []struct {
		name     string
		err      error
		grpcCode codes.Code
		code     errors.Code
	}{
		{"invalid argument", errors.InvalidArgument("slot is required"), codes.InvalidArgument, errors.CodeInvalidArgument},
		{"not found", errors.NotFound("run not found"), codes.NotFound, errors.CodeNotFound},
		{"failed precondition", errors.FailedPrecondition("battle in progress"), codes.FailedPrecondition, errors.CodeFailedPrecondition},
		{"plain error", fmt.Errorf("boom"), codes.Internal, errors.CodeInternal},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			grpcErr := errors.ToGRPCError(tc.err)
			st, ok := status.FromError(grpcErr)
			s.Require().True(ok)
			s.Equal(tc.grpcCode, st.Code())

			back := errors.FromGRPCError(grpcErr)
			s.Equal(tc.code, errors.GetCode(back))
		})
	}

	s.Nil(errors.ToGRPCError(nil))
	s.Nil(errors.FromGRPCError(nil))
}
