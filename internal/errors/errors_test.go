package errors_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/suite"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/KirkDiggler/rpg-spellchain/internal/errors"
)

type ErrorsTestSuite struct {
	suite.Suite
}

func TestErrorsSuite(t *testing.T) {
	suite.Run(t, new(ErrorsTestSuite))
}

func (s *ErrorsTestSuite) TestErrorString() {
	s.Equal("NOT_FOUND: chain firebolt not found", errors.NotFoundf("chain %s not found", "firebolt").Error())

	cause := fmt.Errorf("dial tcp: connection refused")
	s.Equal("UNAVAILABLE: redis is down: dial tcp: connection refused",
		errors.WrapWithCode(cause, errors.CodeUnavailable, "redis is down").Error())
}

func (s *ErrorsTestSuite) TestConstructors() {
	testCases := []struct {
		name string
		err  *errors.Error
		code errors.Code
	}{
		{"NotFound", errors.NotFound("test"), errors.CodeNotFound},
		{"InvalidArgument", errors.InvalidArgument("test"), errors.CodeInvalidArgument},
		{"AlreadyExists", errors.AlreadyExists("test"), errors.CodeAlreadyExists},
		{"Internal", errors.Internal("test"), errors.CodeInternal},
		{"Internalf", errors.Internalf("%s", "test"), errors.CodeInternal},
		{"Unavailable", errors.Unavailable("test"), errors.CodeUnavailable},
		{"OutOfRangef", errors.OutOfRangef("%s", "test"), errors.CodeOutOfRange},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			s.Equal(tc.code, tc.err.Code)
			s.Equal("test", tc.err.Message)
		})
	}
}

func (s *ErrorsTestSuite) TestWrap() {
	plain := fmt.Errorf("database connection failed")
	wrapped := errors.Wrap(plain, "failed to get chain")
	s.Equal(errors.CodeInternal, wrapped.Code)
	s.Equal(plain, wrapped.Unwrap())

	notFound := errors.NotFound("record not found")
	s.Equal(errors.CodeNotFound, errors.Wrapf(notFound, "chain %s", "firebolt").Code)

	recoded := errors.WrapWithCodef(notFound, errors.CodeInvalidArgument, "chain %s is referenced", "firebolt")
	s.Equal(errors.CodeInvalidArgument, recoded.Code)
	s.True(errors.IsNotFound(recoded.Unwrap()))

	s.Nil(errors.Wrap(nil, "should be nil"))
	s.Nil(errors.WrapWithCode(nil, errors.CodeNotFound, "should be nil"))
}

func (s *ErrorsTestSuite) TestWrapCopiesMeta() {
	base := errors.NotFound("chain not found").WithMeta("chain_id", "firebolt")
	wrapped := errors.Wrap(base, "load failed").WithMeta("caster_id", "ayla")

	s.Equal("firebolt", wrapped.Meta["chain_id"])
	s.Equal("ayla", wrapped.Meta["caster_id"])
	s.NotContains(base.Meta, "caster_id")
}

func (s *ErrorsTestSuite) TestIs() {
	s.True(errors.Is(errors.Wrap(errors.NotFound("a"), "b"), errors.NotFound("c")))
	s.False(errors.NotFound("a").Is(errors.InvalidArgument("a")))

	var target *errors.Error
	s.True(errors.As(errors.Wrap(errors.Unavailable("x"), "y"), &target))
	s.Equal(errors.CodeUnavailable, target.Code)
}

func (s *ErrorsTestSuite) TestHelpers() {
	s.Equal(errors.CodeOK, errors.GetCode(nil))
	s.Equal(errors.CodeInternal, errors.GetCode(fmt.Errorf("plain")))

	s.True(errors.IsNotFound(errors.Wrap(errors.NotFound("x"), "y")))
	s.True(errors.IsInvalidArgument(errors.InvalidArgumentf("bad %d", 1)))
	s.True(errors.IsOutOfRange(errors.OutOfRangef("step %d", 101)))
	s.True(errors.IsInternal(fmt.Errorf("plain")))
	s.True(errors.IsUnavailable(errors.Unavailable("down")))
	s.False(errors.IsNotFound(nil))

	s.Equal("wrapped message", errors.GetMessage(errors.Wrap(errors.NotFound("inner"), "wrapped message")))
	s.Equal("plain", errors.GetMessage(fmt.Errorf("plain")))
	s.Empty(errors.GetMessage(nil))
	s.Nil(errors.GetMeta(fmt.Errorf("plain")))
}

func (s *ErrorsTestSuite) TestGRPCRoundTrip() {
	err := errors.NotFound("chain not found").WithMeta("chain_id", "123")

	grpcErr := errors.ToGRPCError(err)
	st, ok := status.FromError(grpcErr)
	s.Require().True(ok)
	s.Equal(codes.NotFound, st.Code())
	s.Equal("chain not found", st.Message())

	back := errors.FromGRPCError(grpcErr)
	s.Equal(errors.CodeNotFound, errors.GetCode(back))
	s.Equal("123", errors.GetMeta(back)["chain_id"])

	plain := errors.FromGRPCError(status.Error(codes.Unavailable, "try later"))
	s.True(errors.IsUnavailable(plain))
	s.Equal("try later", errors.GetMessage(plain))

	s.Equal(codes.Internal, status.Code(errors.ToGRPCError(fmt.Errorf("boom"))))
	s.Nil(errors.ToGRPCError(nil))
	s.Nil(errors.FromGRPCError(nil))
}

func (s *ErrorsTestSuite) TestGRPCCodeMapping() {
	testCases := []struct {
		code     errors.Code
		expected codes.Code
	}{
		{errors.CodeNotFound, codes.NotFound},
		{errors.CodeInvalidArgument, codes.InvalidArgument},
		{errors.CodeAlreadyExists, codes.AlreadyExists},
		{errors.CodeOutOfRange, codes.OutOfRange},
		{errors.CodeInternal, codes.Internal},
		{errors.CodeUnavailable, codes.Unavailable},
		{errors.Code("SOMETHING_ELSE"), codes.Unknown},
	}

	for _, tc := range testCases {
		s.Run(tc.code.String(), func() {
			s.Equal(tc.expected, tc.code.GRPCCode())
		})
	}
}
