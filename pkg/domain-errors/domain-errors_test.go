package domainerrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"
)

// DomainErrorsSuite tests the domain error primitives.
//
// Justification: These are core error primitives used at every trust boundary.
// Unit tests ensure invariants like "wrapped domain errors preserve original code"
// and "errors.Is matches by code" are maintained.
type DomainErrorsSuite struct {
	suite.Suite
}

func TestDomainErrorsSuite(t *testing.T) {
	suite.Run(t, new(DomainErrorsSuite))
}

func (s *DomainErrorsSuite) TestErrorInterface() {
	s.Run("returns message when present", func() {
		err := &Error{Code: CodeInsufficientFee, Message: "payment below pro-rated fee"}
		s.Equal("payment below pro-rated fee", err.Error())
	})

	s.Run("returns code when message is empty", func() {
		err := &Error{Code: CodeDuplicateBank}
		s.Equal("duplicate_bank", err.Error())
	})
}

func (s *DomainErrorsSuite) TestUnwrap() {
	s.Run("returns wrapped error", func() {
		inner := errors.New("journal append failed")
		err := &Error{Code: CodeInternal, Message: "service error", Err: inner}
		s.Equal(inner, err.Unwrap())
	})

	s.Run("works with errors.Unwrap", func() {
		inner := errors.New("root cause")
		err := &Error{Code: CodeInternal, Err: inner}
		s.Equal(inner, errors.Unwrap(err))
	})
}

func (s *DomainErrorsSuite) TestIsMatching() {
	s.Run("matches by code only", func() {
		err1 := &Error{Code: CodeNotFound, Message: "customer not found"}
		err2 := &Error{Code: CodeNotFound, Message: "bank not found"}
		s.True(err1.Is(err2))
	})

	s.Run("does not match different codes", func() {
		err1 := &Error{Code: CodeDuplicateAccountID}
		err2 := &Error{Code: CodeAlreadyOnboarded}
		s.False(err1.Is(err2))
	})

	s.Run("does not match non-domain errors", func() {
		err1 := &Error{Code: CodeNotFound}
		err2 := errors.New("not found")
		s.False(err1.Is(err2))
	})
}

func (s *DomainErrorsSuite) TestWrapPreservesCode() {
	s.Run("wrapping a domain error keeps the original code", func() {
		inner := New(CodeRatingOutOfRange, "rating must be between 1 and 10")
		wrapped := Wrap(inner, CodeInternal, "rate customer failed")
		s.True(HasCode(wrapped, CodeRatingOutOfRange))
		s.False(HasCode(wrapped, CodeInternal))
	})

	s.Run("wrapping a plain error applies the new code", func() {
		inner := errors.New("io failure")
		wrapped := Wrap(inner, CodeInternal, "journal write failed")
		s.True(HasCode(wrapped, CodeInternal))
		s.True(errors.Is(wrapped, inner))
	})
}

func (s *DomainErrorsSuite) TestHasCode() {
	s.Run("nil error has no code", func() {
		s.False(HasCode(nil, CodeNotFound))
	})

	s.Run("finds code through wrapping layers", func() {
		err := Wrap(New(CodeInsufficientFee, "fee too low"), CodeInternal, "onboarding failed")
		s.True(HasCode(err, CodeInsufficientFee))
	})
}
