package test

import (
	"math"
	"testing"
)

//
// Small expectation helpers shared by the package tests.  Each one
// reports through t.Errorf so a test can keep going and list every
// mismatch in one run
//

//
// ExpectSuccess accepts a bool (must be true) or an error (must be nil)
//

func ExpectSuccess(t *testing.T, v any) bool {

	t.Helper()

	switch v := v.(type) {
	default:
		t.Fatalf("unsupported type (%T) for expectation testing", v)
		return false

	case nil:
		return true

	case bool:
		if !v {
			t.Errorf("expected success (bool)")
			return false
		}

	case error:
		if v != nil {
			t.Errorf("expected success (error: %v)", v)
			return false
		}
	}

	return true
}

//
// ExpectFailure accepts a bool (must be false) or an error (must be
// non-nil).  A nil value is a failed expectation
//

func ExpectFailure(t *testing.T, v any) bool {

	t.Helper()

	switch v := v.(type) {
	default:
		t.Fatalf("unsupported type (%T) for expectation testing", v)
		return false

	case nil:
		t.Errorf("expected failure (nil)")
		return false

	case bool:
		if v {
			t.Errorf("expected failure (bool)")
			return false
		}

	case error:
		if v == nil {
			t.Errorf("expected failure (error)")
			return false
		}
	}

	return true
}

func ExpectEquality[T comparable](t *testing.T, value, expected T) bool {

	t.Helper()

	if value != expected {
		t.Errorf("equality test of type %T failed: %v (wanted %v)", value, value, expected)
		return false
	}

	return true
}

func ExpectInequality[T comparable](t *testing.T, value, unexpected T) bool {

	t.Helper()

	if value == unexpected {
		t.Errorf("inequality test of type %T failed: %v", value, value)
		return false
	}

	return true
}

//
// ExpectApproximate compares two numbers allowing a relative tolerance
//

func ExpectApproximate(t *testing.T, value, expected, tolerance float64) bool {

	t.Helper()

	if math.Abs(value-expected) > math.Abs(expected*tolerance) {
		t.Errorf("approximation test failed: %v (wanted %v within %v)", value, expected, tolerance)
		return false
	}

	return true
}
