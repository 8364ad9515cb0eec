// Package internal holds the small assertion helpers the arcade's tests
// share alongside testify.
package internal

import (
	"fmt"
	"testing"
	"time"
)

// FailureMessage reports a got/want mismatch
func FailureMessage(t *testing.T, got, want any) {
	t.Helper()
	t.Errorf("\nGot: %s\nwant: %s", describe(got), describe(want))
}

// TableFailureMessage reports a got/want mismatch for one case of a table
func TableFailureMessage(t *testing.T, caseName, got, want any) {
	t.Helper()
	t.Errorf("%s\nGot: %s\nWant: %s", caseName, describe(got), describe(want))
}

func describe(obj any) string {
	return fmt.Sprintf("%+v", obj)
}

// AssertNoError stops the test on an unexpected error
func AssertNoError(t *testing.T, err error) {
	t.Helper()

	if err != nil {
		t.Fatalf("Unexpected error: %s", err.Error())
	}
}

// AssertErrored stops the test when an error was expected but not returned
func AssertErrored(t *testing.T, err error) {
	t.Helper()

	if err == nil {
		t.Fatal("Expected an error, but got nil")
	}
}

// AssertEqual checks that comparable values are equal
func AssertEqual(t *testing.T, got, want any) {
	t.Helper()

	if got != want {
		FailureMessage(t, got, want)
	}
}

func AssertStringEquality(t *testing.T, got, want string) {
	t.Helper()
	if want != got {
		t.Errorf("got %q, want %q", got, want)
	}
}

func AssertTrue(t *testing.T, got bool) {
	t.Helper()

	if !got {
		t.Error("Expected to be true, but it wasn't")
	}
}

func AssertNotEmptyString(t *testing.T, got string) {
	t.Helper()

	if got == "" {
		t.Error("unexpected empty string")
	}
}

// Within fails the test if fn has not returned after d
func Within(t *testing.T, d time.Duration, fn func()) {
	t.Helper()

	done := make(chan struct{}, 1)
	go func() {
		fn()
		done <- struct{}{}
	}()

	select {
	case <-time.After(d):
		t.Errorf("timed out after %s", d)
	case <-done:
	}
}
