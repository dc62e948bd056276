package oaserrors

import (
	"errors"
	"fmt"
	"testing"
)

func TestParseError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		cause := errors.New("underlying error")
		err := &ParseError{
			Path:    "/path/to/openapi.json",
			Line:    42,
			Column:  10,
			Message: "invalid syntax",
			Cause:   cause,
		}

		msg := err.Error()
		if msg != "parse error in /path/to/openapi.json at line 42, column 10: invalid syntax: underlying error" {
			t.Errorf("unexpected error message: %s", msg)
		}
	})

	t.Run("Error message with minimal fields", func(t *testing.T) {
		err := &ParseError{}
		if err.Error() != "parse error" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with line only", func(t *testing.T) {
		err := &ParseError{Line: 10}
		if err.Error() != "parse error at line 10" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap returns cause", func(t *testing.T) {
		cause := errors.New("underlying")
		err := &ParseError{Cause: cause}
		//nolint:errorlint // testing pointer identity
		if unwrapped := err.Unwrap(); unwrapped != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches only ErrParse", func(t *testing.T) {
		err := &ParseError{Message: "test"}
		if !errors.Is(err, ErrParse) {
			t.Error("ParseError should match ErrParse")
		}
		if errors.Is(err, ErrValidation) {
			t.Error("ParseError should not match ErrValidation")
		}
	})
}

func TestValidationError(t *testing.T) {
	t.Run("Error message with path and message", func(t *testing.T) {
		err := &ValidationError{
			Path:    "paths",
			Message: "must be an object",
		}
		expected := "validation error at paths: must be an object"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with field", func(t *testing.T) {
		err := &ValidationError{Path: "$", Field: "paths", Message: "is required"}
		if err.Error() != "validation error at $.paths: is required" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with cause", func(t *testing.T) {
		cause := errors.New("invalid format")
		err := &ValidationError{
			Path:  "paths",
			Cause: cause,
		}
		expected := "validation error at paths: invalid format"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
		//nolint:errorlint // testing pointer identity
		if err.Unwrap() != cause {
			t.Error("Unwrap should return cause")
		}
	})

	t.Run("Is matches ErrValidation", func(t *testing.T) {
		err := &ValidationError{Path: "test"}
		if !errors.Is(err, ErrValidation) {
			t.Error("ValidationError should match ErrValidation")
		}
		if errors.Is(err, ErrParse) {
			t.Error("ValidationError should not match ErrParse")
		}
	})

	t.Run("As extracts ValidationError with Value", func(t *testing.T) {
		err := fmt.Errorf("wrapped: %w", &ValidationError{
			Path:  "paths",
			Value: "sequence",
		})
		var valErr *ValidationError
		if !errors.As(err, &valErr) {
			t.Fatal("errors.As should succeed")
		}
		if valErr.Value != "sequence" {
			t.Errorf("unexpected value: %v", valErr.Value)
		}
	})
}

func TestResourceLimitError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ResourceLimitError{
			ResourceType: "inline_size",
			Limit:        1024,
			Actual:       2048,
			Message:      "use file input instead",
		}
		expected := "resource limit exceeded: inline_size (limit: 1024, actual: 2048): use file input instead"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message without actual", func(t *testing.T) {
		err := &ResourceLimitError{ResourceType: "inline_size", Limit: 10}
		if err.Error() != "resource limit exceeded: inline_size (limit: 10)" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Is matches ErrResourceLimit", func(t *testing.T) {
		if !errors.Is(&ResourceLimitError{}, ErrResourceLimit) {
			t.Error("ResourceLimitError should match ErrResourceLimit")
		}
	})
}

func TestConfigError(t *testing.T) {
	t.Run("Error message with all fields", func(t *testing.T) {
		err := &ConfigError{
			Option:  "format",
			Value:   "xml",
			Message: "must be json or yaml",
		}
		expected := "configuration error for format (value: xml): must be json or yaml"
		if err.Error() != expected {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Error message with option only", func(t *testing.T) {
		err := &ConfigError{Option: "endpoint"}
		if err.Error() != "configuration error for endpoint" {
			t.Errorf("unexpected error message: %s", err.Error())
		}
	})

	t.Run("Unwrap and Is", func(t *testing.T) {
		cause := errors.New("file not found")
		err := &ConfigError{Option: "config", Cause: cause}
		if !errors.Is(err, ErrConfig) {
			t.Error("ConfigError should match ErrConfig")
		}
		if !errors.Is(err, cause) {
			t.Error("ConfigError should unwrap to its cause")
		}
	})
}

func TestSentinelErrors(t *testing.T) {
	sentinels := []error{
		ErrParse,
		ErrValidation,
		ErrResourceLimit,
		ErrConfig,
	}

	for i, s1 := range sentinels {
		for j, s2 := range sentinels {
			if i != j && errors.Is(s1, s2) {
				t.Errorf("sentinel errors should be distinct: %v should not match %v", s1, s2)
			}
		}
	}
}

func TestErrorChaining(t *testing.T) {
	parseErr := &ParseError{Path: "api.yaml", Message: "invalid"}
	wrapped := fmt.Errorf("layer 2: %w", fmt.Errorf("layer 1: %w", parseErr))

	if !errors.Is(wrapped, ErrParse) {
		t.Error("deeply wrapped ParseError should match ErrParse")
	}

	var extracted *ParseError
	if !errors.As(wrapped, &extracted) {
		t.Fatal("errors.As should work through wrapping")
	}
	if extracted.Path != "api.yaml" {
		t.Errorf("unexpected path: %s", extracted.Path)
	}
}
