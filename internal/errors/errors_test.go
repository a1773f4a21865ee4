package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestClassifiedError(t *testing.T) {
	t.Run("Basic error creation", func(t *testing.T) {
		err := NewError(CategoryConfig, "invalid configuration").
			Fatal().
			File("site.yaml").
			Build()

		if err.Category() != CategoryConfig {
			t.Errorf("expected category %s, got %s", CategoryConfig, err.Category())
		}
		if !err.IsFatal() {
			t.Error("expected fatal severity")
		}
		file, ok := err.Context().GetString(ContextFile)
		if !ok || file != "site.yaml" {
			t.Errorf("expected context file=site.yaml, got %v", file)
		}
	})

	t.Run("Message includes context and cause", func(t *testing.T) {
		cause := errors.New("yaml: line 2: mapping values are not allowed")
		err := ParseError("buttons-rounded.mdx", cause).Build()

		msg := err.Error()
		if !strings.HasPrefix(msg, "[parse] malformed document") {
			t.Errorf("unexpected prefix: %s", msg)
		}
		if !strings.Contains(msg, "file=buttons-rounded.mdx") {
			t.Errorf("expected file in message: %s", msg)
		}
		if !strings.HasSuffix(msg, cause.Error()) {
			t.Errorf("expected cause in message: %s", msg)
		}
	})
}

func TestUnwrapAndDetection(t *testing.T) {
	cause := errors.New("boom")
	classified := CompileError("cards-basic.mdx", cause).Build()
	wrapped := fmt.Errorf("route cards/basic: %w", classified)

	if !errors.Is(wrapped, cause) {
		t.Error("expected wrapped error to reach the cause")
	}
	if !HasCategory(wrapped, CategoryCompile) {
		t.Error("expected compile category through fmt wrapping")
	}
	if got := GetCategory(errors.New("plain")); got != CategoryInternal {
		t.Errorf("expected internal category for plain errors, got %s", got)
	}
	if file, ok := GetFile(wrapped); !ok || file != "cards-basic.mdx" {
		t.Errorf("expected file from wrapped error, got %q", file)
	}
}

func TestWithContextDoesNotMutateOriginal(t *testing.T) {
	base := NotFoundError("document missing").Build()
	flagged := base.WithContext(ContextInvariant, true)

	if _, ok := base.Context().Get(ContextInvariant); ok {
		t.Error("original error context must stay untouched")
	}
	if v, _ := flagged.Context().Get(ContextInvariant); v != true {
		t.Error("expected invariant flag on copy")
	}
	if !errors.Is(flagged, base) {
		t.Error("copies with the same category and message should match")
	}
}

func TestValidationErrorCarriesField(t *testing.T) {
	err := ValidationError("seo.title", "required field is missing").Build()
	field, ok := err.Context().GetString(ContextField)
	if !ok || field != "seo.title" {
		t.Errorf("expected field seo.title, got %q", field)
	}
}
