package errors

import (
	stderrors "errors"
	"strings"
	"testing"
)

func TestErrorFormat(t *testing.T) {
	err := NewInvalidRequest("bad argument")
	if got := err.Error(); got != "INVALID_REQUEST: bad argument" {
		t.Errorf("Error() = %q", got)
	}
}

func TestMalformedFrontmatterIncludesCause(t *testing.T) {
	cause := stderrors.New("yaml: line 3: mapping values are not allowed")
	err := NewMalformedFrontmatter(cause)
	if !strings.Contains(err.Message, "line 3") {
		t.Errorf("Message = %q, want the cause included", err.Message)
	}

	if err := NewMalformedFrontmatter(nil); strings.Contains(err.Message, "%!") {
		t.Errorf("nil cause mangled the message: %q", err.Message)
	}
}

func TestIs(t *testing.T) {
	err := NewNotBoard()
	if !Is(err, CodeNotBoard) {
		t.Error("Is should match the code")
	}
	if Is(err, CodeMissingFrontmatter) {
		t.Error("Is matched the wrong code")
	}
	if Is(stderrors.New("plain"), CodeNotBoard) {
		t.Error("Is matched a non-plank error")
	}
	if Is(nil, CodeNotBoard) {
		t.Error("Is matched nil")
	}
}

func TestUnsafePathDetails(t *testing.T) {
	err := NewUnsafePath("/tmp/out.html")
	if err.Details["path"] != "/tmp/out.html" {
		t.Errorf("Details = %v", err.Details)
	}
	if !Is(err, CodeUnsafePath) {
		t.Error("wrong code")
	}
}
