package errors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestWrap_UnwrapsToCause(t *testing.T) {
	cause := fmt.Errorf("permission denied")
	err := Wrap(cause, CategoryFileSystem, SeverityError, "failed to write page")

	require.ErrorIs(t, err, cause)
	require.Contains(t, err.Error(), "failed to write page")
	require.Contains(t, err.Error(), "permission denied")
}

func TestWithContext_AccumulatesFields(t *testing.T) {
	err := New(CategoryLoad, SeverityWarning, "document skipped").
		WithContext("path", "docs/bad.md").
		WithContext("reason", "invalid utf-8")

	require.Equal(t, "docs/bad.md", err.Context["path"])
	require.Equal(t, "invalid utf-8", err.Context["reason"])
}

func TestIsCategory(t *testing.T) {
	err := New(CategoryLink, SeverityWarning, "broken links found")

	require.True(t, IsCategory(err, CategoryLink))
	require.False(t, IsCategory(err, CategoryConfig))
	require.False(t, IsCategory(errors.New("plain"), CategoryLink))
}

func TestGetCategory_PlainErrorIsInternal(t *testing.T) {
	require.Equal(t, CategoryInternal, GetCategory(errors.New("plain")))
	require.Equal(t, CategoryGit, GetCategory(New(CategoryGit, SeverityError, "clone failed")))
}

func TestExitCodeFor(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	tests := []struct {
		name string
		err  error
		want int
	}{
		{"nil error", nil, 0},
		{"plain error", errors.New("boom"), 1},
		{"validation", ValidationError("missing source path"), 2},
		{"config", New(CategoryConfig, SeverityFatal, "bad config"), 7},
		{"git", New(CategoryGit, SeverityError, "clone failed"), 8},
		{"load error", New(CategoryLoad, SeverityError, "walk failed"), 11},
		{"serve", New(CategoryServe, SeverityError, "listen failed"), 12},
		{"internal", New(CategoryInternal, SeverityError, "bug"), 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, adapter.ExitCodeFor(tt.err))
		})
	}
}

func TestExitCodeFor_DegradedBuildReportsWarningsCode(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)

	brokenLinks := New(CategoryLink, SeverityWarning, "build completed with 1 broken link")
	require.Equal(t, ExitWarnings, adapter.ExitCodeFor(brokenLinks))

	skippedDoc := New(CategoryLoad, SeverityWarning, "1 document failed to load")
	require.Equal(t, ExitWarnings, adapter.ExitCodeFor(skippedDoc))

	// A hard link error is still a build failure, not a warning.
	hardFailure := New(CategoryLink, SeverityError, "link check aborted")
	require.Equal(t, 11, adapter.ExitCodeFor(hardFailure))
}

func TestFormatError_VerboseIncludesCause(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := Wrap(cause, CategoryNetwork, SeverityError, "failed to reach server")

	terse := NewCLIErrorAdapter(false, nil).FormatError(err)
	require.Contains(t, terse, "failed to reach server")
	require.NotContains(t, terse, "connection refused")

	verbose := NewCLIErrorAdapter(true, nil).FormatError(err)
	require.Contains(t, verbose, "connection refused")
}

func TestFormatError_ConfigErrorsShowBareMessage(t *testing.T) {
	adapter := NewCLIErrorAdapter(false, nil)
	err := New(CategoryConfig, SeverityFatal, "config file not found")

	require.Equal(t, "config file not found", adapter.FormatError(err))
}
