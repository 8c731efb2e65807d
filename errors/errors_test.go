package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConductorError(t *testing.T) {
	err := New(ErrCodeNotFound, "workspace not found")
	assert.Equal(t, ErrCodeNotFound, err.Code)

	cause := fmt.Errorf("broken pipe")
	wrapped := Wrap(cause, ErrCodeTransport, "roundtrip failed")
	assert.Equal(t, cause, wrapped.Unwrap())
	assert.True(t, Is(wrapped, ErrCodeTransport))
	assert.False(t, Is(wrapped, ErrCodeNotFound))

	detailed := err.WithDetail("ident", "1").WithDetail("display", "DP-1")
	assert.Equal(t, "DP-1", detailed.Details["display"])
}

func TestGetCodeThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("move failed: %w", UnknownDisplay("HDMI-A-1"))
	assert.Equal(t, ErrCodeUnknownDisplay, GetCode(err))
	assert.Equal(t, ErrorCode(""), GetCode(fmt.Errorf("plain")))
	assert.Equal(t, ErrorCode(""), GetCode(nil))
}

func TestErrorConstructors(t *testing.T) {
	err := Ambiguous("toplevel", "abc", 2, "")
	assert.Equal(t, ErrCodeAmbiguous, err.Code)
	assert.Equal(t, 2, err.Details["matches"])

	err = VersionTooOld("wl_output", 1, 2)
	assert.Equal(t, ErrCodeVersionTooOld, err.Code)
	assert.Equal(t, uint32(2), err.Details["minimum"])

	err = CapabilityGone("ext_workspace_manager_v1")
	assert.Contains(t, err.Error(), "removed")
}

func TestIsUserError(t *testing.T) {
	assert.True(t, IsUserError(NotFound("workspace", "3")))
	assert.True(t, IsUserError(InvalidInput("bad")))
	assert.False(t, IsUserError(ProtocolState("no cosmic handle")))
	assert.False(t, IsUserError(fmt.Errorf("plain")))
}
