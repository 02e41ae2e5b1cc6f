package logging

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_RejectsUnknownLevel(t *testing.T) {
	_, err := New("chatty", false)
	require.Error(t, err)
}

func TestNew_BuildsBothModes(t *testing.T) {
	for _, dev := range []bool{false, true} {
		l, err := New("debug", dev)
		require.NoError(t, err)
		require.NotNil(t, l)
	}
}

func TestOrNop(t *testing.T) {
	require.NotNil(t, OrNop(nil))
}
