package shell

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReplaceEnvVars(t *testing.T) {
	t.Setenv("RTCDIR_TEST_VAR", "value1")

	require.Equal(t, "a value1 b", ReplaceEnvVars("a ${RTCDIR_TEST_VAR} b"))
	require.Equal(t, "def", ReplaceEnvVars("${RTCDIR_TEST_MISSING:def}"))
	require.Equal(t, "${RTCDIR_TEST_MISSING}", ReplaceEnvVars("${RTCDIR_TEST_MISSING}"))
}
