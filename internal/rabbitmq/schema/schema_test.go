package schema

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEmailTaskRoundtrip(t *testing.T) {
	task := EmailTask{
		To:      "test@test.test",
		Subject: "Reset Your Password",
		Body:    "Follow the link.",
	}

	data, err := task.Marshal()
	require.NoError(t, err)

	decoded := EmailTask{}
	require.NoError(t, decoded.Unmarshal(data))
	require.Equal(t, task, decoded)
}
