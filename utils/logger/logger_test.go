package logger

import (
	"bytes"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

type named struct{}

func (named) String() string { return "a-very-long-object-name-for-logging" }

type plain struct{}

func TestObjToString(t *testing.T) {
	t.Parallel()

	require.Equal(t, "NIL", objToString(nil))
	require.Equal(t, "walker", objToString("walker"))
	require.Equal(t, "a-very-long-object-n", objToString(named{}))
	require.Equal(t, "plain", objToString(&plain{}))
}

func TestLevelFiltering(t *testing.T) {
	prev := logrus.StandardLogger().Out
	defer logrus.SetOutput(prev)

	buf := new(bytes.Buffer)
	Init(logrus.InfoLevel, buf)

	Debugf("inspector", "hidden %d", 1)
	require.Empty(t, buf.String())

	Infof("inspector", "visible %d", 2)
	require.Contains(t, buf.String(), "|           inspector|visible 2")
}
