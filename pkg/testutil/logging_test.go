package testutil

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

func TestLoggingLevel(t *testing.T) {
	assert.Equal(t, logrus.DebugLevel, logrus.GetLevel())
	assert.True(t, logrus.IsLevelEnabled(logrus.DebugLevel))
	assert.False(t, logrus.IsLevelEnabled(logrus.TraceLevel))
}
