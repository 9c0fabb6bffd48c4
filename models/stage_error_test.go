package models

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStageErrorWrapsCause(t *testing.T) {
	cause := errors.New("соединение разорвано")
	stageErr := NewStageError(StageLoad, time.Now().Add(-2*time.Second), cause)

	assert.Equal(t, StageLoad, stageErr.Stage)
	assert.GreaterOrEqual(t, stageErr.Elapsed, 2*time.Second)

	// Исходная ошибка доступна через errors.Is / errors.As
	assert.True(t, errors.Is(stageErr, cause))

	var unwrapped *StageError
	require.True(t, errors.As(error(stageErr), &unwrapped))
	assert.Equal(t, StageLoad, unwrapped.Stage)

	assert.Contains(t, stageErr.Error(), StageLoad)
	assert.Contains(t, stageErr.Error(), "соединение разорвано")
}
