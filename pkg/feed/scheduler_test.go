package feed

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStartScheduler_EmptySpecDisables(t *testing.T) {
	s, err := StartScheduler("", nil)

	assert.NoError(t, err)
	assert.Nil(t, s)
	s.Stop()
}

func TestStartScheduler_InvalidSpec(t *testing.T) {
	svc, _, _, _ := newTestService(nil)

	_, err := StartScheduler("not a cron spec", svc)

	assert.Error(t, err)
}

func TestStartScheduler_ValidSpec(t *testing.T) {
	svc, _, _, _ := newTestService(nil)

	s, err := StartScheduler("0 */6 * * *", svc)

	assert.NoError(t, err)
	assert.NotNil(t, s)
	s.Stop()
}
