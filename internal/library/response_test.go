package library

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResponseConstructors(t *testing.T) {
	ok := OK(42)
	assert.Equal(t, StatusSuccess, ok.Status)
	assert.Equal(t, 42, ok.Result)
	assert.True(t, ok.Succeeded())

	fail := Fail[string](StatusBadRequest)
	assert.Equal(t, StatusBadRequest, fail.Status)
	assert.Zero(t, fail.Result)
	assert.False(t, fail.Succeeded())
}

func TestNonSuccessStatusesNeverSucceed(t *testing.T) {
	for _, status := range []Status{StatusBadRequest, StatusConnectionIssue, StatusTimeout} {
		assert.False(t, Fail[Unit](status).Succeeded(), string(status))
	}
}
