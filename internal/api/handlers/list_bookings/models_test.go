package list_bookings

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToServiceRequest(t *testing.T) {
	req, err := ToServiceRequest("2026-05-16", "checked_in", "true")
	require.NoError(t, err)
	assert.True(t, req.Date.Equal(time.Date(2026, 5, 16, 0, 0, 0, 0, time.UTC)))
	require.NotNil(t, req.Status)
	assert.Equal(t, "checked_in", *req.Status)
	assert.True(t, req.IncludeInactive)

	req, err = ToServiceRequest("2026-05-16", "", "")
	require.NoError(t, err)
	assert.Nil(t, req.Status)
	assert.False(t, req.IncludeInactive)

	_, err = ToServiceRequest("", "", "")
	assert.Error(t, err)

	_, err = ToServiceRequest("2026-05-16", "", "maybe")
	assert.Error(t, err)
}
