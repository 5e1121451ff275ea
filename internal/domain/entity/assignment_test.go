package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssignmentWindow(t *testing.T) {
	release, err := time.Parse(TimeLayout, "2021-02-01 00:00:00")
	require.NoError(t, err)
	due, err := time.Parse(TimeLayout, "2021-02-14 23:59:59")
	require.NoError(t, err)

	assignment := Assignment{Name: "os3224-assignment-1", ReleaseAt: release, DueAt: due}

	assert.False(t, assignment.Released(release.Add(-time.Second)))
	assert.True(t, assignment.Released(release))
	assert.True(t, assignment.Released(due))

	assert.False(t, assignment.Late(due))
	assert.True(t, assignment.Late(due.Add(time.Second)))
}
