package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBufferQueuesAndDrains(t *testing.T) {
	buf := NewBuffer()

	buf.Success("Product created successfully")
	buf.Error("Failed to delete product")

	notices := buf.Drain()
	assert.Equal(t, []Notice{
		{Level: LevelSuccess, Message: "Product created successfully"},
		{Level: LevelError, Message: "Failed to delete product"},
	}, notices)

	assert.Empty(t, buf.Drain(), "drain empties the queue")
}
