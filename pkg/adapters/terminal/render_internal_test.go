package terminal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBodyColumns(t *testing.T) {
	// 350px over 8px cells is 43.75; the partial cell is dropped, then the border.
	assert.Equal(t, 41, bodyColumns())
}
