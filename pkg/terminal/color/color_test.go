package color

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWrap(t *testing.T) {
	saved := Enabled
	defer func() { Enabled = saved }()
	Enabled = true
	assert.Equal(t, "\033[1mNAME\033[0m", Bold.Wrap("NAME"))
	Enabled = false
	assert.Equal(t, "NAME", Bold.Wrap("NAME"))
}
