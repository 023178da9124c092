package infrastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPaperSize(t *testing.T) {
	assert.Equal(t, Paper{8.5, 11}, PaperSize("letter"))
	assert.Equal(t, Paper{8.27, 11.69}, PaperSize("a4"))
	assert.Equal(t, Paper{8.27, 11.69}, PaperSize("tabloid"))
}
