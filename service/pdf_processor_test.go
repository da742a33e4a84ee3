package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortByPage(t *testing.T) {
	names := []string{
		"source_10_Im0.png",
		"source_1_Im0.png",
		"source_1_Im1.jpg",
		"source_2_Im0.png",
		"thumbnail.png",
		"source_9_Im3.tif",
	}

	assert.Equal(t, []string{
		"source_1_Im0.png",
		"source_1_Im1.jpg",
		"source_2_Im0.png",
		"source_9_Im3.tif",
		"source_10_Im0.png",
		"thumbnail.png",
	}, sortByPage(names))

	assert.Equal(t, "source_10_Im0.png", names[0], "input is not reordered")
	assert.Empty(t, sortByPage(nil))
}
