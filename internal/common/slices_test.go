package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSortedKeys(t *testing.T) {
	m := map[int]string{3: "c", -2: "a", 60: "d", 0: "b"}
	assert.Equal(t, []int{-2, 0, 3, 60}, SortedKeys(m))
	assert.Empty(t, SortedKeys(map[int]int(nil)))
}
