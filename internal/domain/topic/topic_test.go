package topic

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestForAge(t *testing.T) {
	topics := Default()

	six := ForAge(topics, 6)
	for _, tp := range six {
		assert.NotEqual(t, "body", tp.ID, "body parts start at age 7")
		assert.NotEqual(t, "weather", tp.ID, "weather starts at age 8")
	}

	eleven := ForAge(topics, 11)
	ids := make([]string, 0, len(eleven))
	for _, tp := range eleven {
		ids = append(ids, tp.ID)
	}
	assert.Contains(t, ids, "weather")
	assert.NotContains(t, ids, "colors")
}

func TestForAge_KeepsUnparseableRanges(t *testing.T) {
	topics := []Topic{{ID: "mystery", AgeRange: "all ages"}}
	assert.Len(t, ForAge(topics, 5), 1)
}

func TestFind(t *testing.T) {
	topics := Default()

	animals := Find(topics, "animals")
	require.NotNil(t, animals)
	assert.Equal(t, "Animals", animals.Title)

	assert.Nil(t, Find(topics, "dinosaurs"))
}
