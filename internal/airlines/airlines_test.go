package airlines

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestListKeepsHomeGroupOrderAndMergesExtras(t *testing.T) {
	merged := List([]string{"ua", "LH", " a3 "})

	assert.Equal(t, HomeGroup, merged[:len(HomeGroup)])
	assert.Contains(t, merged, "UA")
	assert.Contains(t, merged, "A3")
	// LH is already in the home group and must not repeat.
	assert.Len(t, merged, len(HomeGroup)+2)
}

func TestCSVRespectsOrder(t *testing.T) {
	csv := CSV(List(nil))
	assert.True(t, strings.HasPrefix(csv, "LH,LX,OS"))
}

func TestStarAllianceIsWiderThanHomeGroup(t *testing.T) {
	widened := StarAlliance()

	assert.Greater(t, len(widened), len(HomeGroup))
	for _, code := range HomeGroup {
		assert.Contains(t, widened, code)
	}
	assert.Contains(t, widened, "UA")
}
