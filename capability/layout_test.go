package capability

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/require"
)

// The golden file pins the combined layout down to exact offsets. A
// change here means the physical layout of combined configurations
// changed, which is an ABI-level event worth noticing in review.
func TestDescribe_GoldenLayout(t *testing.T) {
	b := Combine3(emptyA{}, counterFrag{}, lockFrag{})
	l, err := Describe(&b)
	require.NoError(t, err)

	data, err := json.MarshalIndent(l, "", "  ")
	require.NoError(t, err)

	g := goldie.New(t)
	g.Assert(t, "combine3_layout", data)
}
