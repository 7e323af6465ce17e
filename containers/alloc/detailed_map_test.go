package alloc

import (
	"encoding/json"
	"testing"

	"github.com/launchdarkly/go-jsonstream/v3/jwriter"
	"github.com/stretchr/testify/require"
)

type detailedMap struct {
	Name        string `json:"name"`
	Capacity    int    `json:"capacity"`
	Allocated   int    `json:"allocated"`
	Free        int    `json:"free"`
	LargestFree int    `json:"largestFree"`
	FreeRanges  []struct {
		Offset int `json:"offset"`
		Size   int `json:"size"`
	} `json:"freeRanges"`
}

func Test_DetailedMap(t *testing.T) {
	ba := newTestAllocator(t, 100)
	a := mustAlloc(t, ba, 30)
	_ = mustAlloc(t, ba, 40)
	require.NoError(t, ba.Free(a))
	_ = mustAlloc(t, ba, 10)

	raw, err := ba.DetailedMap()
	require.NoError(t, err)

	var m detailedMap
	require.NoError(t, json.Unmarshal(raw, &m), "output: %s", raw)
	require.Equal(t, "test", m.Name)
	require.Equal(t, 100, m.Capacity)
	require.Equal(t, 50, m.Allocated)
	require.Equal(t, 50, m.Free)
	require.Equal(t, 30, m.LargestFree)
	require.Len(t, m.FreeRanges, 2)
	require.Equal(t, 10, m.FreeRanges[0].Offset)
	require.Equal(t, 20, m.FreeRanges[0].Size)
	require.Equal(t, 70, m.FreeRanges[1].Offset)
	require.Equal(t, 30, m.FreeRanges[1].Size)
}

func Test_DetailedMap_OmitsEmptyName(t *testing.T) {
	ba, err := New(8, nil)
	require.NoError(t, err)

	w := jwriter.NewWriter()
	ba.WriteDetailedMap(&w)
	require.NoError(t, w.Error())
	require.NotContains(t, string(w.Bytes()), `"name"`)
	require.Contains(t, string(w.Bytes()), `"freeRanges":[{"offset":0,"size":8}]`)
}
