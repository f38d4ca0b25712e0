package models

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkResult_MarshalAlive(t *testing.T) {
	link := ResolvedLink{
		OriginalURL:  "https://example.com/file.zip",
		EffectiveURL: "https://example.com/file.zip",
	}
	response := BatchResponse{Results: []LinkResult{Alive(link, 200, 5000)}}

	data, err := json.Marshal(response)
	require.NoError(t, err)

	assert.Equal(t,
		`{"results":[{"statusCode":200,"isAlive":true,"sizeInBytes":5000,"url":"https://example.com/file.zip","checkedUrl":"https://example.com/file.zip","headers":{}}]}`,
		string(data),
	)
}

func TestLinkResult_MarshalDead(t *testing.T) {
	link := ResolvedLink{
		OriginalURL:  "https://driveindex.ga/a",
		EffectiveURL: "https://hashhackers.com/a",
		ExtraHeaders: map[string]string{"referer": "hashhackers.com"},
	}

	data, err := json.Marshal(Alive(link, 404, UnknownSize()))
	require.NoError(t, err)

	assert.Equal(t,
		`{"statusCode":404,"isAlive":false,"sizeInBytes":null,"url":"https://driveindex.ga/a","checkedUrl":"https://hashhackers.com/a","headers":{"referer":"hashhackers.com"}}`,
		string(data),
	)
}

func TestLinkResult_MarshalUnreachable(t *testing.T) {
	link := ResolvedLink{OriginalURL: "https://example.com", EffectiveURL: "https://example.com"}

	data, err := json.Marshal(Unreachable(link, "context deadline exceeded"))
	require.NoError(t, err)

	assert.Equal(t, `{"statusCode":504,"body":"context deadline exceeded","url":"https://example.com"}`, string(data))
}

func TestLinkResult_UnmarshalBothShapes(t *testing.T) {
	var response BatchResponse
	err := json.Unmarshal([]byte(`{"results":[
		{"statusCode":200,"isAlive":true,"sizeInBytes":null,"url":"a","checkedUrl":"b","headers":{}},
		{"statusCode":504,"body":"boom","url":"c"}
	]}`), &response)
	require.NoError(t, err)
	require.Len(t, response.Results, 2)

	alive := response.Results[0]
	assert.False(t, alive.Failed())
	assert.True(t, alive.IsAlive)
	assert.Equal(t, "b", alive.CheckedURL)
	assert.True(t, math.IsNaN(float64(alive.SizeInBytes)))

	dead := response.Results[1]
	assert.True(t, dead.Failed())
	assert.Equal(t, 504, dead.StatusCode)
	assert.Equal(t, "boom", dead.Body)
	assert.Equal(t, "c", dead.URL)
}

func TestAlive_IsAliveRange(t *testing.T) {
	link := ResolvedLink{}
	for status, want := range map[int]bool{199: false, 200: true, 250: true, 299: true, 300: false, 404: false} {
		assert.Equal(t, want, Alive(link, status, 0).IsAlive, "status %d", status)
	}
}

func TestSize(t *testing.T) {
	assert.False(t, UnknownSize().Known())
	assert.True(t, Size(0).Known())

	data, err := json.Marshal(Size(1.5))
	require.NoError(t, err)
	assert.Equal(t, "1.5", string(data))

	data, err = json.Marshal(Size(math.Inf(1)))
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
