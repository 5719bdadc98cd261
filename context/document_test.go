package context

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitDocument_UnderChunkSizeStaysWhole(t *testing.T) {
	doc := &Document{Name: "small", Content: "tiny content"}
	docs := SplitDocument(doc)
	assert.Len(t, docs, 1)
	assert.Equal(t, 0, docs[0].Part)
}

func TestSplitDocument_OverChunkSizeSplits(t *testing.T) {
	doc := &Document{Name: "big", Content: strings.Repeat("x", chunkSize*2+10)}
	docs := SplitDocument(doc)
	assert.Greater(t, len(docs), 1)
	for i, d := range docs {
		assert.Equal(t, i+1, d.Part)
		assert.LessOrEqual(t, len(d.Content), chunkSize)
	}
}

func TestDocuments_FilterBySize(t *testing.T) {
	docs := Documents{
		{Name: "a", Content: strings.Repeat("a", 100)},
		{Name: "b", Content: strings.Repeat("b", 100)},
		{Name: "c", Content: strings.Repeat("c", 100)},
	}
	filtered := docs.FilterBySize(150)
	assert.Len(t, filtered, 1)
}

func TestHash_Deterministic(t *testing.T) {
	h1, err1 := Hash([]byte("same content"))
	h2, err2 := Hash([]byte("same content"))
	assert.NoError(t, err1)
	assert.NoError(t, err2)
	assert.Equal(t, h1, h2)

	h3, _ := Hash([]byte("different content"))
	assert.NotEqual(t, h1, h3)
}
