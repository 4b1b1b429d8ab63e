package bleve

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohancyriac029/reviewcord/models"
)

func createIndex(t *testing.T) *PaperIndex {
	index := &PaperIndex{}
	path := filepath.Join(t.TempDir(), "papers.bleve")
	if err := index.Open(path); err != nil {
		t.Fatalf("could not open index at %s: %v", path, err)
	}
	t.Cleanup(func() { index.Close() })
	return index
}

func TestIndex_Search(t *testing.T) {
	index := createIndex(t)

	papers := []models.Paper{
		{ID: 1, Title: "Attention Is All You Need", Authors: "Vaswani et al.", Status: models.StatusReviewed, Tags: []string{"transformers"}},
		{ID: 2, Title: "Deep Residual Learning for Image Recognition", Authors: "He et al.", Status: models.StatusNotReviewed},
		{ID: 3, Title: "Attention-based Speech Recognition", Authors: "Chan et al.", Status: models.StatusNotReviewed},
	}
	for i := range papers {
		require.NoError(t, index.Index(&papers[i]))
	}

	ids, err := index.Search("attention", "")
	require.NoError(t, err)
	assert.ElementsMatch(t, []int{1, 3}, ids)

	ids, err = index.Search("attention", models.StatusNotReviewed)
	require.NoError(t, err)
	assert.Equal(t, []int{3}, ids)

	ids, err = index.Search("", models.StatusReviewed)
	require.NoError(t, err)
	assert.Equal(t, []int{1}, ids)

	ids, err = index.Search("", "")
	require.NoError(t, err)
	assert.Len(t, ids, 3)
}

func TestIndex_Delete(t *testing.T) {
	index := createIndex(t)

	paper := models.Paper{ID: 7, Title: "Generative Adversarial Networks", Status: models.StatusNotReviewed}
	require.NoError(t, index.Index(&paper))

	ids, err := index.Search("adversarial", "")
	require.NoError(t, err)
	assert.Equal(t, []int{7}, ids)

	require.NoError(t, index.Delete(7))

	ids, err = index.Search("adversarial", "")
	require.NoError(t, err)
	assert.Empty(t, ids)
}

func TestIndex_Reindex(t *testing.T) {
	index := createIndex(t)

	paper := models.Paper{ID: 4, Title: "BERT Pre-training", Status: models.StatusNotReviewed}
	require.NoError(t, index.Index(&paper))

	paper.Status = models.StatusInProgress
	require.NoError(t, index.Index(&paper))

	ids, err := index.Search("", models.StatusNotReviewed)
	require.NoError(t, err)
	assert.Empty(t, ids)

	ids, err = index.Search("", models.StatusInProgress)
	require.NoError(t, err)
	assert.Equal(t, []int{4}, ids)
}
