package bolt

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rohancyriac029/reviewcord/models"
)

func createRepository(t *testing.T) (*PaperRepository, func()) {
	tmpFile, err := os.CreateTemp("", "")
	if err != nil {
		t.Fatal("could not create tmp file:", err)
	}

	filename := tmpFile.Name()
	driver := &Driver{}
	if err := driver.Open(filename); err != nil {
		os.Remove(filename)
		t.Fatalf("could not open bolt on file %s: %v", filename, err)
	}

	repo := &PaperRepository{Driver: driver}
	return repo, func() {
		driver.Close()
		os.Remove(filename)
	}
}

func TestRepository_Insert_Get(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	paper := models.Paper{
		Title:   "Test",
		Status:  models.StatusNotReviewed,
		AddedBy: "Alice",
	}
	require.NoError(t, repo.Insert(&paper))
	assert.NotZero(t, paper.ID, "insert should assign an id")
	assert.False(t, paper.AddedAt.IsZero(), "insert should stamp addedAt")

	retrieved, err := repo.Get(paper.ID)
	require.NoError(t, err)
	require.NotNil(t, retrieved)
	assert.Equal(t, paper.Title, retrieved.Title)
	assert.Equal(t, paper.AddedBy, retrieved.AddedBy)

	missing, err := repo.Get(paper.ID + 1)
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_List_Order(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	base := time.Now().Add(-time.Hour)
	for i, title := range []string{"first", "second", "third"} {
		p := models.Paper{
			Title:   title,
			Status:  models.StatusNotReviewed,
			AddedBy: "Alice",
			AddedAt: base.Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, repo.Insert(&p))
	}

	papers, err := repo.List()
	require.NoError(t, err)
	require.Len(t, papers, 3)

	// Most recent first.
	assert.Equal(t, "third", papers[0].Title)
	assert.Equal(t, "second", papers[1].Title)
	assert.Equal(t, "first", papers[2].Title)
}

func TestRepository_Update(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	paper := models.Paper{
		Title:   "Test",
		Status:  models.StatusNotReviewed,
		AddedBy: "Alice",
	}
	require.NoError(t, repo.Insert(&paper))

	notes := "read twice"
	updated, err := repo.Update(paper.ID, models.PaperUpdate{Notes: &notes})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "read twice", updated.Notes)
	assert.Equal(t, "Test", updated.Title, "untouched fields survive a partial update")
	assert.Equal(t, paper.ID, updated.ID)

	missing, err := repo.Update(paper.ID+1, models.PaperUpdate{Notes: &notes})
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestRepository_Update_ReviewedAt(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	paper := models.Paper{Title: "Test", Status: models.StatusNotReviewed, AddedBy: "Bob"}
	require.NoError(t, repo.Insert(&paper))

	// Reviewed without a reviewer name: no timestamp.
	reviewed := models.StatusReviewed
	updated, err := repo.Update(paper.ID, models.PaperUpdate{Status: &reviewed})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, models.StatusReviewed, updated.Status)
	assert.Nil(t, updated.ReviewedAt)

	// Reviewed with a reviewer name in the same update: stamped.
	reviewer := "Alice"
	updated, err = repo.Update(paper.ID, models.PaperUpdate{Status: &reviewed, ReviewedBy: &reviewer})
	require.NoError(t, err)
	require.NotNil(t, updated)
	assert.Equal(t, "Alice", updated.ReviewedBy)
	require.NotNil(t, updated.ReviewedAt)
	assert.WithinDuration(t, time.Now(), *updated.ReviewedAt, time.Minute)
}

func TestRepository_Delete(t *testing.T) {
	repo, f := createRepository(t)
	defer f()

	paper := models.Paper{Title: "Test", Status: models.StatusNotReviewed, AddedBy: "Alice"}
	require.NoError(t, repo.Insert(&paper))

	found, err := repo.Delete(paper.ID)
	require.NoError(t, err)
	assert.True(t, found)

	retrieved, err := repo.Get(paper.ID)
	require.NoError(t, err)
	assert.Nil(t, retrieved, "deleted paper should be gone")

	found, err = repo.Delete(paper.ID)
	require.NoError(t, err)
	assert.False(t, found)
}
