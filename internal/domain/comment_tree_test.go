package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func ptrInt64(v int64) *int64 {
	return &v
}

func TestBuildCommentTree(t *testing.T) {
	t.Run("empty input", func(t *testing.T) {
		assert.Empty(t, BuildCommentTree(nil))
		assert.Empty(t, BuildCommentTree([]Comment{}))
	})

	t.Run("nested replies", func(t *testing.T) {
		comments := []Comment{
			{ID: 1, Text: "root"},
			{ID: 2, ParentID: ptrInt64(1), Text: "reply to 1"},
			{ID: 3, ParentID: ptrInt64(1), Text: "another reply to 1"},
			{ID: 4, ParentID: ptrInt64(2), Text: "reply to 2"},
		}

		forest := BuildCommentTree(comments)
		require.Len(t, forest, 1)

		root := forest[0]
		assert.Equal(t, int64(1), root.Comment.ID)
		require.Len(t, root.Children, 2)
		assert.Equal(t, int64(2), root.Children[0].Comment.ID)
		assert.Equal(t, int64(3), root.Children[1].Comment.ID)

		require.Len(t, root.Children[0].Children, 1)
		assert.Equal(t, int64(4), root.Children[0].Children[0].Comment.ID)
		assert.Empty(t, root.Children[1].Children)
	})

	t.Run("orphan is dropped", func(t *testing.T) {
		comments := []Comment{
			{ID: 1, Text: "root"},
			{ID: 2, ParentID: ptrInt64(777), Text: "parent is gone"},
		}

		forest := BuildCommentTree(comments)
		require.Len(t, forest, 1)
		assert.Equal(t, int64(1), forest[0].Comment.ID)
		assert.Empty(t, forest[0].Children)
	})

	t.Run("roots keep input order", func(t *testing.T) {
		comments := []Comment{
			{ID: 5},
			{ID: 2},
			{ID: 9},
		}

		forest := BuildCommentTree(comments)
		require.Len(t, forest, 3)
		assert.Equal(t, int64(5), forest[0].Comment.ID)
		assert.Equal(t, int64(2), forest[1].Comment.ID)
		assert.Equal(t, int64(9), forest[2].Comment.ID)
	})
}

func TestCommentSubtreeIDs(t *testing.T) {
	comments := []Comment{
		{ID: 1},
		{ID: 2, ParentID: ptrInt64(1)},
		{ID: 3, ParentID: ptrInt64(1)},
		{ID: 4, ParentID: ptrInt64(2)},
		{ID: 5},
	}

	ids := CommentSubtreeIDs(1, comments)
	assert.ElementsMatch(t, []int64{1, 2, 3, 4}, ids)

	assert.Equal(t, []int64{5}, CommentSubtreeIDs(5, comments))
	assert.Equal(t, []int64{2, 4}, CommentSubtreeIDs(2, comments))
}
