// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package selection

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/docmerge/pkg/types"
)

func doc(id, name string) types.Document {
	return types.Document{ID: id, Name: name}
}

func names(docs []types.Document) []string {
	out := make([]string, len(docs))
	for i, d := range docs {
		out[i] = d.Name
	}
	return out
}

func TestAppendPreservesOrder(t *testing.T) {
	s := NewStore()
	s.Append(doc("1", "a.docx"), doc("2", "b.docx"))
	s.Append(doc("3", "c.docx"))

	assert.Equal(t, []string{"a.docx", "b.docx", "c.docx"}, names(s.Documents()))
	assert.Equal(t, 3, s.Len())
}

func TestAppendPermitsDuplicateNames(t *testing.T) {
	s := NewStore()
	s.Append(doc("1", "a.docx"), doc("2", "a.docx"))
	assert.Equal(t, 2, s.Len())
}

func TestRemoveAt(t *testing.T) {
	s := NewStore()
	s.Append(doc("1", "a.docx"), doc("2", "b.docx"), doc("3", "c.docx"))

	require.True(t, s.RemoveAt(1))
	assert.Equal(t, []string{"a.docx", "c.docx"}, names(s.Documents()))
}

func TestRemoveAt_OutOfRange(t *testing.T) {
	s := NewStore()
	s.Append(doc("1", "a.docx"))

	assert.False(t, s.RemoveAt(-1))
	assert.False(t, s.RemoveAt(1))
	assert.Equal(t, 1, s.Len())
}

func TestRemoveByID(t *testing.T) {
	s := NewStore()
	s.Append(doc("1", "a.docx"), doc("2", "b.docx"))

	require.True(t, s.Remove("1"))
	assert.Equal(t, []string{"b.docx"}, names(s.Documents()))
	assert.False(t, s.Remove("1"))
}

func TestAppendThenRemoveFirst(t *testing.T) {
	// append(A), append(B), removeAt(0) leaves exactly [B].
	s := NewStore()
	s.Append(doc("a", "A.docx"))
	s.Append(doc("b", "B.docx"))
	require.True(t, s.RemoveAt(0))

	docs := s.Documents()
	require.Len(t, docs, 1)
	assert.Equal(t, "B.docx", docs[0].Name)
}

func TestDocumentsIsSnapshot(t *testing.T) {
	s := NewStore()
	s.Append(doc("1", "a.docx"))

	snap := s.Documents()
	s.Append(doc("2", "b.docx"))

	assert.Len(t, snap, 1)
	assert.Equal(t, 2, s.Len())
}

func TestClear(t *testing.T) {
	s := NewStore()
	s.Append(doc("1", "a.docx"))
	s.Clear()
	assert.Zero(t, s.Len())
}
