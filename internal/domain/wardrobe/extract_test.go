package wardrobe

import (
	"testing"

	"github.com/stretchr/testify/require"

	apperrors "github.com/yanqian/wardrobe-advisor/pkg/errors"
)

func TestExtractReferencesKeepsInputOrder(t *testing.T) {
	got, err := ExtractReferences("Pair u3 with u1 for clear sky.", []string{"u1", "u2", "u3"})
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u3"}, got)
}

func TestExtractReferencesKeepsDuplicates(t *testing.T) {
	got, err := ExtractReferences("take u1", []string{"u1", "u2", "u1"})
	require.NoError(t, err)
	require.Equal(t, []string{"u1", "u1"}, got)
}

func TestExtractReferencesIsCaseSensitive(t *testing.T) {
	_, err := ExtractReferences("see HTTP://X/A.JPG", []string{"http://x/a.jpg"})
	require.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientRecommendations))
}

func TestExtractReferencesExactQuery(t *testing.T) {
	refs := []string{"http://x/a.jpg?size=3", "http://x/b.jpg"}
	_, err := ExtractReferences("wear http://x/a.jpg?size=2 today", refs)
	require.True(t, apperrors.IsCode(err, apperrors.CodeInsufficientRecommendations))

	got, err := ExtractReferences("wear http://x/a.jpg?size=3 today", refs)
	require.NoError(t, err)
	require.Equal(t, []string{"http://x/a.jpg?size=3"}, got)
}

func TestExtractReferencesNoMatch(t *testing.T) {
	got, err := ExtractReferences("I cannot help with that.", []string{"u1"})
	require.Nil(t, got)
	require.Error(t, err)
	require.Equal(t, "Not enough items were recommended. Please try again.", err.Error())
}
