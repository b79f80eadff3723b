package wardrobe

import (
	"strings"

	apperrors "github.com/yanqian/wardrobe-advisor/pkg/errors"
)

// ExtractReferences returns the references that appear verbatim in reply,
// in their original order. Matching is an exact, case-sensitive substring test.
func ExtractReferences(reply string, refs []string) ([]string, error) {
	out := make([]string, 0, len(refs))
	for _, ref := range refs {
		if strings.Contains(reply, ref) {
			out = append(out, ref)
		}
	}
	if len(out) == 0 {
		return nil, apperrors.Wrap(apperrors.CodeInsufficientRecommendations, "Not enough items were recommended. Please try again.", nil)
	}
	return out, nil
}
