package gate

import "github.com/jonathan/resume-as-code/internal/types"

// SelectBest returns the index of the highest-scoring attempt: job alignment first,
// then style compliance, then the earliest attempt. It returns -1 for an empty slice.
// Attempts without a review score zero.
func SelectBest(attempts []types.AttemptRecord) int {
	best := -1
	for i := range attempts {
		if best < 0 || better(&attempts[i], &attempts[best]) {
			best = i
		}
	}
	return best
}

// better reports whether a strictly outranks b. Equal scores never win, so the
// earlier attempt is kept.
func better(a, b *types.AttemptRecord) bool {
	aAlign, aStyle := scores(a)
	bAlign, bStyle := scores(b)
	if aAlign != bAlign {
		return aAlign > bAlign
	}
	return aStyle > bStyle
}

func scores(r *types.AttemptRecord) (int, int) {
	if r.Review == nil {
		return 0, 0
	}
	return r.Review.JobAlignment, r.Review.StyleCompliance
}
