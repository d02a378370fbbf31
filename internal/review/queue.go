package review

import (
	"sort"

	"github.com/avelar/lexmem/internal/domain"
)

// OrderQueue returns the presentation order for a due set: ascending next
// review date (most overdue first), ties broken by ascending repetitions so
// less-practiced words surface earlier, then by word ID for a fully
// deterministic order.
//
// The input is not modified. The queue is recomputed from a fresh due set on
// every session start; it carries no cross-session state.
func OrderQueue(items []domain.ReviewItem) []domain.ReviewItem {
	queue := make([]domain.ReviewItem, len(items))
	copy(queue, items)

	sort.SliceStable(queue, func(i, j int) bool {
		if !queue[i].NextReviewDate.Equal(queue[j].NextReviewDate) {
			return queue[i].NextReviewDate.Before(queue[j].NextReviewDate)
		}
		if queue[i].Repetitions != queue[j].Repetitions {
			return queue[i].Repetitions < queue[j].Repetitions
		}
		return queue[i].WordID.String() < queue[j].WordID.String()
	})

	return queue
}
