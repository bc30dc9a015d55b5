package matching

import (
	"runtime"
	"sort"

	"golang.org/x/sync/errgroup"

	"neighborfit-engine/internal/domain"
)

// RankedListing is a listing annotated with its match score.
type RankedListing struct {
	domain.Listing
	MatchScore int `json:"matchScore"`
}

// RankResult is the filtered, sorted, truncated result set.
// TotalMatched counts listings that passed the minScore filter before the
// limit was applied (all scored listings when matching is disabled).
type RankResult struct {
	Listings     []RankedListing
	TotalMatched int
}

// Rank scores every listing, drops those under minScore, sorts by score
// descending (stable: equal scores keep their input order) and truncates to
// limit. Scoring is independent per listing, so it fans out across CPUs; the
// indexed scores slice keeps the output deterministic regardless of worker
// interleaving.
//
// When matching is disabled every listing gets DisabledScore, nothing is
// filtered, and input order is preserved.
func Rank(listings []domain.Listing, p Resolved, minScore, limit int) RankResult {
	scores := make([]int, len(listings))
	if p.EnableMatching {
		var g errgroup.Group
		g.SetLimit(runtime.GOMAXPROCS(0))
		for i := range listings {
			i := i
			g.Go(func() error {
				scores[i] = Score(listings[i], p)
				return nil
			})
		}
		_ = g.Wait() // workers never error
	} else {
		for i := range scores {
			scores[i] = DisabledScore
		}
	}

	ranked := make([]RankedListing, 0, len(listings))
	for i, l := range listings {
		if p.EnableMatching && scores[i] < minScore {
			continue
		}
		ranked = append(ranked, RankedListing{Listing: l, MatchScore: scores[i]})
	}
	total := len(ranked)

	if p.EnableMatching {
		sort.SliceStable(ranked, func(i, j int) bool {
			return ranked[i].MatchScore > ranked[j].MatchScore
		})
	}
	if limit > 0 && len(ranked) > limit {
		ranked = ranked[:limit]
	}

	return RankResult{Listings: ranked, TotalMatched: total}
}
