package domain

import (
	"math"
	"sort"
	"strings"
)

const (
	// Scoring weights
	ScoreExactMatch     = 100.0
	ScorePrefixMatch    = 75.0
	ScoreSubstringMatch = 50.0
	ScoreFuzzyMatch     = 25.0

	// Position bonus (earlier is better)
	ScorePositionBonus = 10.0

	// Exact hotel code match bonus (huge boost)
	ScoreExactCodeBonus = 200.0

	// Destination matches count for less than name matches
	ScoreDestinationWeight = 0.5
)

// Candidate represents a hotel candidate with its match score
type Candidate struct {
	Hotel *Hotel  `json:"hotel"`
	Score float64 `json:"score"`
}

// Score calculates the match score for a hotel against a query
func Score(query *Query, hotel *Hotel) float64 {
	if query == nil || hotel == nil || len(query.Fragments) == 0 {
		return 0.0
	}

	if query.CodeLike && strings.EqualFold(query.Fragments[0], hotel.Code) {
		return ScoreExactMatch + ScoreExactCodeBonus
	}

	nameFragments := NameFragments(hotel.Name)
	destFragments := NameFragments(hotel.Destination)

	var totalScore float64
	for _, qFrag := range query.Fragments {
		best := bestFragmentScore(qFrag, nameFragments)
		if dest := bestFragmentScore(qFrag, destFragments) * ScoreDestinationWeight; dest > best {
			best = dest
		}
		// Every fragment must hit something: "conrad tokyo" must not match "Conrad Sydney"
		if best == 0.0 {
			return 0.0
		}
		totalScore += best
	}

	return totalScore
}

func bestFragmentScore(qFrag string, fragments []string) float64 {
	best := 0.0
	for i, frag := range fragments {
		if score := scoreFragment(qFrag, frag, i); score > best {
			best = score
		}
	}
	return best
}

// scoreFragment scores a single query fragment against a name fragment
func scoreFragment(queryFrag, nameFrag string, position int) float64 {
	queryFrag = normalizeFragment(queryFrag)
	nameFrag = normalizeFragment(nameFrag)

	if queryFrag == "" || nameFrag == "" {
		return 0.0
	}

	// Exact match
	if queryFrag == nameFrag {
		return ScoreExactMatch + calculatePositionBonus(position)
	}

	// Prefix match
	if strings.HasPrefix(nameFrag, queryFrag) {
		return ScorePrefixMatch + calculatePositionBonus(position)
	}

	// Substring match
	if strings.Contains(nameFrag, queryFrag) {
		index := strings.Index(nameFrag, queryFrag)
		// Earlier substring matches get higher score
		substringBonus := ScorePositionBonus * (1.0 - float64(index)/float64(len(nameFrag)))
		return ScoreSubstringMatch + substringBonus
	}

	// Fuzzy match on character overlap
	similarity := calculateSimilarity(queryFrag, nameFrag)
	if similarity > 0.85 && len(queryFrag) >= 4 {
		return ScoreFuzzyMatch * similarity
	}

	return 0.0
}

// calculatePositionBonus gives bonus for earlier positions
func calculatePositionBonus(position int) float64 {
	return ScorePositionBonus * math.Exp(-float64(position)*0.3)
}

// calculateSimilarity calculates fuzzy similarity between two strings
func calculateSimilarity(s1, s2 string) float64 {
	if s1 == "" || s2 == "" {
		return 0.0
	}

	// Simple similarity: ratio of matching characters
	matches := 0
	for _, c := range s1 {
		if strings.ContainsRune(s2, c) {
			matches++
		}
	}

	return float64(matches) / float64(len(s1))
}

// RankHotels ranks enabled hotels against a query, best first.
// Ties are broken by hotel name so the order is stable.
func RankHotels(query *Query, hotels []*Hotel) []*Candidate {
	candidates := make([]*Candidate, 0, len(hotels))

	for _, hotel := range hotels {
		if hotel.Disabled {
			continue
		}

		score := Score(query, hotel)
		if score == 0.0 {
			continue
		}

		candidates = append(candidates, &Candidate{Hotel: hotel, Score: score})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Hotel.Name < candidates[j].Hotel.Name
	})

	return candidates
}
