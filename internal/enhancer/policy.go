package enhancer

import "strings"

// Policy decides whether a proposed rewrite is allowed to replace the
// original caption. Implementations must be safe for concurrent use.
type Policy interface {
	Accept(original, enhanced string) bool
}

// Word sets for the correction override. The original captioning model is
// known to mislabel vehicle scenes as crowds; a people-to-vehicle rewrite is
// treated as an accuracy fix and accepted outright. Whether that heuristic
// verifies anything is an open policy question, which is why it lives here
// rather than in the call sites.
var (
	defaultPeopleWords = []string{
		"man", "woman", "person", "people",
		"crowd", "standing", "sitting", "walking",
	}
	defaultVehicleWords = []string{
		"car", "cars", "vehicle", "vehicles",
		"street", "road", "parked", "driving",
	}
)

// OverlapPolicy accepts rewrites that either correct a people-scene caption
// into a vehicle-scene caption, or retain at least MinOverlap of the original
// caption's words.
type OverlapPolicy struct {
	MinOverlap   float64
	PeopleWords  []string
	VehicleWords []string
}

// NewOverlapPolicy creates the default acceptance policy with the given
// minimum word-overlap ratio. Ratios outside (0, 1] fall back to 0.2.
func NewOverlapPolicy(minOverlap float64) *OverlapPolicy {
	if minOverlap <= 0 || minOverlap > 1 {
		minOverlap = 0.2
	}
	return &OverlapPolicy{
		MinOverlap:   minOverlap,
		PeopleWords:  defaultPeopleWords,
		VehicleWords: defaultVehicleWords,
	}
}

// Accept reports whether enhanced may replace original.
func (p *OverlapPolicy) Accept(original, enhanced string) bool {
	if strings.TrimSpace(enhanced) == "" {
		return false
	}

	originalLower := strings.ToLower(original)
	enhancedLower := strings.ToLower(enhanced)

	if containsAny(originalLower, p.PeopleWords) && containsAny(enhancedLower, p.VehicleWords) {
		return true
	}

	originalWords := wordSet(originalLower)
	enhancedWords := wordSet(enhancedLower)

	overlap := 0
	for word := range originalWords {
		if _, ok := enhancedWords[word]; ok {
			overlap++
		}
	}

	return float64(overlap)/float64(max(len(originalWords), 1)) >= p.MinOverlap
}

func containsAny(s string, words []string) bool {
	for _, word := range words {
		if strings.Contains(s, word) {
			return true
		}
	}
	return false
}

func wordSet(s string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, word := range strings.Fields(s) {
		set[word] = struct{}{}
	}
	return set
}
