package search

import "strings"

// Similarity scores two strings by shared character trigrams:
// |shared| / max(|trigrams(a)|, |trigrams(b)|), in [0,1].
// Spaces count as underscores; strings shorter than three characters form a single gram.
func Similarity(a, b string) float64 {
	ta := trigrams(a)
	tb := trigrams(b)
	if len(ta) == 0 || len(tb) == 0 {
		return 0
	}
	shared := 0
	for g := range ta {
		if _, ok := tb[g]; ok {
			shared++
		}
	}
	return float64(shared) / float64(max(len(ta), len(tb)))
}

func trigrams(s string) map[string]struct{} {
	s = strings.ReplaceAll(s, " ", "_")
	r := []rune(s)
	if len(r) == 0 {
		return nil
	}
	if len(r) < 3 {
		return map[string]struct{}{s: {}}
	}
	set := make(map[string]struct{}, len(r)-2)
	for i := 0; i+3 <= len(r); i++ {
		set[string(r[i:i+3])] = struct{}{}
	}
	return set
}
