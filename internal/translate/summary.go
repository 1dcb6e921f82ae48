package translate

import "sort"

// Summary accumulates detected-source-language tags across all batches and
// columns of a run. It is explicitly owned by the caller and threaded
// through the orchestrator; Merge combines per-task partial summaries, so
// accumulation stays correct if batches are ever processed concurrently.
type Summary struct {
	counts map[string]int
}

// NewSummary returns an empty accumulator.
func NewSummary() *Summary {
	return &Summary{counts: make(map[string]int)}
}

// Add records one detected-language tag. Empty tags mean "undetected" and
// are not counted.
func (s *Summary) Add(lang string) {
	if lang == "" {
		return
	}
	s.counts[lang]++
}

// AddAll records every tag in the slice.
func (s *Summary) AddAll(langs []string) {
	for _, l := range langs {
		s.Add(l)
	}
}

// Merge folds other into s.
func (s *Summary) Merge(other *Summary) {
	for lang, n := range other.counts {
		s.counts[lang] += n
	}
}

// Total returns the number of counted detections.
func (s *Summary) Total() int {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// Counts returns a copy of the per-language counts.
func (s *Summary) Counts() map[string]int {
	out := make(map[string]int, len(s.counts))
	for lang, n := range s.counts {
		out[lang] = n
	}
	return out
}

// Top returns the most frequent detected language, breaking ties by
// lexicographic order for stable output. Empty summary returns "".
func (s *Summary) Top() string {
	langs := make([]string, 0, len(s.counts))
	for lang := range s.counts {
		langs = append(langs, lang)
	}
	sort.Slice(langs, func(i, j int) bool {
		if s.counts[langs[i]] != s.counts[langs[j]] {
			return s.counts[langs[i]] > s.counts[langs[j]]
		}
		return langs[i] < langs[j]
	})
	if len(langs) == 0 {
		return ""
	}
	return langs[0]
}
