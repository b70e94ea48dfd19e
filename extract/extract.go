package extract

import (
	"regexp"
	"sort"
	"strings"

	"github.com/foomo/transitions-mcp/service/vo"
)

// Marker is the sentinel paragraph that opens a narrative block in the
// regional news documents this pipeline consumes.
const Marker = "À savoir également dans votre département"

// transitionsPrefix labels the paragraph that separates a narrative from the
// transition list that follows it.
const transitionsPrefix = "Transitions"

// MaxExamplesPerTransition caps how many examples a single transition phrase
// may contribute, regardless of how often it occurs in the document.
const MaxExamplesPerTransition = 3

// headerRe matches article headers like "62 du 07/05", which terminate an
// in-progress transitions block when the next article starts without a marker.
var headerRe = regexp.MustCompile(`^\s*\d+\s+du\s+\d{2}/\d{2}`)

func isHeader(text string) bool {
	return headerRe.MatchString(text)
}

// Segment scans an ordered paragraph sequence and returns the articles found
// in it. An article starts at a paragraph exactly equal to Marker; its
// narrative is the space-joined run of non-empty paragraphs up to the next
// "Transitions" paragraph, and its transitions are the non-empty paragraphs
// after that, up to the next header line or end of input.
//
// The outer scan resumes at the paragraph that terminated the transitions
// block, not past it, so a header (or another marker reached mid-block) is
// re-examined as a potential start of the next article. Articles with an
// empty narrative or no transitions are dropped.
func Segment(paragraphs []string) []vo.Article {
	var articles []vo.Article
	i, n := 0, len(paragraphs)

	for i < n {
		if paragraphs[i] != Marker {
			i++
			continue
		}

		var narrativeParts []string
		j := i + 1
		for j < n && !strings.HasPrefix(paragraphs[j], transitionsPrefix) {
			if paragraphs[j] != "" {
				narrativeParts = append(narrativeParts, paragraphs[j])
			}
			j++
		}
		narrative := strings.TrimSpace(strings.Join(narrativeParts, " "))

		var transitions []string
		k := j + 1
		for k < n {
			t := paragraphs[k]
			if t == "" {
				k++
				continue
			}
			if isHeader(t) {
				break
			}
			transitions = append(transitions, t)
			k++
		}

		if narrative != "" && len(transitions) > 0 {
			articles = append(articles, vo.Article{Narrative: narrative, Transitions: transitions})
		}

		i = k
	}

	return articles
}

// SplitOnTransition splits narrative around the first literal occurrence of
// transition. Both halves are trimmed. ok is false when the transition does
// not occur; a transition listed for an article may legitimately be missing
// from its narrative, so callers skip that pair and move on.
func SplitOnTransition(narrative, transition string) (before, after string, ok bool) {
	idx := strings.Index(narrative, transition)
	if idx < 0 {
		return "", "", false
	}
	before = strings.TrimSpace(narrative[:idx])
	after = strings.TrimSpace(narrative[idx+len(transition):])
	return before, after, true
}

// Aggregate runs the example-building pass over the segmented articles.
//
// Transition occurrences are counted in full first; example acceptance is a
// second pass, capped at MaxExamplesPerTransition per transition and requiring
// both narrative halves to be non-empty. The frequency tables always reflect
// total occurrence counts, not how many examples survived the cap.
func Aggregate(articles []vo.Article) vo.ExtractionResult {
	counts := map[string]int{}
	for _, article := range articles {
		for _, t := range article.Transitions {
			counts[t]++
		}
	}

	examples := []vo.Example{}
	accepted := map[string]int{}
	for _, article := range articles {
		for _, t := range article.Transitions {
			if accepted[t] >= MaxExamplesPerTransition {
				continue
			}
			before, after, ok := SplitOnTransition(article.Narrative, t)
			if !ok || before == "" || after == "" {
				continue
			}
			examples = append(examples, vo.Example{
				ParagraphA: before,
				Transition: t,
				ParagraphB: after,
			})
			accepted[t]++
		}
	}

	unique := make([]string, 0, len(counts))
	for t := range counts {
		unique = append(unique, t)
	}
	sort.Strings(unique)

	duplicates := map[string]int{}
	overflow := map[string]int{}
	for t, c := range counts {
		if c > 1 {
			duplicates[t] = c
		}
		if c > MaxExamplesPerTransition {
			overflow[t] = c
		}
	}

	return vo.ExtractionResult{
		Examples:             examples,
		TransitionCounts:     counts,
		UniqueTransitions:    unique,
		DuplicateTransitions: duplicates,
		OverflowTransitions:  overflow,
	}
}

// Run is the full document-to-result pipeline over one paragraph sequence.
func Run(paragraphs []string) ([]vo.Article, vo.ExtractionResult) {
	articles := Segment(paragraphs)
	return articles, Aggregate(articles)
}
