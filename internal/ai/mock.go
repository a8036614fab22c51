package ai

import (
	"context"
	"fmt"
	"hash/fnv"
	"sort"
	"strings"
	"time"
)

var mockVocabulary = []string{
	"cold room", "server room", "warehouse", "export", "chiller", "compressor down",
	"freezer", "maintenance", "service", "clean", "tune-up", "inspection",
	"hotel", "smoke", "fire", "sparks", "gas", "leak", "air conditioner",
}

var mockPlaces = []string{
	"airport", "entebbe", "kitende", "kitoro", "nakiwogo", "lido", "abaita", "garuga",
}

// MockAnalyzer extracts known vocabulary terms in order of appearance. It
// stands in for the analysis service in development.
type MockAnalyzer struct{}

func (MockAnalyzer) Analyze(ctx context.Context, text string) (Analysis, int64, error) {
	start := time.Now()
	lower := strings.ToLower(text)
	return Analysis{
		Keywords: findTerms(lower, mockVocabulary),
		Entities: findTerms(lower, mockPlaces),
	}, time.Since(start).Milliseconds(), nil
}

func findTerms(text string, vocabulary []string) []string {
	type hit struct {
		term string
		at   int
	}
	var hits []hit
	for _, term := range vocabulary {
		if i := strings.Index(text, term); i >= 0 {
			hits = append(hits, hit{term: term, at: i})
		}
	}
	sort.SliceStable(hits, func(i, j int) bool { return hits[i].at < hits[j].at })
	out := make([]string, 0, len(hits))
	for _, h := range hits {
		out = append(out, h.term)
	}
	return out
}

// MockGenerator writes a short message from the metadata. The closing line is
// chosen by hashing the user message so replies are stable per input.
type MockGenerator struct{}

var mockClosers = []string{
	"Please share a location pin or nearby landmark.",
	"Could you send a location pin or name a nearby landmark?",
	"A location pin or a nearby landmark will help us find you quickly.",
}

func (MockGenerator) Generate(ctx context.Context, req GenerationRequest) (string, error) {
	who := "a technician"
	if req.Metadata.TechAssigned != nil {
		who = "technician " + *req.Metadata.TechAssigned
	}
	closer := mockClosers[stableIndex(req.UserMessage, len(mockClosers))]
	return fmt.Sprintf("Thanks for reaching out. We are sending %s, arriving in about %d minutes. %s",
		who, req.Metadata.ETAMinutes, closer), nil
}

func stableIndex(s string, n int) int {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int(h.Sum64() % uint64(n))
}
