package scout

import "github.com/dharmasatrya/tripscout/internal/payload"

// candidateExtractors are tried in priority order; the first extractor that
// finds its container key wins, even when the container is empty. Unknown
// payload shapes yield zero candidates rather than an error.
var candidateExtractors = []func(map[string]any) ([]map[string]any, bool){
	containerKey("explore_results"),
	containerKey("destinations"),
	containerKey("organic_results"),
	containerKey("results"),
	travelResultsDestinations,
}

func extractCandidates(explorePayload map[string]any) []map[string]any {
	for _, extract := range candidateExtractors {
		if candidates, ok := extract(explorePayload); ok {
			return candidates
		}
	}
	return nil
}

func containerKey(key string) func(map[string]any) ([]map[string]any, bool) {
	return func(p map[string]any) ([]map[string]any, bool) {
		if _, present := p[key].([]any); !present {
			return nil, false
		}
		return payload.Maps(p, key), true
	}
}

func travelResultsDestinations(p map[string]any) ([]map[string]any, bool) {
	travelResults := payload.Map(p, "travel_results")
	if travelResults == nil {
		return nil, false
	}
	if _, present := travelResults["destinations"].([]any); !present {
		return nil, false
	}
	return payload.Maps(travelResults, "destinations"), true
}

// normalizeEvents flattens the upstream events/top_sights field: a bare
// string becomes a single entry, object entries contribute their title or
// name, anything else is dropped.
func normalizeEvents(raw any) []string {
	switch v := raw.(type) {
	case string:
		return []string{v}
	case []any:
		var cleaned []string
		for _, item := range v {
			switch entry := item.(type) {
			case string:
				cleaned = append(cleaned, entry)
			case map[string]any:
				if text := payload.String(entry, "title", "name"); text != "" {
					cleaned = append(cleaned, text)
				}
			}
		}
		return cleaned
	default:
		return nil
	}
}
