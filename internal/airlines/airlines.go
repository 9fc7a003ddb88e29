package airlines

import "strings"

// HomeGroup is the Lufthansa Group carrier set searches start from.
var HomeGroup = []string{"LH", "LX", "OS", "SN", "EW", "4Y", "EN"}

var starAlliance = []string{
	"LH", "LX", "OS", "SN", "EW", "4Y", "EN",
	"A3", "AC", "CA", "AI", "NZ", "NH", "OZ", "AV", "CM", "OU",
	"MS", "ET", "BR", "LO", "ZH", "SQ", "SA", "TP", "TG", "TK", "UA",
}

// List returns the home-group codes plus any extras, deduplicated and
// upper-cased, preserving first-occurrence order.
func List(extra []string) []string {
	merged := make([]string, 0, len(HomeGroup)+len(extra))
	merged = append(merged, HomeGroup...)
	for _, code := range extra {
		normalized := strings.ToUpper(strings.TrimSpace(code))
		if normalized == "" {
			continue
		}
		if !containsCode(merged, normalized) {
			merged = append(merged, normalized)
		}
	}
	return merged
}

// StarAlliance returns the widened allowlist used when a home-group search
// comes back empty.
func StarAlliance() []string {
	widened := make([]string, len(starAlliance))
	copy(widened, starAlliance)
	return widened
}

// CSV renders codes the way the upstream query string expects them.
func CSV(codes []string) string {
	return strings.Join(codes, ",")
}

func containsCode(codes []string, code string) bool {
	for _, c := range codes {
		if c == code {
			return true
		}
	}
	return false
}
