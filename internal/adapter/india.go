package adapter

import "strings"

// indiaTokens are the substrings accepted as evidence that a location string
// refers to India. Matching is case-insensitive and deliberately loose, since
// upstream location formats vary ("Bengaluru, India", "Hyderabad, IN",
// "Chennai (IN)").
var indiaTokens = []string{"india", ", in", " ind", "(in)", " in "}

// isIndiaLocation reports whether loc contains any India token. An empty
// location is rejected: absence of evidence defaults to drop.
func isIndiaLocation(loc string) bool {
	s := strings.ToLower(loc)
	for _, tok := range indiaTokens {
		if strings.Contains(s, tok) {
			return true
		}
	}
	return false
}
