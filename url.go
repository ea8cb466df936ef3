package bfscrawl

// Reason explains why a discovered link was not admitted into the frontier.
// The zero value means the link was admitted.
type Reason string

// Rejection reasons, in the order the admission gates are evaluated.
const (
	ReasonMalformed         Reason = "malformed"
	ReasonUnsupportedScheme Reason = "unsupported_scheme"
	ReasonOutOfDomain       Reason = "out_of_domain"
	ReasonExcluded          Reason = "excluded"
	ReasonNotHTML           Reason = "not_html"
	ReasonDuplicate         Reason = "duplicate"
)

// Reasons lists every rejection reason.
var Reasons = []Reason{
	ReasonMalformed,
	ReasonUnsupportedScheme,
	ReasonOutOfDomain,
	ReasonExcluded,
	ReasonNotHTML,
	ReasonDuplicate,
}

// Outcome is the result of passing a raw link through admission.
// URL holds the canonical form when the link was admitted.
type Outcome struct {
	URL    string
	Reason Reason
}

// Admitted reports whether the link passed every gate.
func (o Outcome) Admitted() bool {
	return o.Reason == ""
}

// Admit returns an admitted Outcome for the canonical URL.
func Admit(canonicalURL string) Outcome {
	return Outcome{URL: canonicalURL}
}

// Reject returns a rejected Outcome.
func Reject(reason Reason) Outcome {
	return Outcome{Reason: reason}
}

// Record is a single entry written to the crawl output.
type Record struct {
	URL    string
	Level  int    // BFS depth, the seed is level 0
	Parent string // page the URL was discovered on, empty for the seed
}
