// Package robotstxt turns robots.txt bodies into bfscrawl.ExclusionRules.
//
// Two matching modes are provided. SubstringParser keeps every Disallow
// directive, regardless of user-agent group, as a host+path string and
// excludes any URL containing one of them. StandardParser applies the
// group-based robots exclusion semantics implemented by temoto/robotstxt.
package robotstxt

import (
	"bufio"
	"bytes"
	"net/url"
	"strings"

	"github.com/fwojciec/bfscrawl"
	"github.com/temoto/robotstxt"
)

const disallowDirective = "disallow:"

// ParseDisallow extracts the Disallow directives of a robots.txt body.
// Each rule is the host followed by the lower-cased path. Directives with
// an empty path allow everything and are skipped. Duplicates are dropped.
func ParseDisallow(host string, body []byte) []string {
	var rules []string
	seen := make(map[string]bool)

	sc := bufio.NewScanner(bytes.NewReader(body))
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if i := strings.Index(line, "#"); i >= 0 {
			line = strings.TrimSpace(line[:i])
		}
		if len(line) < len(disallowDirective) || !strings.EqualFold(line[:len(disallowDirective)], disallowDirective) {
			continue
		}
		fields := strings.Fields(line[len(disallowDirective):])
		if len(fields) == 0 {
			continue
		}
		rule := host + strings.ToLower(fields[0])
		if seen[rule] {
			continue
		}
		seen[rule] = true
		rules = append(rules, rule)
	}
	return rules
}

// Ensure DisallowRules implements bfscrawl.ExclusionRules at compile time.
var _ bfscrawl.ExclusionRules = DisallowRules(nil)

// DisallowRules excludes any target containing one of its host+path rules.
type DisallowRules []string

// Excludes reports whether target contains any rule.
func (r DisallowRules) Excludes(target string) bool {
	for _, rule := range r {
		if strings.Contains(target, rule) {
			return true
		}
	}
	return false
}

// Disallowed returns the rule strings.
func (r DisallowRules) Disallowed() []string {
	return r
}

// Ensure SubstringParser implements bfscrawl.RobotsParser at compile time.
var _ bfscrawl.RobotsParser = (*SubstringParser)(nil)

// SubstringParser builds DisallowRules.
type SubstringParser struct{}

// NewSubstringParser creates a new SubstringParser.
func NewSubstringParser() *SubstringParser {
	return &SubstringParser{}
}

// Parse extracts the Disallow directives of body for host.
func (p *SubstringParser) Parse(host string, body []byte) (bfscrawl.ExclusionRules, error) {
	return DisallowRules(ParseDisallow(host, body)), nil
}

// Ensure StandardParser implements bfscrawl.RobotsParser at compile time.
var _ bfscrawl.RobotsParser = (*StandardParser)(nil)

// StandardParser builds rules that follow robots.txt group semantics for a
// single user agent.
type StandardParser struct {
	userAgent string
}

// NewStandardParser creates a StandardParser matching groups for userAgent.
func NewStandardParser(userAgent string) *StandardParser {
	return &StandardParser{userAgent: userAgent}
}

// Parse parses body with temoto/robotstxt.
// Returns EINVALID if the body cannot be parsed.
func (p *StandardParser) Parse(host string, body []byte) (bfscrawl.ExclusionRules, error) {
	data, err := robotstxt.FromBytes(body)
	if err != nil {
		return nil, bfscrawl.Errorf(bfscrawl.EINVALID, "parse robots.txt for %s: %v", host, err)
	}
	return &groupRules{
		data:      data,
		userAgent: p.userAgent,
		disallow:  ParseDisallow(host, body),
	}, nil
}

// groupRules tests URL paths against the robots group for a user agent.
type groupRules struct {
	data      *robotstxt.RobotsData
	userAgent string
	disallow  []string
}

func (r *groupRules) Excludes(target string) bool {
	u, err := url.Parse(target)
	if err != nil {
		return false
	}
	path := u.EscapedPath()
	if path == "" {
		path = "/"
	}
	if u.RawQuery != "" {
		path += "?" + u.RawQuery
	}
	return !r.data.TestAgent(path, r.userAgent)
}

func (r *groupRules) Disallowed() []string {
	return r.disallow
}
