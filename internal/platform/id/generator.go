package id

import (
	"crypto/sha1"
	"encoding/hex"
	"strings"
)

const DefaultDomain = "github-pages"

// Generator derives identifiers that stay the same across runs for the same
// input, so subscribed calendars replace events instead of duplicating them.
type Generator interface {
	NewID(parts ...string) string
}

type StableGenerator struct {
	domain string
}

func NewStableGenerator(domain string) *StableGenerator {
	domain = strings.TrimSpace(domain)
	if domain == "" {
		domain = DefaultDomain
	}
	return &StableGenerator{domain: domain}
}

// NewID hashes the parts joined by "|" and appends "@<domain>".
func (g *StableGenerator) NewID(parts ...string) string {
	sum := sha1.Sum([]byte(strings.Join(parts, "|")))
	return hex.EncodeToString(sum[:]) + "@" + g.domain
}
