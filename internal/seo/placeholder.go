package seo

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// ErrUnknownToken is returned when a catalog template references a
// placeholder its category does not provide.
var ErrUnknownToken = errors.New("unknown placeholder")

// Placeholder tokens understood by the catalog.
const (
	TokenService       = "{service}"
	TokenServiceLower  = "{service_lower}"
	TokenTown          = "{town}"
	TokenTownLower     = "{town_lower}"
	TokenModifier      = "{modifier}"
	TokenModifierLower = "{modifier_lower}"
	TokenContext       = "{context}"
)

var tokenPattern = regexp.MustCompile(`\{[a-z_]+\}`)

var (
	entityTokens   = []string{TokenService, TokenServiceLower, TokenTown, TokenTownLower}
	modifierTokens = append(append([]string{}, entityTokens...), TokenModifier, TokenModifierLower)
	allTokens      = append(append([]string{}, modifierTokens...), TokenContext)
)

// vars is an ordered list of (token, value) pairs.
type vars []string

func entityVars(svc Service, loc Location) vars {
	return vars{
		TokenService, svc.Title,
		TokenServiceLower, lower(svc.Title),
		TokenTown, loc.Town,
		TokenTownLower, lower(loc.Town),
	}
}

func (v vars) with(pairs ...string) vars {
	out := make(vars, 0, len(v)+len(pairs))
	out = append(out, v...)
	return append(out, pairs...)
}

func (v vars) withModifier(modifier string) vars {
	return v.with(TokenModifier, modifier, TokenModifierLower, lower(modifier))
}

// substitute replaces every token in a single left-to-right pass. Inserted
// values are never scanned again, so a title containing "{town}" stays literal.
func substitute(template string, v vars) string {
	return strings.NewReplacer(v...).Replace(template)
}

// lower folds s the way page copy expects; a Caser holds state so one is
// created per call.
func lower(s string) string {
	return cases.Lower(language.English).String(s)
}

// checkTokens reports placeholders in template that are not in allowed.
func checkTokens(template string, allowed []string) error {
	for _, tok := range tokenPattern.FindAllString(template, -1) {
		if !containsToken(allowed, tok) {
			return fmt.Errorf("%w %s in %q", ErrUnknownToken, tok, template)
		}
	}
	return nil
}

// hasToken reports whether s contains any known placeholder.
func hasToken(s string) bool {
	for _, tok := range tokenPattern.FindAllString(s, -1) {
		if containsToken(allTokens, tok) {
			return true
		}
	}
	return false
}

func containsToken(tokens []string, tok string) bool {
	for _, t := range tokens {
		if t == tok {
			return true
		}
	}
	return false
}
