package gen

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/go-openapi/inflect"
)

// =============================================================================
// Helper functions
// =============================================================================

var rules = inflect.NewDefaultRuleset()

// titleCase capitalizes the first letter of a string.
func titleCase(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToUpper(r)) + s[n:]
}

// lowerFirst lower-cases the first letter of a string.
//
//	lowerFirst("SteeringWheel") == "steeringWheel"
func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	r, n := utf8.DecodeRuneInString(s)
	return string(unicode.ToLower(r)) + s[n:]
}

// snake converts a camel-case name to snake case.
//
//	snake("SteeringWheel") == "steering_wheel"
//	snake("carId") == "car_id"
func snake(s string) string {
	return rules.Underscore(s)
}

// plural returns the plural form of a camel-case name.
func plural(s string) string {
	return rules.Pluralize(s)
}

// fkName derives a foreign-key field name from an edge or entity name and
// one identifier component: fkName("list", "id") == "listId".
func fkName(name, idField string) string {
	return lowerFirst(name) + titleCase(idField)
}

// joinName names a join entity after the sorted pair of participants.
func joinName(a, b string) string {
	pair := []string{a, b}
	slices.Sort(pair)
	return strings.Join(pair, "")
}
