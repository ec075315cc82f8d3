// Package validate is the predicate library for cell values of the
// metadata-block TSV dialect. Every predicate is a total function over
// strings: it never panics and treats the empty string as just another
// input. Optional-vs-required policy lives in the column specs and entity
// builders, not here.
package validate

import (
	"net/url"
	"regexp"
	"strconv"
	"strings"
)

// BlockNamePattern is the base shape of a metadata block name: a lowercase
// letter followed by letters, digits and underscores. The two extra rules
// (no double underscores, no multi-letter ALL-CAPS runs) are checked
// separately because RE2 has no lookaheads.
const BlockNamePattern = `^[a-z][A-Za-z0-9_]+$`

// CollectionAliasPattern is the base shape of a collection alias, derived
// from the Dataverse collection "alias" field. All-digit values and values
// ending in underscore or hyphen are rejected separately.
const CollectionAliasPattern = `^[A-Za-z0-9_-]+$`

// FieldNamePattern is the base shape of a dataset field name. A name
// wrapped in underscores on both ends is rejected separately.
const FieldNamePattern = `^[A-Za-z0-9_]+$`

var (
	blockNameRe       = regexp.MustCompile(BlockNamePattern)
	collectionAliasRe = regexp.MustCompile(CollectionAliasPattern)
	fieldNameRe       = regexp.MustCompile(FieldNamePattern)
	allDigitsRe       = regexp.MustCompile(`^[0-9]+$`)
)

// BlockName reports whether s is a valid metadata block name: lowercase
// start, single underscores as separators, camelCase allowed but not
// PascalCase or ALLCAPS runs.
func BlockName(s string) bool {
	if !blockNameRe.MatchString(s) {
		return false
	}
	if strings.Contains(s, "__") {
		return false
	}
	return !hasUpperRun(s)
}

// hasUpperRun reports whether s contains two or more consecutive uppercase letters.
func hasUpperRun(s string) bool {
	prevUpper := false
	for _, r := range s {
		upper := r >= 'A' && r <= 'Z'
		if upper && prevUpper {
			return true
		}
		prevUpper = upper
	}
	return false
}

// CollectionAlias reports whether s is a valid collection alias: letters,
// digits, underscores and hyphens, not all digits, and not ending in an
// underscore or hyphen. The empty string is not a valid alias; callers that
// treat the alias as optional allow the empty string themselves.
func CollectionAlias(s string) bool {
	if !collectionAliasRe.MatchString(s) {
		return false
	}
	if allDigitsRe.MatchString(s) {
		return false
	}
	return !strings.HasSuffix(s, "_") && !strings.HasSuffix(s, "-")
}

// FieldName reports whether s is a valid dataset field name: letters,
// digits and underscores, with at most one of a leading or a trailing
// underscore.
func FieldName(s string) bool {
	if !fieldNameRe.MatchString(s) {
		return false
	}
	return !(strings.HasPrefix(s, "_") && strings.HasSuffix(s, "_"))
}

// supported URL schemes, mirroring the protocols the upstream dialect
// accepts for block and term URIs.
var urlSchemes = map[string]struct{}{
	"http":  {},
	"https": {},
	"ftp":   {},
	"file":  {},
}

// uriDelims are the RFC 3986 reserved and other allowed punctuation
// characters; together with letters, digits and percent they are the only
// characters a URI may carry unescaped.
const uriDelims = `-._~:/?#[]@!$&'()*+,;=%`

// uriSafe reports whether every character of s is allowed to appear
// unescaped in a URI. Whitespace, angle brackets, quotes, braces, pipes,
// backslashes and non-ASCII bytes all must be percent-encoded.
func uriSafe(s string) bool {
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		case strings.IndexByte(uriDelims, c) >= 0:
		default:
			return false
		}
	}
	return true
}

// URL reports whether s is a well-formed absolute URL with a supported
// scheme and a syntactically valid URI: a host for network schemes, and no
// characters that would need percent-encoding.
func URL(s string) bool {
	if s == "" || !uriSafe(s) {
		return false
	}
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	scheme := strings.ToLower(u.Scheme)
	if _, ok := urlSchemes[scheme]; !ok {
		return false
	}
	if scheme != "file" && u.Host == "" {
		return false
	}
	return true
}

// StrictBool reports whether s is one of the two canonical boolean
// literals. The comparison is case-sensitive: "true" is not a boolean in
// this dialect.
func StrictBool(s string) bool {
	return s == "TRUE" || s == "FALSE"
}

// NonBlank reports whether s contains at least one non-whitespace character.
func NonBlank(s string) bool {
	return strings.TrimSpace(s) != ""
}

// EmptyOrNonBlank reports whether s is either entirely empty or contains a
// non-whitespace character. Whitespace-only values fail.
func EmptyOrNonBlank(s string) bool {
	return s == "" || NonBlank(s)
}

// NonNegativeInt reports whether s is a base-10 non-negative integer that
// fits an int32.
func NonNegativeInt(s string) bool {
	_, err := strconv.ParseUint(s, 10, 31)
	return err == nil
}
