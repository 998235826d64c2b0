package awshttp

import (
	"sort"
	"strings"

	"github.com/samber/lo"
)

// Pair is a single name/value entry in a header or query list. Order is
// preserved and duplicate names are allowed.
type Pair struct {
	Name  string
	Value string
}

const upperhex = "0123456789ABCDEF"

// PercentEncode escapes s with the RFC 3986 unreserved rule SigV4 requires:
// A-Z a-z 0-9 - _ . ~ pass through, every other byte becomes %HH with
// uppercase hex. Stricter than url.QueryEscape, which leaves sub-delims
// alone and turns spaces into +.
func PercentEncode(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for i := 0; i < len(s); i++ {
		c := s[i]
		if isUnreserved(c) {
			b.WriteByte(c)
			continue
		}
		b.WriteByte('%')
		b.WriteByte(upperhex[c>>4])
		b.WriteByte(upperhex[c&0xf])
	}
	return b.String()
}

func isUnreserved(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') ||
		c == '-' || c == '_' || c == '.' || c == '~'
}

// QueryString renders pairs as the query component of a URL, leading "?"
// included, or "" for an empty list. Keys are emitted in ascending order of
// their encoded form. Within one key, values appear in reverse insertion
// order: clients depend on that exact rendering, so it stays.
func QueryString(pairs []Pair) string {
	if len(pairs) == 0 {
		return ""
	}
	grouped := map[string][]string{}
	for _, p := range pairs {
		k := PercentEncode(p.Name)
		grouped[k] = append([]string{PercentEncode(p.Value)}, grouped[k]...)
	}
	keys := lo.Keys(grouped)
	sort.Strings(keys)

	parts := make([]string, 0, len(pairs))
	for _, k := range keys {
		for _, v := range grouped[k] {
			parts = append(parts, k+"="+v)
		}
	}
	return "?" + strings.Join(parts, "&")
}

// canonicalQueryString is the SigV4 form: pairs sorted by encoded key, then
// by encoded value, duplicates preserved, no leading "?".
func canonicalQueryString(pairs []Pair) string {
	encoded := lo.Map(pairs, func(p Pair, _ int) Pair {
		return Pair{Name: PercentEncode(p.Name), Value: PercentEncode(p.Value)}
	})
	sort.SliceStable(encoded, func(i, j int) bool {
		if encoded[i].Name != encoded[j].Name {
			return encoded[i].Name < encoded[j].Name
		}
		return encoded[i].Value < encoded[j].Value
	})
	parts := lo.Map(encoded, func(p Pair, _ int) string {
		return p.Name + "=" + p.Value
	})
	return strings.Join(parts, "&")
}

// canonicalURI percent-encodes each /-delimited segment of path. V4-signed
// services encode the path twice, S3-signed once (AWS quirk). An empty path
// is "/".
func canonicalURI(path string, doubleEncode bool) string {
	if path == "" {
		return "/"
	}
	segments := strings.Split(path, "/")
	for i, seg := range segments {
		seg = PercentEncode(seg)
		if doubleEncode {
			seg = PercentEncode(seg)
		}
		segments[i] = seg
	}
	return strings.Join(segments, "/")
}
