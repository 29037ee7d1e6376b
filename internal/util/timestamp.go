package util

// tzSuffixLen is the width of the numeric zone offset the Graph API appends
// to timestamps, e.g. "+0000".
const tzSuffixLen = 5

// NormalizeTimestamp replaces the trailing zone offset of a Graph API
// timestamp with a literal "Z". The offset is assumed to be UTC and is not
// inspected.
func NormalizeTimestamp(raw string) string {
	if len(raw) < tzSuffixLen {
		return "Z"
	}
	return raw[:len(raw)-tzSuffixLen] + "Z"
}
