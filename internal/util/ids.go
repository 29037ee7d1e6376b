package util

// CompositeID namespaces a raw platform id with the page id so ids stay
// unique across pages sharing one output table.
func CompositeID(pageID, rawID string) string {
	return pageID + "_" + rawID
}

// IntPtr returns a pointer to v.
func IntPtr(v int) *int {
	return &v
}

// StringPtr returns a pointer to v.
func StringPtr(v string) *string {
	return &v
}
