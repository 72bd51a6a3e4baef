package htmllite

// CountText returns the UTF-16 length of all span text, the unit most
// message APIs use for limits.
func CountText(sections Sections) int {
	n := 0
	for _, s := range sections {
		n += UTF16Len(s.Text)
	}
	return n
}
