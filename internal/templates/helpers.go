package templates

import "strconv"

// itoa converts an int to a string for table cells.
func itoa(n int) string {
	return strconv.Itoa(n)
}
