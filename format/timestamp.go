package format

import "fmt"

// timeLayout renders generation timestamps in the human formats.
const timeLayout = "2006-01-02 15:04:05"

// Timestamp formats seconds as zero-padded HH:MM:SS, fractional seconds
// truncated.
func Timestamp(seconds float64) string {
	if seconds < 0 {
		seconds = 0
	}
	total := int(seconds)
	return fmt.Sprintf("%02d:%02d:%02d", total/3600, (total%3600)/60, total%60)
}
