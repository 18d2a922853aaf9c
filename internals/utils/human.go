package utils

import (
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/exp/constraints"
)

// HumanInteger returns the number in a human readable format
func HumanInteger[N constraints.Integer](input N) string {
	if input < 0 {
		input = 0
	}
	num := uint64(input)
	switch {
	case num >= 1000000000:
		return fmt.Sprintf("%v B", num/1000000000)
	case num >= 1000000:
		return fmt.Sprintf("%v M", num/1000000)
	case num >= 1000:
		return fmt.Sprintf("%v K", num/1000)
	}
	return fmt.Sprintf("%v", num)
}

// HumanSize formats a file size like "1.5 MiB"
func HumanSize(bytes int64) string {
	if bytes < 0 {
		bytes = 0
	}
	return humanize.IBytes(uint64(bytes))
}

// HumanDate formats a unix timestamp relative to now ("3 days ago"). 0 is "never"
func HumanDate(unix int64) string {
	if unix == 0 {
		return "never"
	}
	return humanize.Time(time.Unix(unix, 0))
}
