package utils

import (
	"time"

	"github.com/dustin/go-humanize"
)

func FormatBytes(sz int64) string {
	if sz <= 0 {
		return "0 B"
	}
	return humanize.IBytes(uint64(sz))
}

func FormatSpeed(sz int64, cost time.Duration) string {
	ms := int64(cost / time.Millisecond)
	if ms <= 0 || sz <= 0 {
		return "-"
	}
	return humanize.IBytes(uint64(float64(sz)*1000/float64(ms))) + "/s"
}
