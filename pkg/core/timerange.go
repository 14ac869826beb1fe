package core

import (
	"fmt"
	"strings"
	"time"
)

// Interval unit spans in milliseconds. The month unit follows the exchange
// convention of 30 days.
const (
	msSecond = int64(1000)
	msMinute = 60 * msSecond
	msHour   = 60 * msMinute
	msDay    = 24 * msHour
	msWeek   = 7 * msDay
	msMonth  = 30 * msDay
)

// TimeRange is an inclusive [Start, End] pair of millisecond timestamps
// with Start <= End. Ranges are built per call and never stored.
type TimeRange struct {
	Start int64
	End   int64
}

// NewTimeRange builds a range from two instants. A zero until means "now",
// matching the exchange convention for open-ended history queries.
func NewTimeRange(since, until time.Time) TimeRange {
	if until.IsZero() {
		until = time.Now()
	}
	return TimeRange{Start: since.UnixMilli(), End: until.UnixMilli()}
}

// Slices partitions the range into contiguous sub-ranges covering at most
// maxSpan milliseconds each. The cursor advances in strides of exactly
// maxSpan, so adjacent slices share their boundary instant; the final slice
// absorbs the remainder. A range with Start == End yields exactly one slice.
func (r TimeRange) Slices(maxSpan int64) []TimeRange {
	if maxSpan <= 0 {
		return []TimeRange{r}
	}

	out := make([]TimeRange, 0, (r.End-r.Start)/maxSpan+1)
	for cur := r.Start; ; cur += maxSpan {
		end := min(r.End, cur+maxSpan)
		out = append(out, TimeRange{Start: cur, End: end})
		if end >= r.End {
			return out
		}
	}
}

// Span returns the range width in milliseconds.
func (r TimeRange) Span() int64 {
	return r.End - r.Start
}

// ParseInterval converts an interval literal such as "5m" or "1h" into its
// span in milliseconds. Units: s seconds, m minutes, h hours, d days,
// w weeks (any case except m), and uppercase M for a 30-day month.
func ParseInterval(interval string) (int64, error) {
	num := int64(0)
	sawDigit := false
	var unit rune

	for _, r := range interval {
		switch {
		case r >= '0' && r <= '9':
			num = num*10 + int64(r-'0')
			sawDigit = true
		case unit == 0 && (r >= 'a' && r <= 'z' || r >= 'A' && r <= 'Z'):
			unit = r
		}
	}
	if !sawDigit || unit == 0 || num == 0 {
		return 0, fmt.Errorf("malformed interval %q", interval)
	}

	var span int64
	switch unit {
	case 's', 'S':
		span = msSecond
	case 'm':
		span = msMinute
	case 'h', 'H':
		span = msHour
	case 'd', 'D':
		span = msDay
	case 'w', 'W':
		span = msWeek
	case 'M':
		span = msMonth
	default:
		return 0, fmt.Errorf("unknown interval unit %q", string(unit))
	}

	return num * span, nil
}

// NormalizeSymbol strips delimiters from a trading pair and uppercases it,
// so "btc/usdt" and "BTC-USDT" both become "BTCUSDT".
func NormalizeSymbol(symbol string) string {
	var b strings.Builder
	b.Grow(len(symbol))
	for _, r := range symbol {
		switch {
		case r >= 'a' && r <= 'z':
			b.WriteRune(r - 'a' + 'A')
		case r >= 'A' && r <= 'Z' || r >= '0' && r <= '9':
			b.WriteRune(r)
		}
	}
	return b.String()
}
