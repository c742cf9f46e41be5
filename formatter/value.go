package formatter

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// DefaultTimestampFormat is the token pattern used by the console renderer.
const DefaultTimestampFormat = "HH:mm:ss"

// Ordered so that longer tokens win over their prefixes.
var timestampTokens = []string{"YYYY", "SSS", "YY", "MM", "DD", "HH", "mm", "ss"}

// Timestamp formats t with a token pattern. Recognized tokens are YYYY,
// YY, MM, DD, HH (24-hour), mm, ss and SSS (milliseconds); everything
// else is copied literally.
func Timestamp(t time.Time, pattern string) string {
	var b strings.Builder
	b.Grow(len(pattern) + 8)
	for i := 0; i < len(pattern); {
		matched := false
		for _, tok := range timestampTokens {
			if strings.HasPrefix(pattern[i:], tok) {
				b.WriteString(timestampToken(t, tok))
				i += len(tok)
				matched = true
				break
			}
		}
		if !matched {
			b.WriteByte(pattern[i])
			i++
		}
	}
	return b.String()
}

func timestampToken(t time.Time, tok string) string {
	switch tok {
	case "YYYY":
		return pad(t.Year(), 4)
	case "YY":
		return pad(t.Year()%100, 2)
	case "MM":
		return pad(int(t.Month()), 2)
	case "DD":
		return pad(t.Day(), 2)
	case "HH":
		return pad(t.Hour(), 2)
	case "mm":
		return pad(t.Minute(), 2)
	case "ss":
		return pad(t.Second(), 2)
	case "SSS":
		return pad(t.Nanosecond()/int(time.Millisecond), 3)
	}
	return tok
}

func pad(n, width int) string {
	s := strconv.Itoa(n)
	if len(s) >= width {
		return s
	}
	return strings.Repeat("0", width-len(s)) + s
}

// Number formats n with thousands separators, e.g. 1234567 -> "1,234,567".
func Number(n int64) string {
	return message.NewPrinter(language.English).Sprintf("%d", n)
}

// Duration formats d in the largest unit that fits (ms, s, m or h) with
// at most one decimal, e.g. 1500ms -> "1.5s".
func Duration(d time.Duration) string {
	ms := float64(d) / float64(time.Millisecond)
	sign := ""
	if ms < 0 {
		sign = "-"
		ms = -ms
	}
	switch {
	case ms < 1000:
		return sign + trimFloat(ms, 1) + "ms"
	case ms < 60*1000:
		return sign + trimFloat(ms/1000, 1) + "s"
	case ms < 60*60*1000:
		return sign + trimFloat(ms/(60*1000), 1) + "m"
	default:
		return sign + trimFloat(ms/(60*60*1000), 1) + "h"
	}
}

var byteUnits = []string{"KiB", "MiB", "GiB", "TiB", "PiB", "EiB"}

// Bytes formats n with a binary prefix and two decimals, e.g.
// 1536 -> "1.50 KiB". Values under 1024 are shown as "N B".
func Bytes(n int64) string {
	if n > -1024 && n < 1024 {
		return fmt.Sprintf("%d B", n)
	}
	v := math.Abs(float64(n))
	unit := -1
	for v >= 1024 && unit < len(byteUnits)-1 {
		v /= 1024
		unit++
	}
	if n < 0 {
		v = -v
	}
	return fmt.Sprintf("%.2f %s", v, byteUnits[unit])
}

// Percentage formats a fraction in [0,1] as "NN.N%".
func Percentage(fraction float64) string {
	return strconv.FormatFloat(fraction*100, 'f', 1, 64) + "%"
}

func trimFloat(v float64, prec int) string {
	s := strconv.FormatFloat(v, 'f', prec, 64)
	if strings.Contains(s, ".") {
		s = strings.TrimRight(strings.TrimRight(s, "0"), ".")
	}
	return s
}
