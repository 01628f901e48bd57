// Package sanitize turns raw model output into a Termux command string.
// Small models wrap commands in code fences, keep talking after the command,
// misspell utility names and answer volume requests in percent; each of those
// quirks has one stage here. Stages run in a fixed order because later stages
// assume the earlier cleanup already happened. Every stage is total: any
// string, including "", produces a result.
package sanitize

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

const (
	// CommandPrefix marks the device-control utilities the assistant runs.
	CommandPrefix = "termux-"
	VolumeCommand = "termux-volume"
	DefaultStream = "music"

	maxVolume = 15
	// Values at or above this percentage map straight to maxVolume.
	fullVolumePercent = 95
)

// StopPhrases mark where the model stopped producing a command. They are
// searched in this order and the first one present wins, even when a later
// phrase occurs earlier in the text.
var StopPhrases = []string{"user request:", "output:", "user:", "assistant:", "\n"}

// Typo is a known malformed utility name and its replacement.
type Typo struct {
	From string
	To   string
}

// Typos are applied in order, replacing every occurrence.
var Typos = []Typo{
	{"termuxvolume", "termux-volume"},
	{"termuxolume", "termux-volume"},
	{"termuxbright", "termux-brightness"},
	{"termuxvibrate", "termux-vibrate"},
}

// AudioStreams are the stream names termux-volume accepts.
var AudioStreams = []string{"music", "alarm", "ring", "system", "notification"}

var (
	fenceRe  = regexp.MustCompile("```[a-z]*")
	digitsRe = regexp.MustCompile(`\d+`)
)

// Command runs the full pipeline over raw model output.
func Command(raw string) string {
	cmd := StripMarkdown(raw)
	cmd = TruncateRambling(cmd)
	cmd = FixTypos(cmd)
	cmd = RescaleVolume(cmd)
	return strings.TrimSpace(cmd)
}

// Executable reports whether cmd looks like a device-control command rather
// than a conversational reply or an error message.
func Executable(cmd string) bool {
	return strings.Contains(cmd, CommandPrefix) &&
		!strings.Contains(strings.ToLower(cmd), "error")
}

// StripMarkdown removes code fences (with or without a language tag) and
// inline backticks.
func StripMarkdown(s string) string {
	s = fenceRe.ReplaceAllString(s, "")
	s = strings.ReplaceAll(s, "`", "")
	return strings.TrimSpace(s)
}

// TruncateRambling cuts s at the first stop phrase found, searching phrases
// in StopPhrases order, case-insensitively.
func TruncateRambling(s string) string {
	lower := asciiLower(s)
	for _, phrase := range StopPhrases {
		if i := strings.Index(lower, phrase); i >= 0 {
			s = s[:i]
			break
		}
	}
	return strings.TrimSpace(s)
}

// FixTypos replaces known malformed utility names.
func FixTypos(s string) string {
	for _, t := range Typos {
		s = strings.ReplaceAll(s, t.From, t.To)
	}
	return s
}

// RescaleVolume converts percentage arguments of termux-volume to the
// device's 0-15 range and adds the default stream when none is named.
//
// Each number is replaced once, at its first occurrence in the current text,
// so a value that appears twice is only rewritten where it is first found.
func RescaleVolume(s string) string {
	if !strings.Contains(s, VolumeCommand) {
		return s
	}

	percent := strings.Contains(s, "%")
	for _, n := range digitsRe.FindAllString(s, -1) {
		val := parseLevel(n)
		if val > maxVolume || percent {
			s = strings.Replace(s, n, strconv.Itoa(ScaleVolume(val)), 1)
		}
	}

	if !namesStream(s) {
		s = strings.ReplaceAll(s, VolumeCommand, VolumeCommand+" "+DefaultStream)
	}
	return s
}

// ScaleVolume maps a 0-100 percentage onto the 0-15 device range, rounding
// halves to even.
func ScaleVolume(percent int) int {
	if percent >= fullVolumePercent {
		return maxVolume
	}
	v := int(math.RoundToEven(float64(percent) / 100 * maxVolume))
	return max(0, v)
}

func parseLevel(digits string) int {
	v, err := strconv.Atoi(digits)
	if err != nil {
		// Only overflow is possible for a run of ASCII digits.
		return math.MaxInt
	}
	return v
}

func namesStream(s string) bool {
	for _, stream := range AudioStreams {
		if strings.Contains(s, stream) {
			return true
		}
	}
	return false
}

// asciiLower lower-cases ASCII letters only, so byte offsets in the result
// line up with s.
func asciiLower(s string) string {
	b := []byte(s)
	for i, c := range b {
		if 'A' <= c && c <= 'Z' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
