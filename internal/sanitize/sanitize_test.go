package sanitize

import (
	"strings"
	"testing"
)

func TestCommand(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{"empty", "", ""},
		{"whitespace only", "  \n\t ", ""},
		{"plain command", "termux-vibrate", "termux-vibrate"},
		{"typo and percent volume", "termuxvolume 50", "termux-volume music 8"},
		{"fenced with language", "```bash\ntermux-vibrate\n```", "termux-vibrate"},
		{"fenced without language", "```\ntermux-torch on\n```", "termux-torch on"},
		{"inline backticks", "`termux-battery-status`", "termux-battery-status"},
		{"trailing chatter on next line", "termux-torch on\nThis turns on the flashlight.", "termux-torch on"},
		{"echoed user label", "termux-battery-status User: what else", "termux-battery-status"},
		{"upper-case label", "termux-torch on\nASSISTANT: done", "termux-torch on"},
		{"label at start empties", "Output: termux-vibrate", ""},
		// assistant: is the first stop phrase in search order present in the text.
		{"conversational refusal", "I can't do that, assistant: no command available", "I can't do that,"},
		// output: is searched before the newline, so the cut lands after it.
		{"search order beats position", "termux-vibrate\nthen output: foo", "termux-vibrate\nthen"},
		{"volume already on device scale", "termux-volume music 10", "termux-volume music 10"},
		{"volume percent sign forces scaling", "termux-volume music 10%", "termux-volume music 2%"},
		{"volume full", "termux-volume alarm 100", "termux-volume alarm 15"},
		{"stream kept", "termuxolume ring 7", "termux-volume ring 7"},
		{"brightness untouched by volume rules", "termuxbright 200", "termux-brightness 200"},
		{"overflowing number", "termux-volume 99999999999999999999999", "termux-volume music 15"},
		{"fenced percent volume", "```sh\ntermuxvolume 100\n```\nassistant: done", "termux-volume music 15"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Command(tt.raw); got != tt.want {
				t.Errorf("Command(%q) = %q, want %q", tt.raw, got, tt.want)
			}
		})
	}
}

func TestStripMarkdownRemovesAllBackticks(t *testing.T) {
	inputs := []string{
		"```bash\ntermux-vibrate\n```",
		"```\n```",
		"``` termux-volume music 3 ```",
		"```python\nprint(1)\n``` and `inline` and a stray `",
		"````",
		"```BASH\ntermux-vibrate\n```",
	}

	for _, in := range inputs {
		if got := StripMarkdown(in); strings.Contains(got, "`") {
			t.Errorf("StripMarkdown(%q) = %q, still contains a backtick", in, got)
		}
		if got := Command(in); strings.Contains(got, "`") {
			t.Errorf("Command(%q) = %q, still contains a backtick", in, got)
		}
	}
}

func TestStripMarkdownKeepsUppercaseLanguageTag(t *testing.T) {
	// Only lower-case language tags are part of the fence.
	if got := StripMarkdown("```BASH\ntermux-vibrate\n```"); got != "BASH\ntermux-vibrate" {
		t.Errorf("StripMarkdown() = %q, want %q", got, "BASH\ntermux-vibrate")
	}
}

func TestTruncateRamblingYieldsPrefix(t *testing.T) {
	inputs := []string{
		"termux-vibrate\nanything",
		"termux-toast hi user request: more",
		"termux-torch off OUTPUT: x",
		"a\nb user: c assistant: d",
		"user: leading",
	}

	for _, in := range inputs {
		got := TruncateRambling(in)
		if !strings.HasPrefix(in, got) {
			t.Errorf("TruncateRambling(%q) = %q, not a prefix of the input", in, got)
		}
		if len(got) >= len(in) {
			t.Errorf("TruncateRambling(%q) = %q, want a strict prefix", in, got)
		}
	}
}

func TestTruncateRamblingSearchOrder(t *testing.T) {
	// "user:" sits after the newline in the text but is searched first.
	in := "termux-toast hi\nuser: bye"
	if got := TruncateRambling(in); got != "termux-toast hi" {
		t.Errorf("TruncateRambling(%q) = %q", in, got)
	}

	in = "line one\nline two user request: x"
	if got := TruncateRambling(in); got != "line one\nline two" {
		t.Errorf("TruncateRambling(%q) = %q, want cut at user request:", in, got)
	}
}

func TestTruncateRamblingNonASCII(t *testing.T) {
	in := "termux-toast Ünïcødé İ USER: rest"
	want := "termux-toast Ünïcødé İ"
	if got := TruncateRambling(in); got != want {
		t.Errorf("TruncateRambling(%q) = %q, want %q", in, got, want)
	}
}

func TestFixTyposIdempotent(t *testing.T) {
	inputs := []string{
		"termuxvolume 5",
		"termuxolume music 5",
		"termuxbright 100",
		"termuxvibrate -d 500",
		"termuxvolume 5 && termuxvibrate",
		"termux-volume music 5",
		"",
	}

	for _, in := range inputs {
		once := FixTypos(in)
		twice := FixTypos(once)
		if once != twice {
			t.Errorf("FixTypos not idempotent for %q: once=%q twice=%q", in, once, twice)
		}
	}
}

func TestFixTyposReplacesAll(t *testing.T) {
	got := FixTypos("termuxvibrate; termuxvibrate")
	if got != "termux-vibrate; termux-vibrate" {
		t.Errorf("FixTypos() = %q", got)
	}
}

func TestScaleVolume(t *testing.T) {
	tests := []struct {
		percent int
		want    int
	}{
		{0, 0},
		{7, 1},
		{10, 2},
		{30, 4},
		{50, 8},
		{70, 10},
		{94, 14},
		{95, 15},
		{100, 15},
		{1000, 15},
		{-20, 0},
	}

	for _, tt := range tests {
		if got := ScaleVolume(tt.percent); got != tt.want {
			t.Errorf("ScaleVolume(%d) = %d, want %d", tt.percent, got, tt.want)
		}
	}
}

func TestRescaleVolume(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"not a volume command", "termux-brightness 200", "termux-brightness 200"},
		{"hundred", "termux-volume music 100", "termux-volume music 15"},
		{"ninety-five", "termux-volume music 95", "termux-volume music 15"},
		{"ninety-four", "termux-volume music 94", "termux-volume music 14"},
		{"fifty", "termux-volume music 50", "termux-volume music 8"},
		{"device value kept", "termux-volume system 3", "termux-volume system 3"},
		{"default stream inserted", "termux-volume 3", "termux-volume music 3"},
		{"every number scaled", "termux-volume ring 20 120", "termux-volume ring 3 15"},
		// The rescaled 6 is found again before the original 6%.
		{"first occurrence only", "termux-volume music 40 6%", "termux-volume music 1 6%"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := RescaleVolume(tt.in); got != tt.want {
				t.Errorf("RescaleVolume(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestRescaleVolumeInsertsOneStream(t *testing.T) {
	inputs := []string{"termux-volume 50", "termux-volume 5%", "termux-volume"}

	for _, in := range inputs {
		got := RescaleVolume(in)
		rest, ok := strings.CutPrefix(got, VolumeCommand+" ")
		if !ok {
			t.Fatalf("RescaleVolume(%q) = %q, want utility name followed by a stream", in, got)
		}
		if !strings.HasPrefix(rest, DefaultStream) {
			t.Errorf("RescaleVolume(%q) = %q, want %q right after %s", in, got, DefaultStream, VolumeCommand)
		}

		found := 0
		for _, stream := range AudioStreams {
			found += strings.Count(got, stream)
		}
		if found != 1 {
			t.Errorf("RescaleVolume(%q) = %q, want exactly one stream name, found %d", in, got, found)
		}
	}
}

func TestExecutable(t *testing.T) {
	tests := []struct {
		cmd  string
		want bool
	}{
		{"termux-vibrate", true},
		{"termux-volume music 8", true},
		{"I can't do that,", false},
		{"", false},
		{"termux-toast Error occurred", false},
		{"ERROR: connection refused", false},
	}

	for _, tt := range tests {
		if got := Executable(tt.cmd); got != tt.want {
			t.Errorf("Executable(%q) = %v, want %v", tt.cmd, got, tt.want)
		}
	}
}
