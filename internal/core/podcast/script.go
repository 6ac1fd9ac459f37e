package podcast

import "strings"

// Speaker tags the script generator emits in front of every dialogue line.
const (
	hostOneTag = "**Host 1:**"
	hostTwoTag = "**Host 2:**"
)

// DefaultSpeakers is the built-in voice pair used when none is configured.
var DefaultSpeakers = [2]string{
	"zh_female_mizaitongxue_v2_saturn_bigtts",
	"zh_male_dayixiansheng_v2_saturn_bigtts",
}

// Utterance is one spoken line bound to a resolved voice. Order matters:
// playback order is script order.
type Utterance struct {
	Text    string `json:"text"`
	Speaker string `json:"speaker"`
}

// ParseScript turns a two-host script into the ordered utterance list for a
// synthesis request. Lines carrying neither host tag are dropped; the script
// generator wraps dialogue in markdown and stray headings or blank lines are
// expected noise, not errors.
func ParseScript(script string, voices [2]string) []Utterance {
	var out []Utterance
	for _, line := range strings.Split(strings.TrimSpace(script), "\n") {
		line = strings.TrimSpace(line)
		var voice, text string
		switch {
		case strings.HasPrefix(line, hostOneTag):
			voice = voices[0]
			text = strings.TrimSpace(strings.TrimPrefix(line, hostOneTag))
		case strings.HasPrefix(line, hostTwoTag):
			voice = voices[1]
			text = strings.TrimSpace(strings.TrimPrefix(line, hostTwoTag))
		default:
			continue
		}
		if text != "" {
			out = append(out, Utterance{Text: text, Speaker: voice})
		}
	}
	return out
}
