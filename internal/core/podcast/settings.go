package podcast

import (
	"encoding/json"
	"strings"
)

// Settings is the resolved synthesis configuration: caller credentials plus
// the two-voice pair. Values come from the configuration store; keys there
// may carry a "podcast" or "doubao" prefix depending on which settings screen
// wrote them.
type Settings struct {
	AppID     string
	AccessKey string
	Speakers  [2]string
}

var configPrefixes = []string{"podcast.", "podcast_", "doubao.", "doubao_"}

// NormalizeConfigKeys strips the known prefixes so the same logical key is
// found regardless of how it was stored. Later entries win on collision.
func NormalizeConfigKeys(raw map[string]string) map[string]string {
	out := make(map[string]string, len(raw))
	for k, v := range raw {
		for _, p := range configPrefixes {
			if strings.HasPrefix(k, p) {
				k = k[len(p):]
				break
			}
		}
		out[k] = v
	}
	return out
}

// ResolveSettings builds Settings from normalized config values. Credentials
// accept the historical key aliases; the speaker pair falls back to
// DefaultSpeakers when unconfigured.
func ResolveSettings(values map[string]string) (Settings, error) {
	s := Settings{
		AppID:    firstOf(values, "app_id", "appId"),
		Speakers: ResolveSpeakers(values),
	}
	s.AccessKey = firstOf(values, "access_token", "access_key", "accessToken")

	if s.AppID == "" || s.AccessKey == "" {
		return Settings{}, &ConfigError{Reason: "missing app_id or access_token"}
	}
	return s, nil
}

// ResolveSpeakers picks the voice pair: a JSON "speakers" list, separate
// speaker1/speaker2 keys, or the built-in defaults, in that order.
func ResolveSpeakers(values map[string]string) [2]string {
	if raw := values["speakers"]; raw != "" {
		var list []string
		if err := json.Unmarshal([]byte(raw), &list); err == nil && len(list) >= 2 {
			return [2]string{list[0], list[1]}
		}
	}

	s1 := firstOf(values, "speaker1", "speaker_1")
	s2 := firstOf(values, "speaker2", "speaker_2")
	if s1 != "" && s2 != "" {
		return [2]string{s1, s2}
	}
	return DefaultSpeakers
}

func firstOf(values map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := values[k]; v != "" {
			return v
		}
	}
	return ""
}
