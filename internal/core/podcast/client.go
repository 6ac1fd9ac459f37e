package podcast

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Client generates podcast audio from a two-host script. Each GenerateAudio
// call opens its own connection and session; nothing is pooled or shared, so
// concurrent generations are independent.
type Client struct {
	Endpoint    string
	WaitTimeout time.Duration
	Settings    Settings

	dial DialFunc
}

func NewClient(endpoint string, waitTimeout time.Duration, s Settings) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	if waitTimeout <= 0 {
		waitTimeout = DefaultWaitTimeout
	}
	return &Client{
		Endpoint:    endpoint,
		WaitTimeout: waitTimeout,
		Settings:    s,
		dial:        DialWebSocket,
	}
}

type synthesisRequest struct {
	InputID      string      `json:"input_id"`
	Action       int         `json:"action"`
	UseHeadMusic bool        `json:"use_head_music"`
	UseTailMusic bool        `json:"use_tail_music"`
	AudioConfig  audioConfig `json:"audio_config"`
	NLPTexts     []Utterance `json:"nlp_texts"`
	SpeakerInfo  speakerInfo `json:"speaker_info"`
}

type audioConfig struct {
	Format     string `json:"format"`
	SampleRate int    `json:"sample_rate"`
	SpeechRate int    `json:"speech_rate"`
}

type speakerInfo struct {
	RandomOrder2 bool     `json:"random_order2"`
	Speakers     []string `json:"speakers"`
}

// GenerateAudio synthesizes the script into one complete mp3 byte sequence.
// The script is validated before any dial; on success the caller gets the
// whole buffer, on any failure it gets nothing — partial audio is discarded.
// The connection is always given a graceful close before an error propagates.
func (c *Client) GenerateAudio(ctx context.Context, script string) ([]byte, error) {
	if c.Settings.AppID == "" || c.Settings.AccessKey == "" {
		return nil, &ConfigError{Reason: "missing app_id or access_token"}
	}

	utterances := ParseScript(script, c.Settings.Speakers)
	if len(utterances) == 0 {
		return nil, &ValidationError{Reason: "script contains no host-tagged lines"}
	}

	tr, err := c.dial(ctx, c.Endpoint, c.Settings)
	if err != nil {
		return nil, err
	}

	sess := NewSession(tr, uuid.NewString(), c.WaitTimeout)
	defer sess.Shutdown()

	if err := sess.StartConnection(ctx); err != nil {
		return nil, err
	}

	payload, err := json.Marshal(synthesisRequest{
		InputID: uuid.NewString(),
		Action:  3,
		AudioConfig: audioConfig{
			Format:     "mp3",
			SampleRate: 24000,
			SpeechRate: 0,
		},
		NLPTexts: utterances,
		SpeakerInfo: speakerInfo{
			RandomOrder2: false,
			Speakers:     c.Settings.Speakers[:],
		},
	})
	if err != nil {
		return nil, err
	}

	if err := sess.StartSession(ctx, payload); err != nil {
		return nil, err
	}
	if err := sess.FinishSession(ctx); err != nil {
		return nil, err
	}
	return sess.CollectAudio(ctx)
}
