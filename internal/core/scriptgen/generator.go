// Package scriptgen turns notebook source text into a two-host podcast
// script ready for audio synthesis.
package scriptgen

import (
	"context"
	"crypto/tls"
	"errors"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

const podcastPrompt = `你是一名播客脚本作家，擅长将复杂的文档内容转化为生动的对话形式。请基于提供的文档内容，创建一个播客脚本，用于向听众解释文档中的关键内容。

要求：
1. 包含两个主持人的对话
2. 对话应该自然流畅，符合播客的口语化风格
3. 覆盖文档的主要内容和关键观点
4. 对话应该引人入胜，便于听众理解
5. 精简对话内容，避免冗长而复杂的对话，每次对话控制在150字以内

输出格式：
**Host 1:** 对话内容
**Host 2:** 对话内容
**Host 1:** 对话内容
**Host 2:** 对话内容`

type Generator struct {
	c     *genai.Client
	model string
}

func New(apiKey, model string) (*Generator, error) {
	tr := &http.Transport{
		Proxy:             http.ProxyFromEnvironment,
		TLSClientConfig:   &tls.Config{MinVersion: tls.VersionTLS12},
		ForceAttemptHTTP2: false,
		MaxIdleConns:      100,
		IdleConnTimeout:   90 * time.Second,
	}
	hc := &http.Client{Transport: tr, Timeout: 60 * time.Second}
	reqTimeout := 45 * time.Second
	cl, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:     apiKey,
		Backend:    genai.BackendGeminiAPI,
		HTTPClient: hc,
		HTTPOptions: genai.HTTPOptions{
			APIVersion: "v1",
			Timeout:    &reqTimeout,
		},
	})
	if err != nil {
		return nil, err
	}
	return &Generator{c: cl, model: model}, nil
}

// PodcastScript generates host-tagged dialogue covering the given source
// text. Transient upstream failures are retried a few times with a short
// backoff before giving up.
func (g *Generator) PodcastScript(ctx context.Context, source string) (string, error) {
	parts := []*genai.Part{
		{Text: podcastPrompt},
		{Text: "文档内容：\n\n" + source},
	}

	temp := float32(0.7)
	topP := float32(0.9)
	cfg := &genai.GenerateContentConfig{
		Temperature:     &temp,
		TopP:            &topP,
		MaxOutputTokens: 8192,
	}

	var lastErr error
	for i := 0; i < 3; i++ {
		resp, err := g.c.Models.GenerateContent(ctx, g.model, []*genai.Content{{Parts: parts}}, cfg)
		if err != nil {
			lastErr = err
			if retriable(err) {
				time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
				continue
			}
			return "", err
		}
		if script := strings.TrimSpace(resp.Text()); script != "" {
			return script, nil
		}
		lastErr = errors.New("empty response")
		time.Sleep(time.Duration(300*(i+1)) * time.Millisecond)
	}
	return "", lastErr
}

func retriable(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	return strings.Contains(s, "unexpected EOF") ||
		strings.Contains(s, "timeout") ||
		strings.Contains(s, "RST_STREAM") ||
		strings.Contains(s, "connection reset")
}
