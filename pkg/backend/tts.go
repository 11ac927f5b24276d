package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"time"
)

const defaultAudioType = "audio/mpeg"

// Speak synthesizes speech and returns the audio bytes.
func (c *Client) Speak(ctx context.Context, req SpeakRequest) (_ *Audio, err error) {
	const op = "tts.speak"
	start := time.Now()
	defer func() { c.obs.observe(op, start, err) }()

	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("%s: encode request: %w", op, err)
	}
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url("tts", "speak"), bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("%s: build request: %w", op, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "audio/*")

	resp, err := c.send(op, httpReq)
	if err != nil {
		return nil, err
	}
	defer func() { _ = resp.Body.Close() }()

	data, err := io.ReadAll(io.LimitReader(resp.Body, c.maxAudio+1))
	if err != nil {
		return nil, fmt.Errorf("%s: read audio: %w", op, err)
	}
	if len(data) == 0 {
		return nil, malformed(op, "empty audio")
	}
	if int64(len(data)) > c.maxAudio {
		return nil, fmt.Errorf("%s: audio exceeds %d bytes: %w", op, c.maxAudio, ErrAudioTooLarge)
	}
	return &Audio{ContentType: audioType(resp.Header.Get("Content-Type")), Data: data}, nil
}

func audioType(header string) string {
	mt, _, err := mime.ParseMediaType(header)
	if err != nil || mt == "" || mt == "application/octet-stream" {
		return defaultAudioType
	}
	return mt
}

// Voices lists the available speech voices.
func (c *Client) Voices(ctx context.Context) (*Voices, error) {
	var out Voices
	if err := c.callJSON(ctx, "tts.voices", http.MethodGet, c.url("tts", "voices"), nil, &out); err != nil {
		return nil, err
	}
	return &out, nil
}
