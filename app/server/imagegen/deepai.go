package imagegen

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"socialmedia/app/server/types"

	"go.uber.org/zap"
)

const DeepAIDefaultUrl = "https://api.deepai.org/api/text2img"

const deepAITimeout = 60 * time.Second

type DeepAI struct {
	apiKey string
	url    string
	client *http.Client
}

func NewDeepAI(apiKey, apiUrl string) *DeepAI {
	if apiUrl == "" {
		apiUrl = DeepAIDefaultUrl
	}
	return &DeepAI{
		apiKey: apiKey,
		url:    apiUrl,
		client: &http.Client{Timeout: deepAITimeout},
	}
}

type deepAIResponse struct {
	Id        string `json:"id"`
	OutputUrl string `json:"output_url"`
}

func (d *DeepAI) Generate(ctx context.Context, prompt string) (string, error) {
	zap.L().Debug("generating image with DeepAI", zap.String("prompt", prompt))

	form := url.Values{"text": {prompt}}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, d.url, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("error creating DeepAI request: %v", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("api-key", d.apiKey)

	resp, err := d.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error calling DeepAI: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", types.NewStatusCodeError(resp.StatusCode, nil)
	}

	var body deepAIResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", types.NewParsingError(err)
	}
	if body.OutputUrl == "" {
		return "", types.NewParsingError(errors.New("missing output_url"))
	}

	zap.L().Debug("DeepAI image generated", zap.String("id", body.Id))
	return body.OutputUrl, nil
}
