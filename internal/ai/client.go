package ai

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"supernova/internal/config"
	"supernova/internal/logger"

	"github.com/sirupsen/logrus"
)

// ConnectionApology is the user-visible answer substituted for a transport
// failure. The pipeline keeps going with this text so the user never sees a
// blank response.
const ConnectionApology = "Connection error. Please check your network and try again."

// Provider defines the interface to the remote research-assistant webhook
type Provider interface {
	// Send posts a single message and returns the raw reply text
	Send(message, sessionID, persona string) (string, error)
}

// WebhookClient implements Provider against the configured per-persona
// webhook endpoints
type WebhookClient struct {
	config *config.AIConfig
	client *http.Client
}

// NewWebhookClient creates a webhook client from configuration
func NewWebhookClient(aiConfig *config.AIConfig) *WebhookClient {
	return &WebhookClient{
		config: aiConfig,
		client: &http.Client{Timeout: aiConfig.RequestTimeout},
	}
}

type webhookRequest struct {
	Action    string `json:"action"`
	ChatInput string `json:"chatInput"`
	SessionID string `json:"sessionId"`
	Model     string `json:"model"`
}

// webhookResponse covers the reply variants the webhook is known to emit.
// Whichever of the three fields is populated first wins.
type webhookResponse struct {
	Output  string `json:"output"`
	Message string `json:"message"`
	Text    string `json:"text"`
}

// Send posts the message to the persona's endpoint and extracts the reply
// text. JSON replies are read from the output/message/text field; anything
// else is returned verbatim.
func (c *WebhookClient) Send(message, sessionID, persona string) (string, error) {
	endpoint := c.config.EndpointFor(persona)
	if endpoint == "" {
		return "", fmt.Errorf("no webhook endpoint configured for persona %q", persona)
	}

	body, err := json.Marshal(webhookRequest{
		Action:    "sendMessage",
		ChatInput: message,
		SessionID: sessionID,
		Model:     persona,
	})
	if err != nil {
		return "", fmt.Errorf("error marshaling request: %w", err)
	}

	req, err := http.NewRequest("POST", endpoint, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("error creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if c.config.APIToken != "" {
		req.Header.Set("Authorization", "Bearer "+c.config.APIToken)
	}

	logger.Log.WithFields(logrus.Fields{
		"persona":        persona,
		"session_id":     sessionID,
		"message_length": len(message),
	}).Info("Calling AI webhook")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("error sending request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("error reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("webhook returned status %d: %s", resp.StatusCode, string(raw))
	}

	logger.Log.WithField("response_length", len(raw)).Debug("Received raw webhook response")

	if strings.Contains(resp.Header.Get("Content-Type"), "application/json") {
		var decoded webhookResponse
		if err := json.Unmarshal(raw, &decoded); err != nil {
			return "", fmt.Errorf("error decoding response: %w", err)
		}
		switch {
		case decoded.Output != "":
			return decoded.Output, nil
		case decoded.Message != "":
			return decoded.Message, nil
		case decoded.Text != "":
			return decoded.Text, nil
		}
		// JSON without any known field: hand the caller the raw blob
		return string(raw), nil
	}

	return string(raw), nil
}
