package whatsapp

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

// Gateway represents a WhatsApp message gateway
type Gateway interface {
	SendMessage(whatsapp, message string) (string, error)
}

// HTTPGateway sends messages through a WhatsApp API bridge
type HTTPGateway struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// MockGateway simulates a WhatsApp gateway for development and tests
type MockGateway struct {
	// Sent collects the messages pushed through the mock, in order.
	Sent []SentMessage
	// Fail makes SendMessage return an error.
	Fail bool
}

// SentMessage is one message recorded by the MockGateway
type SentMessage struct {
	Whatsapp string
	Message  string
}

// NewHTTPGateway creates a new HTTPGateway
func NewHTTPGateway(baseURL, apiKey string) *HTTPGateway {
	return &HTTPGateway{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}
}

// NewMockGateway creates a new MockGateway
func NewMockGateway() *MockGateway {
	return &MockGateway{}
}

// SendMessage sends a WhatsApp message through the API bridge
func (g *HTTPGateway) SendMessage(whatsapp, message string) (string, error) {
	requestBody := map[string]string{
		"phone":   whatsapp,
		"message": message,
	}
	jsonBody, err := json.Marshal(requestBody)
	if err != nil {
		return "", fmt.Errorf("failed to marshal request body: %w", err)
	}

	req, err := http.NewRequest(http.MethodPost, g.baseURL+"/messages", bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.apiKey)

	resp, err := g.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("request failed with status %d: %s", resp.StatusCode, string(body))
	}

	var response struct {
		MessageID string `json:"messageId"`
	}
	if err := json.Unmarshal(body, &response); err != nil {
		return "", fmt.Errorf("failed to parse response: %w", err)
	}
	return response.MessageID, nil
}

// SendMessage records the message and returns a synthetic id
func (g *MockGateway) SendMessage(whatsapp, message string) (string, error) {
	if g.Fail {
		return "", fmt.Errorf("mock gateway: send failed")
	}
	g.Sent = append(g.Sent, SentMessage{Whatsapp: whatsapp, Message: message})
	return fmt.Sprintf("MOCK-MSG-%d", len(g.Sent)), nil
}
