package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

// ImageClient define la interfaz para editar la foto de unias del cliente.
// Recibe el prompt de edicion y la imagen original en base64; devuelve
// la imagen editada tambien en base64 (PNG).
type ImageClient interface {
	Edit(ctx context.Context, prompt, imageB64 string) (string, error)
}

// HTTPImageClient implementa ImageClient contra la API de generacion de imagenes.
type HTTPImageClient struct {
	baseURL string
	apiKey  string
	model   string
	client  *http.Client
	logger  logger
}

// NewHTTPImageClient construye un cliente para el endpoint de imagenes.
func NewHTTPImageClient(baseURL, apiKey, model string, log any) *HTTPImageClient {
	l, _ := log.(logger)
	if baseURL == "" {
		baseURL = "https://api.openai.com/v1"
	}
	if model == "" {
		model = "gpt-image-1"
	}
	return &HTTPImageClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		apiKey:  apiKey,
		model:   model,
		client:  &http.Client{Timeout: 120 * time.Second},
		logger:  l,
	}
}

func (c *HTTPImageClient) Edit(ctx context.Context, prompt, imageB64 string) (string, error) {
	reqBody := imageRequest{
		Model:  c.model,
		Prompt: prompt,
		Image:  imageB64,
		Size:   "1024x1024",
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/images/generations", bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		if c.logger != nil {
			c.logger.Printf("image error status %d: %s", resp.StatusCode, string(respBody))
		}
		return "", fmt.Errorf("image http error: status=%d", resp.StatusCode)
	}

	var ir imageResponse
	if err := json.Unmarshal(respBody, &ir); err != nil {
		return "", fmt.Errorf("unmarshal response: %w", err)
	}

	if ir.Error != nil {
		return "", fmt.Errorf("image api error: %s", ir.Error.Message)
	}

	if len(ir.Data) == 0 || ir.Data[0].B64JSON == "" {
		return "", fmt.Errorf("image empty response")
	}

	return ir.Data[0].B64JSON, nil
}

type imageRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
	Image  string `json:"image,omitempty"`
	Size   string `json:"size"`
}

type imageResponse struct {
	Data []struct {
		B64JSON string `json:"b64_json"`
	} `json:"data"`
	Error *struct {
		Message string `json:"message"`
	} `json:"error,omitempty"`
}
