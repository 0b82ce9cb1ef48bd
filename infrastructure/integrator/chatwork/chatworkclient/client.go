package chatworkclient

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"path"
	"strings"
	"time"

	"github.com/vfg2006/campaign-advisor-api/internal/config"
)

const baseURL = "https://api.chatwork.com/v2"

type Client interface {
	PostMessage(ctx context.Context, roomID, body string) error
	RegisterTask(ctx context.Context, roomID, body, assigneeID string) error
}

type ChatworkClient struct {
	httpClient *http.Client
	cfg        *config.Config
}

func NewClient(cfg *config.Config) Client {
	return &ChatworkClient{
		httpClient: &http.Client{
			Timeout: 15 * time.Second,
		},
		cfg: cfg,
	}
}

// PostMessage publica uma mensagem na sala informada
func (c *ChatworkClient) PostMessage(ctx context.Context, roomID, body string) error {
	form := url.Values{}
	form.Set("body", body)

	return c.postForm(ctx, path.Join("rooms", roomID, "messages"), form)
}

// RegisterTask cria uma tarefa na sala, atribuída ao responsável informado
func (c *ChatworkClient) RegisterTask(ctx context.Context, roomID, body, assigneeID string) error {
	form := url.Values{}
	form.Set("body", body)
	form.Set("to_ids", assigneeID)

	return c.postForm(ctx, path.Join("rooms", roomID, "tasks"), form)
}

func (c *ChatworkClient) postForm(ctx context.Context, endpointPath string, form url.Values) error {
	endpoint, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, endpointPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint.String(), strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("erro ao criar a requisição: %w", err)
	}

	req.Header.Set("X-ChatWorkToken", c.cfg.Chatwork.APIToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("requisição falhou com status: %s", resp.Status)
	}

	return nil
}
