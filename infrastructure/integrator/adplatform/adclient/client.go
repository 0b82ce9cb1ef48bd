package adclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"path"
	"time"

	addomain "github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/adplatform/domain"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
)

// Client é o acesso de baixo nível à API da plataforma de anúncios. Cada
// método corresponde a um endpoint; a montagem das operações de uma proposta
// fica no nível acima.
type Client interface {
	MutateCampaignBudget(ctx context.Context, campaignID string, amount float64) (*addomain.MutationResult, error)
	MutateTargetCPA(ctx context.Context, campaignID string, value float64) (*addomain.MutationResult, error)
	MutateTargetROAS(ctx context.Context, campaignID string, value float64) (*addomain.MutationResult, error)
	MutateDeviceBidModifier(ctx context.Context, campaignID, device string, modifier float64) (*addomain.MutationResult, error)
	AddNegativeKeywords(ctx context.Context, campaignID string, keywords []string, matchType string) (*addomain.MutationResult, error)
	AddKeywords(ctx context.Context, adGroupID string, keywords []string, matchType string) (*addomain.MutationResult, error)
	CreateResponsiveSearchAd(ctx context.Context, adGroupID string, headlines, descriptions []string, finalURL string) (*addomain.MutationResult, error)
	SetAdStatus(ctx context.Context, adGroupID, adID, status string) (*addomain.MutationResult, error)
	RemoveResources(ctx context.Context, resourceNames []string) (*addomain.MutationResult, error)
	ListCampaigns(ctx context.Context) ([]addomain.Campaign, error)
	GetCampaignMetrics(ctx context.Context, campaignName string, startDate, endDate time.Time) (*addomain.CampaignMetrics, error)
}

type AdPlatformClient struct {
	httpClient *http.Client
	cfg        *config.Config
}

func NewClient(cfg *config.Config) Client {
	timeout := time.Duration(cfg.AdPlatform.TimeoutSeconds) * time.Second
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &AdPlatformClient{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		cfg: cfg,
	}
}

func (c *AdPlatformClient) MutateCampaignBudget(ctx context.Context, campaignID string, amount float64) (*addomain.MutationResult, error) {
	body := map[string]interface{}{
		"amount": amount,
	}
	return c.mutate(ctx, fmt.Sprintf("campaigns/%s/budget", campaignID), body)
}

func (c *AdPlatformClient) MutateTargetCPA(ctx context.Context, campaignID string, value float64) (*addomain.MutationResult, error) {
	body := map[string]interface{}{
		"target_cpa": value,
	}
	return c.mutate(ctx, fmt.Sprintf("campaigns/%s/target-cpa", campaignID), body)
}

func (c *AdPlatformClient) MutateTargetROAS(ctx context.Context, campaignID string, value float64) (*addomain.MutationResult, error) {
	body := map[string]interface{}{
		"target_roas": value,
	}
	return c.mutate(ctx, fmt.Sprintf("campaigns/%s/target-roas", campaignID), body)
}

func (c *AdPlatformClient) MutateDeviceBidModifier(ctx context.Context, campaignID, device string, modifier float64) (*addomain.MutationResult, error) {
	body := map[string]interface{}{
		"device":   device,
		"modifier": modifier,
	}
	return c.mutate(ctx, fmt.Sprintf("campaigns/%s/device-bid-modifier", campaignID), body)
}

func (c *AdPlatformClient) AddNegativeKeywords(ctx context.Context, campaignID string, keywords []string, matchType string) (*addomain.MutationResult, error) {
	body := map[string]interface{}{
		"keywords":   keywords,
		"match_type": matchType,
	}
	return c.mutate(ctx, fmt.Sprintf("campaigns/%s/negative-keywords", campaignID), body)
}

func (c *AdPlatformClient) AddKeywords(ctx context.Context, adGroupID string, keywords []string, matchType string) (*addomain.MutationResult, error) {
	body := map[string]interface{}{
		"keywords":   keywords,
		"match_type": matchType,
	}
	return c.mutate(ctx, fmt.Sprintf("ad-groups/%s/keywords", adGroupID), body)
}

func (c *AdPlatformClient) CreateResponsiveSearchAd(ctx context.Context, adGroupID string, headlines, descriptions []string, finalURL string) (*addomain.MutationResult, error) {
	body := map[string]interface{}{
		"headlines":    headlines,
		"descriptions": descriptions,
		"final_url":    finalURL,
	}
	return c.mutate(ctx, fmt.Sprintf("ad-groups/%s/responsive-search-ads", adGroupID), body)
}

func (c *AdPlatformClient) SetAdStatus(ctx context.Context, adGroupID, adID, status string) (*addomain.MutationResult, error) {
	body := map[string]interface{}{
		"status": status,
	}
	return c.mutate(ctx, fmt.Sprintf("ad-groups/%s/ads/%s/status", adGroupID, adID), body)
}

// RemoveResources remove recursos criados por uma execução (keywords, anúncios)
// a partir dos resource names retornados na criação
func (c *AdPlatformClient) RemoveResources(ctx context.Context, resourceNames []string) (*addomain.MutationResult, error) {
	body := map[string]interface{}{
		"resource_names": resourceNames,
	}
	return c.mutate(ctx, "resources/remove", body)
}

func (c *AdPlatformClient) ListCampaigns(ctx context.Context) ([]addomain.Campaign, error) {
	endpoint, err := c.buildURL("campaigns")
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	data, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	var response struct {
		Campaigns []addomain.Campaign `json:"campaigns"`
	}
	if err := json.Unmarshal(data, &response); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return response.Campaigns, nil
}

func (c *AdPlatformClient) GetCampaignMetrics(ctx context.Context, campaignName string, startDate, endDate time.Time) (*addomain.CampaignMetrics, error) {
	endpoint, err := c.buildURL("metrics")
	if err != nil {
		return nil, err
	}

	parsed, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("erro ao analisar a URL: %w", err)
	}

	query := parsed.Query()
	query.Set("campaign_name", campaignName)
	query.Set("start_date", startDate.Format(time.DateOnly))
	query.Set("end_date", endDate.Format(time.DateOnly))
	parsed.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, parsed.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	c.setHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	data, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	metrics := &addomain.CampaignMetrics{}
	if err := json.Unmarshal(data, metrics); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return metrics, nil
}

func (c *AdPlatformClient) mutate(ctx context.Context, resource string, body map[string]interface{}) (*addomain.MutationResult, error) {
	endpoint, err := c.buildURL(resource)
	if err != nil {
		return nil, err
	}

	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("erro ao serializar o corpo da requisição: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("erro ao criar a requisição: %w", err)
	}
	c.setHeaders(req)
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("erro ao executar a requisição: %w", err)
	}
	defer resp.Body.Close()

	data, err := c.handleResponse(resp)
	if err != nil {
		return nil, err
	}

	result := &addomain.MutationResult{}
	if err := json.Unmarshal(data, result); err != nil {
		return nil, fmt.Errorf("erro ao decodificar a resposta: %w", err)
	}

	return result, nil
}

func (c *AdPlatformClient) buildURL(resource string) (string, error) {
	endpoint, err := url.Parse(c.cfg.AdPlatform.BaseURL)
	if err != nil {
		return "", fmt.Errorf("erro ao analisar a URL base: %w", err)
	}
	endpoint.Path = path.Join(endpoint.Path, "customers", c.cfg.AdPlatform.CustomerID, resource)
	return endpoint.String(), nil
}

func (c *AdPlatformClient) setHeaders(req *http.Request) {
	req.Header.Set("Authorization", "Bearer "+c.cfg.AdPlatform.AccessToken)
	req.Header.Set("developer-token", c.cfg.AdPlatform.DeveloperToken)
	req.Header.Set("Accept", "application/json")
}

func (c *AdPlatformClient) handleResponse(resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("erro ao ler a resposta: %w", err)
	}

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		apiErr := &addomain.APIError{StatusCode: resp.StatusCode}
		if err := json.Unmarshal(data, apiErr); err != nil {
			apiErr.Message = string(data)
		}
		return nil, apiErr
	}

	return data, nil
}
