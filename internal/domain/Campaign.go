package domain

import "time"

// CampaignStatus é o estado da campanha na plataforma de anúncios
type CampaignStatus string

const (
	CampaignStatusActive  CampaignStatus = "active"
	CampaignStatusPaused  CampaignStatus = "paused"
	CampaignStatusRemoved CampaignStatus = "removed"
)

// Campaign é o espelho local de uma campanha da plataforma de anúncios,
// sincronizado periodicamente. Consultado pela limpeza de propostas pendentes
// e pela listagem (flag is_campaign_active).
type Campaign struct {
	ID         string         `json:"id"`
	ExternalID string         `json:"external_id"`
	Name       string         `json:"name"`
	Status     CampaignStatus `json:"status"`
	SyncedAt   time.Time      `json:"synced_at"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  time.Time      `json:"updated_at"`
}
