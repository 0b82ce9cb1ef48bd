package domain

// ProposalCategory representa a categoria de uma proposta. Cada categoria é
// uma variante com comportamento próprio (executável automaticamente ou não),
// evitando switches espalhados pelo código.
type ProposalCategory string

const (
	CategoryKeyword             ProposalCategory = "keyword"
	CategoryCreative            ProposalCategory = "creative"
	CategoryManualCreative      ProposalCategory = "manual_creative"
	CategoryTargeting           ProposalCategory = "targeting"
	CategoryBudget              ProposalCategory = "budget"
	CategoryBidding             ProposalCategory = "bidding"
	CategoryCompetitiveResponse ProposalCategory = "competitive_response"
)

type categorySpec struct {
	label          string
	autoExecutable bool
}

var categorySpecs = map[ProposalCategory]categorySpec{
	CategoryKeyword:             {label: "Palavras-chave", autoExecutable: true},
	CategoryCreative:            {label: "Texto de anúncio", autoExecutable: true},
	CategoryManualCreative:      {label: "Criativo manual (imagem/vídeo)", autoExecutable: false},
	CategoryTargeting:           {label: "Segmentação", autoExecutable: true},
	CategoryBudget:              {label: "Orçamento", autoExecutable: true},
	CategoryBidding:             {label: "Lances", autoExecutable: true},
	CategoryCompetitiveResponse: {label: "Resposta competitiva", autoExecutable: true},
}

func (c ProposalCategory) Valid() bool {
	_, ok := categorySpecs[c]
	return ok
}

// AutoExecutable indica se propostas desta categoria podem ser aplicadas pelo
// dispatcher. manual_creative sempre exige ação humana fora do fluxo
// automático (tarefa registrada via Chatwork).
func (c ProposalCategory) AutoExecutable() bool {
	spec, ok := categorySpecs[c]
	if !ok {
		return false
	}
	return spec.autoExecutable
}

func (c ProposalCategory) Label() string {
	spec, ok := categorySpecs[c]
	if !ok {
		return string(c)
	}
	return spec.label
}

// Categories retorna todas as categorias conhecidas
func Categories() []ProposalCategory {
	return []ProposalCategory{
		CategoryKeyword,
		CategoryCreative,
		CategoryManualCreative,
		CategoryTargeting,
		CategoryBudget,
		CategoryBidding,
		CategoryCompetitiveResponse,
	}
}
