package domain

import "sort"

// Campos reconhecidos nos action steps. A análise gera steps com o campo
// endereçado explicitamente; steps sem campo caem no comportamento padrão da
// categoria.
const (
	FieldBudget            = "budget"
	FieldTargetCPA         = "target_cpa"
	FieldTargetROAS        = "target_roas"
	FieldDeviceBidModifier = "device_bid_modifier"
	FieldNegativeKeywords  = "negative_keywords"
	FieldKeywords          = "keywords"
)

// PlanOperations deriva as operações discretas de mudança a partir dos action
// steps de uma proposta. Cada entidade+campo endereçável vira uma operação
// separada (modificadores por dispositivo geram uma operação por dispositivo).
// Categorias sem execução automática não produzem operações.
func PlanOperations(category ProposalCategory, steps *ActionSteps) []ChangeOperation {
	if steps == nil || !category.AutoExecutable() {
		return nil
	}

	operations := make([]ChangeOperation, 0, len(steps.Steps))
	for _, step := range steps.Steps {
		operations = append(operations, planStep(category, step)...)
	}

	return operations
}

func planStep(category ProposalCategory, step ActionStep) []ChangeOperation {
	switch category {
	case CategoryBudget:
		return planValueStep(OpSetCampaignBudget, step)

	case CategoryBidding, CategoryCompetitiveResponse:
		return planBiddingStep(step)

	case CategoryKeyword:
		return planKeywordStep(step)

	case CategoryCreative:
		return planCreativeStep(step)

	case CategoryTargeting:
		return planDeviceModifierOps(step)
	}

	return nil
}

func planValueStep(kind OperationKind, step ActionStep) []ChangeOperation {
	return []ChangeOperation{{
		Kind:        kind,
		CampaignID:  step.CampaignID,
		AdGroupID:   step.AdGroupID,
		Description: step.Description,
		OldValue:    step.CurrentValue,
		NewValue:    step.NewValue,
	}}
}

// planBiddingStep resolve o campo endereçado pelo step. Resposta competitiva
// reutiliza os mesmos campos de lance e orçamento.
func planBiddingStep(step ActionStep) []ChangeOperation {
	switch step.Field {
	case FieldBudget:
		return planValueStep(OpSetCampaignBudget, step)
	case FieldTargetROAS:
		return planValueStep(OpSetTargetROAS, step)
	case FieldDeviceBidModifier:
		return planDeviceModifierOps(step)
	}
	// target_cpa é o campo padrão de lances
	return planValueStep(OpSetTargetCPA, step)
}

func planDeviceModifierOps(step ActionStep) []ChangeOperation {
	if len(step.DeviceModifiers) == 0 {
		return nil
	}

	// Ordem estável para que o plano seja determinístico
	devices := make([]string, 0, len(step.DeviceModifiers))
	for device := range step.DeviceModifiers {
		devices = append(devices, device)
	}
	sort.Strings(devices)

	operations := make([]ChangeOperation, 0, len(devices))
	for _, device := range devices {
		modifier := step.DeviceModifiers[device]
		operations = append(operations, ChangeOperation{
			Kind:        OpSetDeviceBidModifier,
			CampaignID:  step.CampaignID,
			Description: step.Description,
			DeviceType:  device,
			NewValue:    &modifier,
		})
	}

	return operations
}

func planKeywordStep(step ActionStep) []ChangeOperation {
	if len(step.Keywords) == 0 {
		return nil
	}

	kind := OpAddKeywords
	if step.Field == FieldNegativeKeywords {
		kind = OpAddNegativeKeywords
	}

	return []ChangeOperation{{
		Kind:        kind,
		CampaignID:  step.CampaignID,
		AdGroupID:   step.AdGroupID,
		Description: step.Description,
		Keywords:    step.Keywords,
		MatchType:   step.MatchType,
	}}
}

// planCreativeStep cria o novo anúncio responsivo e, quando o step indica o
// anúncio substituído, pausa o antigo em uma operação separada
func planCreativeStep(step ActionStep) []ChangeOperation {
	operations := make([]ChangeOperation, 0, 2)

	if len(step.Headlines) > 0 || len(step.Descriptions) > 0 {
		operations = append(operations, ChangeOperation{
			Kind:         OpCreateResponsiveSearchAd,
			CampaignID:   step.CampaignID,
			AdGroupID:    step.AdGroupID,
			Description:  step.Description,
			Headlines:    step.Headlines,
			Descriptions: step.Descriptions,
			FinalURL:     step.FinalURL,
		})
	}

	if step.OldAdID != "" {
		operations = append(operations, ChangeOperation{
			Kind:        OpPauseAd,
			CampaignID:  step.CampaignID,
			AdGroupID:   step.AdGroupID,
			AdID:        step.OldAdID,
			Description: step.Description,
		})
	}

	return operations
}

// ApplyEdits aplica o override do operador sobre os steps, retornando uma
// cópia modificada. Os steps originais permanecem intactos para registro no
// histórico de edição.
func ApplyEdits(steps []ActionStep, edits *EditedValues) []ActionStep {
	if edits.IsEmpty() {
		return steps
	}

	edited := make([]ActionStep, len(steps))
	copy(edited, steps)

	for i := range edited {
		applyEditToStep(&edited[i], edits)
	}

	return edited
}

func applyEditToStep(step *ActionStep, edits *EditedValues) {
	if edits.CurrentValue != nil {
		step.CurrentValue = edits.CurrentValue
	}
	if edits.NewValue != nil {
		step.NewValue = edits.NewValue
	}
	if edits.TargetCPA != nil {
		step.Field = FieldTargetCPA
		step.NewValue = edits.TargetCPA
	}
	if edits.TargetROAS != nil {
		step.Field = FieldTargetROAS
		step.NewValue = edits.TargetROAS
	}
	if len(edits.NegativeKeywords) > 0 {
		step.Field = FieldNegativeKeywords
		step.Keywords = edits.NegativeKeywords
	}
	if len(edits.AddKeywords) > 0 {
		step.Field = FieldKeywords
		step.Keywords = edits.AddKeywords
	}
	if edits.MatchType != "" {
		step.MatchType = edits.MatchType
	}
	if edits.AdGroupID != "" {
		step.AdGroupID = edits.AdGroupID
	}
	if len(edits.Headlines) > 0 {
		step.Headlines = edits.Headlines
	}
	if len(edits.Descriptions) > 0 {
		step.Descriptions = edits.Descriptions
	}
	if edits.FinalURL != "" {
		step.FinalURL = edits.FinalURL
	}
	if edits.OldAdID != "" {
		step.OldAdID = edits.OldAdID
	}
	if len(edits.DeviceModifiers) > 0 {
		step.DeviceModifiers = edits.DeviceModifiers
	}
}
