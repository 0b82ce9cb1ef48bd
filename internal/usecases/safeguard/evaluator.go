// Package safeguard avalia se um conjunto de operações derivado de uma
// proposta pode ser executado automaticamente, dentro dos limites
// configurados. A avaliação é pura: nenhum acesso a banco ou rede.
package safeguard

import (
	"fmt"
	"math"

	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

// Identificadores das regras, usados nas violações e nas métricas
const (
	RuleMaxChanges      = "max_changes"
	RuleBudgetChangePct = "budget_change_pct"
	RuleZeroBaseline    = "zero_baseline"
	RuleCategoryNotAuto = "category_not_auto_executable"
	RuleMissingValue    = "missing_value"
)

// fração do limite a partir da qual a avaliação emite aviso sem bloquear
const warningThreshold = 0.8

// Violation é uma regra violada que impede a execução automática
type Violation struct {
	Rule    string `json:"rule"`
	Message string `json:"message"`
}

// Decision é o resultado da avaliação de safeguards de uma proposta
type Decision struct {
	Allowed    bool        `json:"allowed"`
	Violations []Violation `json:"violations,omitempty"`
	Warnings   []string    `json:"warnings,omitempty"`
}

type Evaluator interface {
	Evaluate(category domain.ProposalCategory, operations []domain.ChangeOperation) Decision
}

type evaluator struct {
	limits config.Safeguards
}

func NewEvaluator(limits config.Safeguards) Evaluator {
	return &evaluator{limits: limits}
}

// Evaluate aplica todas as regras sobre o conjunto completo de operações.
// Violações se acumulam: o resultado lista todas, não apenas a primeira.
func (e *evaluator) Evaluate(category domain.ProposalCategory, operations []domain.ChangeOperation) Decision {
	decision := Decision{Allowed: true}

	if !category.AutoExecutable() {
		decision.addViolation(RuleCategoryNotAuto, fmt.Sprintf(
			"categoria %q exige execução manual e não pode ser automatizada", category,
		))
	}

	e.checkChangeCount(&decision, operations)

	for _, op := range operations {
		if op.IsBudgetChange() {
			e.checkBudgetChange(&decision, op)
		}
		checkHighRisk(&decision, op)
	}

	return decision
}

// checkHighRisk emite aviso para operações que reduzem tráfego de forma
// difícil de reverter na prática: pausa de anúncio e negativação de
// palavras-chave. O aviso não bloqueia a execução.
func checkHighRisk(decision *Decision, op domain.ChangeOperation) {
	switch op.Kind {
	case domain.OpPauseAd:
		decision.Warnings = append(decision.Warnings, fmt.Sprintf(
			"operação de alto risco: pausa do anúncio %s interrompe a veiculação imediatamente", op.AdID,
		))
	case domain.OpAddNegativeKeywords:
		decision.Warnings = append(decision.Warnings, fmt.Sprintf(
			"operação de alto risco: negativação de %d palavras-chave no grupo %s pode suprimir tráfego relevante",
			len(op.Keywords), op.AdGroupID,
		))
	}
}

func (e *evaluator) checkChangeCount(decision *Decision, operations []domain.ChangeOperation) {
	count := len(operations)
	max := e.limits.MaxChangesPerApproval

	if count > max {
		decision.addViolation(RuleMaxChanges, fmt.Sprintf(
			"proposta contém %d operações, acima do limite de %d por aprovação", count, max,
		))
		return
	}

	if float64(count) >= warningThreshold*float64(max) {
		decision.Warnings = append(decision.Warnings, fmt.Sprintf(
			"proposta contém %d operações, próximo do limite de %d", count, max,
		))
	}
}

// checkBudgetChange valida a variação percentual de uma operação de orçamento.
// Variação exatamente no limite passa; baseline zero com qualquer valor novo
// diferente de zero bloqueia, porque a variação percentual é indefinida.
func (e *evaluator) checkBudgetChange(decision *Decision, op domain.ChangeOperation) {
	if op.OldValue == nil || op.NewValue == nil {
		decision.addViolation(RuleMissingValue, fmt.Sprintf(
			"operação de orçamento na campanha %s sem valor atual ou novo", op.CampaignID,
		))
		return
	}

	oldValue := *op.OldValue
	newValue := *op.NewValue

	if oldValue == 0 {
		if newValue != 0 {
			decision.addViolation(RuleZeroBaseline, fmt.Sprintf(
				"campanha %s tem orçamento atual zero; variação percentual indefinida", op.CampaignID,
			))
		}
		return
	}

	pct := math.Abs(newValue-oldValue) / oldValue * 100
	maxPct := e.limits.MaxBudgetChangePct

	if pct > maxPct {
		decision.addViolation(RuleBudgetChangePct, fmt.Sprintf(
			"variação de orçamento de %.1f%% na campanha %s excede o limite de %.1f%%",
			pct, op.CampaignID, maxPct,
		))
		return
	}

	if pct >= warningThreshold*maxPct {
		decision.Warnings = append(decision.Warnings, fmt.Sprintf(
			"variação de orçamento de %.1f%% na campanha %s, próxima do limite de %.1f%%",
			pct, op.CampaignID, maxPct,
		))
	}
}

func (d *Decision) addViolation(rule, message string) {
	d.Allowed = false
	d.Violations = append(d.Violations, Violation{Rule: rule, Message: message})
}
