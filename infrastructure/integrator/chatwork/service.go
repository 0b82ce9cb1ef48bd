// Package chatwork envia notificações operacionais para a sala do time de
// tráfego no Chatwork. Quando desabilitado na configuração, todas as
// notificações viram no-op.
package chatwork

import (
	"context"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/infrastructure/integrator/chatwork/chatworkclient"
	"github.com/vfg2006/campaign-advisor-api/internal/config"
	"github.com/vfg2006/campaign-advisor-api/internal/domain"
)

type Notifier interface {
	NotifyExecutionSuccess(ctx context.Context, proposal *domain.Proposal, execution *domain.ProposalExecution)
	NotifyExecutionFailure(ctx context.Context, proposal *domain.Proposal, failureErr error)
	NotifyRollback(ctx context.Context, proposal *domain.Proposal, rollback *domain.ProposalRollback)
	RegisterManualCreativeTask(ctx context.Context, proposal *domain.Proposal)
}

type ChatworkNotifier struct {
	cfg    *config.Config
	Client chatworkclient.Client
}

func New(cfg *config.Config, client chatworkclient.Client) *ChatworkNotifier {
	return &ChatworkNotifier{
		cfg:    cfg,
		Client: client,
	}
}

func (n *ChatworkNotifier) NotifyExecutionSuccess(ctx context.Context, proposal *domain.Proposal, execution *domain.ProposalExecution) {
	operations := 0
	partial := false
	if execution.ActualChanges != nil {
		operations = len(execution.ActualChanges.Operations)
		partial = execution.ActualChanges.PartialFailure
	}

	title := "Proposta executada"
	if partial {
		title = "Proposta executada com falhas parciais"
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("[info][title]%s[/title]", title))
	sb.WriteString(fmt.Sprintf("Proposta: %s\n", proposal.Title))
	sb.WriteString(fmt.Sprintf("Categoria: %s\n", proposal.Category.Label()))
	sb.WriteString(fmt.Sprintf("Operações: %d\n", operations))
	sb.WriteString(fmt.Sprintf("Executado por: %s\n", execution.ExecutedBy))
	sb.WriteString(fmt.Sprintf("%s/proposals/%s", n.cfg.Chatwork.DashboardURL, proposal.ID))
	sb.WriteString("[/info]")

	n.post(ctx, sb.String())
}

func (n *ChatworkNotifier) NotifyExecutionFailure(ctx context.Context, proposal *domain.Proposal, failureErr error) {
	var sb strings.Builder
	if n.cfg.Chatwork.AssigneeID != "" {
		sb.WriteString(fmt.Sprintf("[To:%s]\n", n.cfg.Chatwork.AssigneeID))
	}
	sb.WriteString("[info][title]Falha na execução de proposta[/title]")
	sb.WriteString(fmt.Sprintf("Proposta: %s\n", proposal.Title))
	sb.WriteString(fmt.Sprintf("Erro: %s\n", failureErr.Error()))
	sb.WriteString(fmt.Sprintf("%s/proposals/%s", n.cfg.Chatwork.DashboardURL, proposal.ID))
	sb.WriteString("[/info]")

	n.post(ctx, sb.String())
}

func (n *ChatworkNotifier) NotifyRollback(ctx context.Context, proposal *domain.Proposal, rollback *domain.ProposalRollback) {
	var sb strings.Builder
	sb.WriteString("[info][title]Proposta revertida[/title]")
	sb.WriteString(fmt.Sprintf("Proposta: %s\n", proposal.Title))
	if rollback.Reason != "" {
		sb.WriteString(fmt.Sprintf("Motivo: %s\n", rollback.Reason))
	}
	sb.WriteString(fmt.Sprintf("Revertido por: %s\n", rollback.RolledBackBy))
	sb.WriteString(fmt.Sprintf("%s/proposals/%s", n.cfg.Chatwork.DashboardURL, proposal.ID))
	sb.WriteString("[/info]")

	n.post(ctx, sb.String())
}

// RegisterManualCreativeTask registra uma tarefa na sala para que o criativo
// aprovado seja aplicado manualmente. Sem responsável configurado, cai para
// uma mensagem comum.
func (n *ChatworkNotifier) RegisterManualCreativeTask(ctx context.Context, proposal *domain.Proposal) {
	var sb strings.Builder
	sb.WriteString("[info][title]Criativo aprovado para aplicação manual[/title]")
	sb.WriteString(fmt.Sprintf("Proposta: %s\n", proposal.Title))
	sb.WriteString(fmt.Sprintf("Categoria: %s\n", proposal.Category.Label()))
	if proposal.TargetCampaign != nil {
		sb.WriteString(fmt.Sprintf("Campanha: %s\n", *proposal.TargetCampaign))
	}
	sb.WriteString(fmt.Sprintf("%s/proposals/%s", n.cfg.Chatwork.DashboardURL, proposal.ID))
	sb.WriteString("[/info]")

	if n.cfg.Chatwork.AssigneeID == "" {
		n.post(ctx, sb.String())
		return
	}

	if !n.cfg.Chatwork.Enabled {
		return
	}

	if err := n.Client.RegisterTask(ctx, n.cfg.Chatwork.RoomID, sb.String(), n.cfg.Chatwork.AssigneeID); err != nil {
		logrus.WithError(err).Warn("chatwork: failed to register manual task")
	}
}

// post envia de forma best-effort: falha de notificação nunca derruba a
// operação que a originou
func (n *ChatworkNotifier) post(ctx context.Context, body string) {
	if !n.cfg.Chatwork.Enabled {
		return
	}

	if err := n.Client.PostMessage(ctx, n.cfg.Chatwork.RoomID, body); err != nil {
		logrus.WithError(err).Warn("chatwork: failed to post notification")
	}
}
