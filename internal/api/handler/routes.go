package handler

import (
	"net/http"

	"github.com/vfg2006/campaign-advisor-api/infrastructure/repository"
	"github.com/vfg2006/campaign-advisor-api/internal/api/handler/router"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/authenticating"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/chatting"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/executing"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/impact"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/proposing"
	"github.com/vfg2006/campaign-advisor-api/pkg/middleware"
)

func Healthcheck() []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(),
		},
	}
}

func Authentication(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/login",
			Method:  http.MethodPost,
			Handler: Login(service),
		},
		{
			Path:    "/v1/register",
			Method:  http.MethodPost,
			Handler: CreateUser(service),
		},
		{
			Path:        "/v1/users/:id/generate-password",
			Method:      http.MethodPost,
			Handler:     GeneratePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id/change-password",
			Method:      http.MethodPost,
			Handler:     ChangePassword(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/me",
			Method:      http.MethodGet,
			Handler:     GetMe(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func User(service authenticating.Authenticator) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/users",
			Method:      http.MethodGet,
			Handler:     ListUsers(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users",
			Method:      http.MethodPost,
			Handler:     CreateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodGet,
			Handler:     GetUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/users/:id",
			Method:      http.MethodPut,
			Handler:     UpdateUser(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Proposals retorna as rotas do ciclo de vida das propostas. A aprovação
// recebe também o executor: aprovação sem agendamento dispara a execução na
// mesma chamada.
func Proposals(service proposing.Proposer, executor executing.Executor) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/proposals",
			Method:      http.MethodGet,
			Handler:     ListProposals(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/proposals/import",
			Method:      http.MethodPost,
			Handler:     ImportProposals(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/proposals/cleanup",
			Method:      http.MethodPost,
			Handler:     CleanupProposals(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/proposals/:id",
			Method:      http.MethodGet,
			Handler:     GetProposal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/proposals/:id/approve",
			Method:      http.MethodPost,
			Handler:     ApproveProposal(service, executor),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/proposals/:id/reject",
			Method:      http.MethodPost,
			Handler:     RejectProposal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/proposals/:id/skip",
			Method:      http.MethodPost,
			Handler:     SkipProposal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/proposals/:id/safeguards",
			Method:      http.MethodGet,
			Handler:     CheckProposalSafeguards(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Executions retorna as rotas de execução e rollback de propostas
func Executions(service executing.Executor) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/proposals/:id/execute",
			Method:      http.MethodPost,
			Handler:     ExecuteProposal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/proposals/:id/rollback",
			Method:      http.MethodPost,
			Handler:     RollbackProposal(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOrOperator()},
		},
		{
			Path:        "/v1/proposals/:id/executions",
			Method:      http.MethodGet,
			Handler:     ListProposalExecutions(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Impact retorna a rota de medição de impacto das propostas executadas
func Impact(service impact.Measurer) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/proposals/:id/impact",
			Method:      http.MethodGet,
			Handler:     GetProposalImpact(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Chat retorna as rotas da conversa por proposta com o assistente
func Chat(service chatting.Chatter) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/proposals/:id/chat",
			Method:      http.MethodPost,
			Handler:     SendChatMessage(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
		{
			Path:        "/v1/proposals/:id/chat",
			Method:      http.MethodGet,
			Handler:     GetChatHistory(service),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

// Campaigns retorna as rotas do espelho local de campanhas
func Campaigns(campaignRepo repository.CampaignRepository) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/campaigns",
			Method:      http.MethodGet,
			Handler:     ListCampaigns(campaignRepo),
			Middlewares: []func(http.Handler) http.Handler{middleware.AllRoles()},
		},
	}
}

func CronJobs(services CronJobServices) []router.Route {
	return []router.Route{
		{
			Path:        "/v1/cron/:type/run",
			Method:      http.MethodPost,
			Handler:     RunCronJob(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
		{
			Path:        "/v1/cron/status",
			Method:      http.MethodGet,
			Handler:     GetCronStatus(services),
			Middlewares: []func(http.Handler) http.Handler{middleware.AdminOnly()},
		},
	}
}
