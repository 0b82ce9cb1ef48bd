// Package metrics expõe os coletores Prometheus da aplicação
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequestDuration mede a latência das requisições por rota e status
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duração das requisições HTTP",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path", "status"},
	)

	// ProposalTransitions conta as transições de status aplicadas com sucesso
	ProposalTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_status_transitions_total",
			Help: "Transições de status de propostas por status de destino",
		},
		[]string{"to_status"},
	)

	// SafeguardBlocks conta avaliações de safeguard que bloquearam execução
	SafeguardBlocks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "safeguard_blocks_total",
			Help: "Execuções bloqueadas por regra de safeguard",
		},
		[]string{"rule"},
	)

	// ExecutionResults conta execuções por desfecho (success, partial_failure, failed)
	ExecutionResults = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_executions_total",
			Help: "Execuções de propostas por desfecho",
		},
		[]string{"result"},
	)

	// Rollbacks conta reversões por desfecho
	Rollbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "proposal_rollbacks_total",
			Help: "Rollbacks de propostas por desfecho",
		},
		[]string{"result"},
	)
)
