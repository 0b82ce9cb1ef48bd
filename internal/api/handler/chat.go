package handler

import (
	"errors"
	"net/http"

	"github.com/julienschmidt/httprouter"
	"github.com/sirupsen/logrus"
	"github.com/vfg2006/campaign-advisor-api/internal/usecases/chatting"
	"github.com/vfg2006/campaign-advisor-api/pkg/apiErrors"
)

// SendChatMessage envia uma mensagem do operador na conversa da proposta e
// retorna a resposta do assistente
func SendChatMessage(service chatting.Chatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		logrus.Info("INIT - SendChatMessage")

		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		var payload struct {
			Message string `json:"message"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, "Erro ao decodificar requisição", nil)
			return
		}

		reply, err := service.SendMessage(r.Context(), id, payload.Message)
		if err != nil {
			switch {
			case errors.Is(err, chatting.ErrProposalNotFound):
				apiErrors.WriteError(w, apiErrors.ErrProposalNotFound, "Proposta não encontrada", nil)
			case errors.Is(err, chatting.ErrEmptyMessage):
				apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Mensagem não pode estar vazia", nil)
			default:
				logrus.Error(err)
				apiErrors.WriteError(w, apiErrors.ErrExternalService, "Erro ao consultar o assistente", nil)
			}
			return
		}

		writeJSON(w, http.StatusOK, reply)
	}
}

// GetChatHistory retorna o histórico da conversa da proposta em ordem
// cronológica
func GetChatHistory(service chatting.Chatter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := httprouter.ParamsFromContext(r.Context()).ByName("id")
		if id == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "ID da proposta não fornecido", nil)
			return
		}

		messages, err := service.GetHistory(id)
		if err != nil {
			if errors.Is(err, chatting.ErrProposalNotFound) {
				apiErrors.WriteError(w, apiErrors.ErrProposalNotFound, "Proposta não encontrada", nil)
				return
			}
			logrus.Error(err)
			apiErrors.WriteError(w, apiErrors.ErrDatabaseOperation, "Erro ao buscar histórico da conversa", nil)
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"messages": messages,
			"total":    len(messages),
		})
	}
}
