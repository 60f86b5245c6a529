package httpapi

import (
	"encoding/json"
	"net/http"

	"funcionarioService/models"
)

const (
	msgListed       = "Lista de funcionários."
	msgListEmpty    = "Nenhum funcionário encontrado."
	msgFound        = "Funcionário encontrado."
	msgNotFound     = "Funcionário não encontrado."
	msgCreated      = "Funcionário cadastrado com sucesso."
	msgUpdated      = "Funcionário atualizado com sucesso."
	msgDeleted      = "Funcionário excluído com sucesso."
	msgInvalid      = "Dados inválidos. Nome, cargo e salário são obrigatórios."
	msgNeedConfirm  = "Confirmação necessária para excluir o funcionário."
	msgInternal     = "Erro interno do servidor."
	msgNoRoute      = "Recurso não encontrado."
	msgNoMethod     = "Método não permitido."
	confirmParam    = "confirmacao"
	confirmRequired = "true"
)

// envelope wraps every JSON response body.
type envelope struct {
	Mensagem    string              `json:"mensagem"`
	Dados       any                 `json:"dados,omitempty"`
	Funcionario *models.Funcionario `json:"funcionario,omitempty"`
}

// emptyDados is serialized as {} on lookup misses.
var emptyDados = struct{}{}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if payload == nil {
		return
	}
	_ = json.NewEncoder(w).Encode(payload)
}

func writeMessage(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, envelope{Mensagem: msg})
}
