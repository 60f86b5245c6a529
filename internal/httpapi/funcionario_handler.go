package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"

	"funcionarioService/repository"
)

const basePath = "/Funcionario"

// FuncionarioHandler serves the /Funcionario resource.
type FuncionarioHandler struct {
	store  repository.FuncionarioStore
	logger logrus.FieldLogger
}

func NewFuncionarioHandler(store repository.FuncionarioStore, logger logrus.FieldLogger) *FuncionarioHandler {
	return &FuncionarioHandler{store: store, logger: logger}
}

// Register mounts the routes on r. Numeric segments are claimed by the id routes
// before the catch-all name route is considered.
func (h *FuncionarioHandler) Register(r *mux.Router) {
	r.HandleFunc(basePath, h.List).Methods(http.MethodGet)
	r.HandleFunc(basePath, h.Create).Methods(http.MethodPost)

	byID := basePath + "/{id:[0-9]+}"
	r.HandleFunc(byID, h.GetByID).Methods(http.MethodGet)
	r.HandleFunc(byID, h.Update).Methods(http.MethodPut)
	r.HandleFunc(byID, h.Delete).Methods(http.MethodDelete)

	r.HandleFunc(basePath+"/{nome}", h.GetByNome).Methods(http.MethodGet)
}

func (h *FuncionarioHandler) List(w http.ResponseWriter, r *http.Request) {
	list, err := h.store.List(r.Context())
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	msg := msgListed
	if len(list) == 0 {
		msg = msgListEmpty
	}
	writeJSON(w, http.StatusOK, envelope{Mensagem: msg, Dados: list})
}

func (h *FuncionarioHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeJSON(w, http.StatusNotFound, envelope{Mensagem: msgNotFound, Dados: emptyDados})
		return
	}
	f, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if f == nil {
		writeJSON(w, http.StatusNotFound, envelope{Mensagem: msgNotFound, Dados: emptyDados})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Mensagem: msgFound, Dados: f})
}

func (h *FuncionarioHandler) GetByNome(w http.ResponseWriter, r *http.Request) {
	f, err := h.store.GetByNome(r.Context(), mux.Vars(r)["nome"])
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if f == nil {
		writeJSON(w, http.StatusNotFound, envelope{Mensagem: msgNotFound, Dados: emptyDados})
		return
	}
	writeJSON(w, http.StatusOK, envelope{Mensagem: msgFound, Dados: f})
}

func (h *FuncionarioHandler) Create(w http.ResponseWriter, r *http.Request) {
	req, err := decodeFuncionario(w, r)
	if err != nil {
		h.invalid(w, r, err)
		return
	}
	created, err := h.store.Create(r.Context(), req.ToModel(0))
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.requestLogger(r).WithField("id", created.ID).Info("funcionario created")
	writeJSON(w, http.StatusOK, envelope{Mensagem: msgCreated, Funcionario: created})
}

// Update resolves the id before looking at the body, so an unknown id is a 404
// even when the payload is incomplete.
func (h *FuncionarioHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	existing, err := h.store.GetByID(r.Context(), id)
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	if existing == nil {
		writeMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	req, err := decodeFuncionario(w, r)
	if err != nil {
		h.invalid(w, r, err)
		return
	}
	updated, err := h.store.Update(r.Context(), req.ToModel(id))
	if errors.Is(err, repository.ErrNotFound) {
		// Deleted between the lookup and the write.
		writeMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.requestLogger(r).WithField("id", id).Info("funcionario updated")
	writeJSON(w, http.StatusOK, envelope{Mensagem: msgUpdated, Funcionario: updated})
}

// Delete requires ?confirmacao=true before anything is looked up.
func (h *FuncionarioHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get(confirmParam) != confirmRequired {
		writeMessage(w, http.StatusBadRequest, msgNeedConfirm)
		return
	}
	id, ok := pathID(r)
	if !ok {
		writeMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	err := h.store.Delete(r.Context(), id)
	if errors.Is(err, repository.ErrNotFound) {
		writeMessage(w, http.StatusNotFound, msgNotFound)
		return
	}
	if err != nil {
		h.internalError(w, r, err)
		return
	}
	h.requestLogger(r).WithField("id", id).Info("funcionario deleted")
	writeMessage(w, http.StatusOK, msgDeleted)
}

// pathID parses the {id} variable. Values that overflow int64 cannot name a row.
func pathID(r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil {
		return 0, false
	}
	return id, true
}

func (h *FuncionarioHandler) invalid(w http.ResponseWriter, r *http.Request, err error) {
	entry := h.requestLogger(r).WithError(err)
	var verr *ValidationError
	if errors.As(err, &verr) && len(verr.Fields) > 0 {
		entry = entry.WithField("fields", verr.Fields)
	}
	entry.Debug("rejected funcionario payload")
	writeMessage(w, http.StatusBadRequest, msgInvalid)
}

func (h *FuncionarioHandler) internalError(w http.ResponseWriter, r *http.Request, err error) {
	h.requestLogger(r).WithError(err).Error("funcionario request failed")
	writeMessage(w, http.StatusInternalServerError, msgInternal)
}

func (h *FuncionarioHandler) requestLogger(r *http.Request) logrus.FieldLogger {
	return h.logger.WithFields(logrus.Fields{
		"request-id": RequestIDFromContext(r.Context()),
		"method":     r.Method,
		"path":       r.URL.Path,
	})
}
