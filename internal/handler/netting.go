// Package handler provides HTTP handlers for the KYD services.
package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"kyd-netting/internal/currency"
	"kyd-netting/internal/fxadaptor"
	"kyd-netting/internal/netting"
	"kyd-netting/internal/painfile"
	"kyd-netting/internal/randsrc"
	"kyd-netting/pkg/logger"
	reqValidator "kyd-netting/pkg/validator"

	"github.com/gorilla/mux"
)

// NettingHandler exposes the settlement netting and payment-file emission
// pipeline over HTTP. It holds only immutable collaborators — the skeleton
// is read once at startup (§5's "template XML is read once at startup,
// scoped acquisition") and deep-cloned per request by painfile.Emit.
type NettingHandler struct {
	validator   *netting.Validator
	skeleton    painfile.Document
	logger      logger.Logger
	reqValidate *reqValidator.Validator
}

// NewNettingHandler constructs a NettingHandler.
func NewNettingHandler(validator *netting.Validator, skeleton painfile.Document, log logger.Logger) *NettingHandler {
	return &NettingHandler{validator: validator, skeleton: skeleton, logger: log, reqValidate: reqValidator.New()}
}

type paymentFileRequest struct {
	Window    netting.SettlementWindowInput `json:"window"`
	Directory painfile.Directory            `json:"directory"`
}

type paymentFileResponse struct {
	WindowID    int64  `json:"windowId"`
	Fingerprint string `json:"fingerprint"`
	Document    string `json:"document"`
}

// GeneratePaymentFile runs validate -> net -> audit -> emit for a settlement
// window and returns the serialized pain.001.001.03 document alongside the
// matrix's audit fingerprint.
func (h *NettingHandler) GeneratePaymentFile(w http.ResponseWriter, r *http.Request) {
	var req paymentFileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if windowID, ok := mux.Vars(r)["windowId"]; ok && windowID != strconv.FormatInt(req.Window.ID, 10) {
		h.respondError(w, http.StatusBadRequest, "path windowId does not match request body window.id")
		return
	}

	if err := h.reqValidate.Validate(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	positions, code, err := h.validator.Validate(req.Window)
	if err != nil {
		h.respondValidationError(w, err)
		return
	}

	matrix, err := netting.Compute(positions, code)
	if err != nil {
		h.logger.Error("netting engine failed to balance", map[string]interface{}{"error": err.Error()})
		h.respondError(w, http.StatusInternalServerError, "settlement engine defect")
		return
	}

	if err := matrix.Audit(positions); err != nil {
		h.logger.Error("matrix failed post-computation audit", map[string]interface{}{"error": err.Error()})
		h.respondError(w, http.StatusInternalServerError, "matrix failed audit")
		return
	}

	document, err := painfile.Emit(matrix, req.Directory, req.Window.ID, h.skeleton, randsrc.CSPRNG())
	if err != nil {
		h.respondEmissionError(w, err)
		return
	}

	h.respondJSON(w, http.StatusOK, paymentFileResponse{
		WindowID:    req.Window.ID,
		Fingerprint: matrix.Fingerprint(),
		Document:    document,
	})
}

type citiRateBlockRequest struct {
	Pair string               `json:"pair" validate:"required,len=6"`
	Rate fxadaptor.RateRecord `json:"rate" validate:"required"`
}

// PublishFxRate maps an inbound rate record into the Citi pain-01 inner
// block. It runs on a different ingress path than the settlement flow
// (§4.6 "not part of the settlement flow but part of the hard core").
func (h *NettingHandler) PublishFxRate(w http.ResponseWriter, r *http.Request) {
	var req citiRateBlockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.respondError(w, http.StatusBadRequest, "malformed request body")
		return
	}

	if err := h.reqValidate.Validate(req); err != nil {
		h.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	block, err := fxadaptor.CitiRateBlockFor(req.Pair, req.Rate)
	if err != nil {
		var invalid *fxadaptor.InvalidInputError
		if errors.As(err, &invalid) {
			h.respondError(w, http.StatusBadRequest, invalid.Error())
			return
		}
		h.respondError(w, http.StatusInternalServerError, "fx adaptor failure")
		return
	}

	h.respondJSON(w, http.StatusOK, block)
}

func (h *NettingHandler) respondValidationError(w http.ResponseWriter, err error) {
	var unsupported *currency.UnsupportedCurrencyError
	if errors.As(err, &unsupported) {
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
		return
	}
	h.respondError(w, http.StatusUnprocessableEntity, err.Error())
}

func (h *NettingHandler) respondEmissionError(w http.ResponseWriter, err error) {
	var unknown *painfile.UnknownParticipantError
	var badTemplate *painfile.BadTemplateError
	switch {
	case errors.As(err, &unknown):
		h.respondError(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &badTemplate):
		h.respondError(w, http.StatusInternalServerError, err.Error())
	default:
		h.respondError(w, http.StatusInternalServerError, err.Error())
	}
}

func (h *NettingHandler) respondJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func (h *NettingHandler) respondError(w http.ResponseWriter, status int, message string) {
	h.respondJSON(w, status, map[string]string{"error": message})
}

// RegisterRoutes wires the handler's endpoints onto a router, relative to
// whatever prefix the caller's subrouter already carries.
func (h *NettingHandler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/settlements/{windowId}/payment-file", h.GeneratePaymentFile).Methods(http.MethodPost)
	r.HandleFunc("/fx/rate-block", h.PublishFxRate).Methods(http.MethodPost)
}
