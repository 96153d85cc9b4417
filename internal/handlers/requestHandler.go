package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"noteagent/internal/adapter"
	"noteagent/internal/api"
	"noteagent/internal/config"
	"noteagent/internal/qa"
	"noteagent/pkg/logging"
)

// Handler serves the question answering endpoints. The reindex channel is
// shared with the rebuild worker; a send schedules a rebuild, a full channel
// means one is already pending. A nil channel means no ingestion pipeline is
// running at all.
type Handler struct {
	qaService qa.Service
	reindex   chan<- struct{}
	logger    *logging.Logger
}

func NewHandler(qaService qa.Service, reindex chan<- struct{}) *Handler {
	return &Handler{
		qaService: qaService,
		reindex:   reindex,
		logger:    logging.NewLogger("RequestHandler"),
	}
}

func (h *Handler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
}

// AskHandler godoc
// @Summary      Ask a question
// @Description  Answers a question from the indexed note collection, citing the documents the answer drew from. Degrades to retrieved excerpts or a fixed notice when parts of the pipeline are down.
// @Tags         Questions
// @Accept       json
// @Produce      json
// @Param        request  body      api.AskRequest  true  "The question to answer"
// @Success      200      {object}  api.AskResponse
// @Failure      400      {object}  api.ErrorResponse "Missing or empty question"
// @Router       /api/v1/ask [post]
func (h *Handler) AskHandler(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithTrace(r.Context())

	var requestData api.AskRequest
	defer func(body io.ReadCloser) {
		if err := body.Close(); err != nil {
			log.Error("Couldn't close the ask request reader", "error", err)
		}
	}(r.Body)
	if err := json.NewDecoder(r.Body).Decode(&requestData); err != nil {
		log.Warn("Bad ask request", "error", err)
		WriteErrorResponse(w, http.StatusBadRequest, "Bad Request")
		return
	}

	ctx, cancel := timeoutContext(r, config.RequestTimeout)
	defer cancel()

	answer, err := h.qaService.Ask(ctx, requestData.Question)
	if err != nil {
		if errors.Is(err, qa.ErrEmptyQuestion) {
			WriteErrorResponse(w, http.StatusBadRequest, err.Error())
			return
		}
		log.Error("Ask failed", "error", err)
		WriteErrorResponse(w, http.StatusInternalServerError, "Internal error")
		return
	}

	writeJsonResponse(w, http.StatusOK, adapter.ToAskResponse(requestData.Question, answer))
}

// StatusHandler godoc
// @Summary      Pipeline status
// @Description  Reports whether the full pipeline is available and lists the faults collected while bringing capabilities online.
// @Tags         Diagnostics
// @Produce      json
// @Success      200  {object}  api.StatusResponse
// @Router       /api/v1/status [get]
func (h *Handler) StatusHandler(w http.ResponseWriter, r *http.Request) {
	status := h.qaService.Status(r.Context())
	writeJsonResponse(w, http.StatusOK, api.StatusResponse{
		Ready:  status.Ready,
		Errors: status.Errors,
	})
}

// RebuildHandler godoc
// @Summary      Rebuild the index
// @Description  Schedules a full re-ingestion of all sources. Queries keep hitting the previous collection until the new one swaps in.
// @Tags         Ingestion
// @Produce      json
// @Success      202  {object}  api.RebuildResponse
// @Failure      503  {object}  api.ErrorResponse "No ingestion pipeline is running"
// @Router       /api/v1/rebuild [post]
func (h *Handler) RebuildHandler(w http.ResponseWriter, r *http.Request) {
	log := h.logger.WithTrace(r.Context())

	if h.reindex == nil {
		log.Warn("Rebuild requested but no ingestion pipeline is running")
		WriteErrorResponse(w, http.StatusServiceUnavailable, "ingestion pipeline unavailable")
		return
	}

	select {
	case h.reindex <- struct{}{}:
		log.Info("Rebuild scheduled")
		writeJsonResponse(w, http.StatusAccepted, api.RebuildResponse{Status: "rebuild scheduled"})
	default:
		log.Info("Rebuild already pending")
		writeJsonResponse(w, http.StatusAccepted, api.RebuildResponse{Status: "rebuild already pending"})
	}
}
