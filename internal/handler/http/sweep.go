package http

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/hris-attendance/internal/domain/attendance"
	"github.com/cmlabs-hris/hris-attendance/internal/handler/http/response"
	"github.com/cmlabs-hris/hris-attendance/internal/pkg/jwt"
)

type SweepHandler interface {
	Run(w http.ResponseWriter, r *http.Request)
}

type sweepHandlerImpl struct {
	sweepService attendance.SweepService
}

func NewSweepHandler(sweepService attendance.SweepService) SweepHandler {
	return &sweepHandlerImpl{
		sweepService: sweepService,
	}
}

// Run implements SweepHandler. An empty body sweeps today.
func (h *sweepHandlerImpl) Run(w http.ResponseWriter, r *http.Request) {
	var req attendance.RunSweepRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, "Invalid request body", nil)
		return
	}

	date, err := req.ParseDate()
	if err != nil {
		response.HandleError(w, err)
		return
	}

	if claims, err := jwt.ClaimsFromContext(r.Context()); err == nil {
		requested := "today"
		if date != nil {
			requested = date.Format("2006-01-02")
		}
		slog.Info("Manual absence sweep requested", "user_id", claims.UserID, "date", requested)
	}

	summary, err := h.sweepService.RunAbsenceSweep(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	message := "Absence sweep completed"
	if summary.Skipped {
		message = "Absence sweep skipped: " + summary.Reason
	}
	response.SuccessWithMessage(w, message, summary)
}
