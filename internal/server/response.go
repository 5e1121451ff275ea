package server

import (
	"context"
	"errors"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"anubis/internal/domain"
	"anubis/pkg/contextx"
	"anubis/pkg/errcodes"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals

type envelope struct {
	Success bool       `json:"success"`
	Data    any        `json:"data"`
	Error   *errorBody `json:"error"`
}

type errorBody struct {
	Code    errcodes.ErrorCode `json:"code"`
	Message string             `json:"message"`
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{Success: true, Data: data})
}

func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	var appErr *domain.AppError
	if !errors.As(err, &appErr) {
		logger(ctx).Error("unhandled error", "error", err)
		appErr = domain.NewError(errcodes.InternalServerError, "internal error")
	}

	writeJSON(ctx, w, statusForCode(appErr.Code), envelope{
		Success: false,
		Error: &errorBody{
			Code:    appErr.Code,
			Message: appErr.Message,
		},
	})
}

func statusForCode(code errcodes.ErrorCode) int {
	switch code {
	case errcodes.NotFound:
		return http.StatusNotFound
	case errcodes.AssignmentExists, errcodes.SubmissionExists:
		return http.StatusConflict
	case errcodes.InvalidArgument, errcodes.InvalidTimeRange:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(ctx context.Context, w http.ResponseWriter, status int, body envelope) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger(ctx).Error("response encode failed", "error", err)
	}
}
