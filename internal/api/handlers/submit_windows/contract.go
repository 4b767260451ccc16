package submit_windows

import (
	"context"

	submitWindows "github.com/m04kA/SMC-AvailabilityService/internal/usecase/submit_windows"
)

type SubmitWindowsUseCase interface {
	Execute(ctx context.Context, req *submitWindows.Request) (*submitWindows.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
