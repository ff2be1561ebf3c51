package service

import (
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/lunchpoll/internal/auth"
	"github.com/mmynk/lunchpoll/internal/groups"
	"github.com/mmynk/lunchpoll/internal/metrics"
	"github.com/mmynk/lunchpoll/internal/middleware"
	"github.com/mmynk/lunchpoll/pkg/api"
)

// RegisterHandlers mounts the Connect services on mux. Every procedure
// requires a bearer JWT.
func RegisterHandlers(mux *http.ServeMux, m *groups.Managers, jwtManager *auth.JWTManager, met *metrics.Metrics) {
	interceptors := connect.WithInterceptors(
		middleware.LoggingInterceptor(met),
		middleware.RequireAuth(jwtManager),
	)

	groupPath, groupHandler := api.NewGroupServiceHandler(NewGroupService(m), interceptors)
	pollPath, pollHandler := api.NewPollServiceHandler(NewPollService(m), interceptors)

	mux.Handle(groupPath, groupHandler)
	mux.Handle(pollPath, pollHandler)
}
