package vt

import (
	"net/http"

	"github.com/vmkteam/embedlog"
	zm "github.com/vmkteam/zenrpc-middleware"
	"github.com/vmkteam/zenrpc/v2"

	"maqsad/pkg/db"
	"maqsad/pkg/maqsad"
)

var (
	ErrUnauthorized   = httpAsRPCError(http.StatusUnauthorized)
	ErrForbidden      = httpAsRPCError(http.StatusForbidden)
	ErrNotFound       = httpAsRPCError(http.StatusNotFound)
	ErrInternal       = httpAsRPCError(http.StatusInternalServerError)
	ErrNotImplemented = httpAsRPCError(http.StatusNotImplemented)
)

var allowDebugFn = func() zm.AllowDebugFunc {
	return func(req *http.Request) bool {
		return req != nil && req.FormValue("__level") == "5"
	}
}

func httpAsRPCError(code int) *zenrpc.Error {
	return zenrpc.NewStringError(code, http.StatusText(code))
}

// New returns new zenrpc Server with the admin service.
func New(dbo db.DB, manager *maqsad.Manager, logger embedlog.Logger, isDevel bool) zenrpc.Server {
	rpc := zenrpc.NewServer(zenrpc.Options{
		ExposeSMD: true,
		AllowCORS: false,
	})

	// middleware
	rpc.Use(
		zm.WithHeaders(),
		zm.WithDevel(isDevel),
		zm.WithNoCancelContext(),
		zm.WithMetrics("vt"),
		zm.WithSLog(logger.Print, zm.DefaultServerName, nil),
		zm.WithErrorSLog(logger.Error, zm.DefaultServerName, nil),
		zm.WithSQLLogger(dbo.DB, isDevel, allowDebugFn(), allowDebugFn()),
		zm.WithTiming(isDevel, allowDebugFn()),
		zm.WithSentry(zm.DefaultServerName),
	)

	rpc.Register("admin", NewAdminService(manager, logger))

	return rpc
}
