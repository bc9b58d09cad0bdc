// Package shutdown coordinates graceful process termination.
//
// Components register named hooks; when SIGINT or SIGTERM arrives (or the
// wait context ends) the hooks run in reverse registration order under a
// shared deadline:
//
//	h := shutdown.NewHandler(10*time.Second, logger)
//	h.OnShutdown("redis", srv.Shutdown)
//	err := h.Wait(ctx)
package shutdown
