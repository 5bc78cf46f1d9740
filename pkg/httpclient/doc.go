// Package httpclient provides the connection pool shared by the platform's
// service clients.
//
// A Pool wraps a keep-alive *http.Client. Whoever creates a Pool owns it and
// is responsible for calling Close exactly when no client uses it anymore;
// clients that receive a Pool from elsewhere borrow it and never close it.
//
// # Usage
//
// One pool per process, shared by several service clients:
//
//	pool, err := httpclient.New(httpclient.DefaultConfig())
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	router, err := qlogic.New(settings.QLogicRouteURL, client.WithSharedPool(pool))
//
// # Transport chain
//
// Requests pass through:
//   - correlation transport: propagates X-Correlation-ID from the request context
//   - logging transport: debug-level request log with sanitized URL, status
//     and duration; User-Agent injection
//   - *http.Transport: connection pooling, TLS 1.2+, dial/handshake timeouts
//
// There is deliberately no retry layer: callers decide how to degrade.
package httpclient
