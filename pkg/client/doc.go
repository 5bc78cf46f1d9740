/*
Package client provides the asynchronous base client shared by every
cabreaich service client.

A Base couples a base URL, a default timeout and a connection pool. The pool
is either owned (created by New and closed by Close) or borrowed (supplied
with WithSharedPool or WithHTTPClient and never closed by the client):

	pool, _ := httpclient.New(httpclient.DefaultConfig())
	defer pool.Close()

	router, err := client.New("http://qlogic:8000", client.WithSharedPool(pool))
	if err != nil {
		return err
	}
	defer router.Close() // no-op for the pool, which the caller owns

A request flows through Dispatch (network) and then Decode or DecodeAs
(status check, JSON decoding and validation). Call and CallAs chain the two
and log a failure once before returning it unchanged:

	resp, err := client.CallAs[models.RoutingResponse](ctx, router, client.Request{
		Method: http.MethodPost,
		Path:   "/qlogic/route_turn",
		Body:   input,
	})

Failures are always one of the pkg/errors kinds: ValidationError for bad
caller input, TransportError for network problems, StatusError for HTTP
status >= 400 and DecodeError for bodies that do not match the expected shape.
*/
package client
