// Package rest provides a typed JSON facade over the HTTP client with
// one uniform response shape for every outcome.
//
// The verb functions never return an error: transport failures, peer
// errors, and successes all come back as a *Response[T] whose Status,
// Headers, Data, and Err fields tell the whole story. Callers read the
// outcome with one code path instead of branching on a second return:
//
//	client, err := rest.New("https://api.example.com", httpclient.Config{})
//
//	resp := rest.Get[User](ctx, client, "/users/123")
//	if resp.Err != nil {
//	    // resp.Status and resp.Headers are salvaged from the failure
//	    // when the peer responded; StatusUnknown otherwise.
//	    return resp.Err
//	}
//	user := *resp.Data
//
// Request bodies follow httpclient's encoding rules; response bodies
// are decoded as JSON into T.
package rest
