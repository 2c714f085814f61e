package httpclient

import "context"

// ClientInterface defines the interface for the transport pipeline. Endpoint
// wrappers depend on this rather than on the concrete Client so tests can
// substitute a recording double.
type ClientInterface interface {
	// Do makes a request with the given options and returns the unwrapped
	// envelope payload, or the classified error.
	Do(ctx context.Context, opts RequestOptions) (*Result, error)

	// Get makes a GET request to the given path.
	Get(ctx context.Context, path string, query map[string]string) (*Result, error)

	// Post makes a POST request, marshaling body as JSON when non-nil.
	Post(ctx context.Context, path string, body any) (*Result, error)

	// Put makes a PUT request, marshaling body as JSON when non-nil.
	Put(ctx context.Context, path string, body any) (*Result, error)

	// Delete makes a DELETE request to the given path.
	Delete(ctx context.Context, path string) (*Result, error)
}

// Compile-time check that Client satisfies the interface.
var _ ClientInterface = &Client{}
