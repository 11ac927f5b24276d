// Package backend is a Go client for the translation, document, search and
// text-to-speech API that lingodesk fronts.
//
// Every method issues exactly one HTTP request, decodes the response into an
// explicit schema and validates it. Non-2xx responses are returned as *APIError,
// which unwraps to ErrNotFound, ErrBadRequest or ErrServer.
//
//	c, _ := backend.New(backend.DefaultBaseURL("localhost"),
//	    backend.WithTimeout(30*time.Second),
//	    backend.WithLogger(logger),
//	)
//	res, err := c.Translate(ctx, backend.TranslateRequest{
//	    Text: "Hello", SourceLang: "en", TargetLang: "vi",
//	})
package backend
