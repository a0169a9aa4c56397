// Package errs defines the error shape returned to API clients.
//
// Every failure, whether raised by a handler, by request binding or by
// the database driver, ends up as an *HTTPError so clients receive one
// consistent JSON body.
package errs
