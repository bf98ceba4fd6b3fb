// Package cli provides the interactive gallery command-line client.
//
// It loads the entry list from the Remote Action Endpoint on start and then
// runs a REPL over stdin:
//
//   - list / show / open browse the gallery
//   - register creates an entry behind the shared creation password
//   - edit changes an entry behind its owner password
//   - delete removes an entry; the endpoint checks the password
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
package cli
