// Package web serves the gallery as server-rendered HTML pages.
//
// Browsing needs no credentials. Registration sits behind the shared
// creation password, editing behind the entry's owner password checked by
// the endpoint; a passed gate is remembered in a short-lived signed cookie
// (see package auth). Deletion forwards the typed password with the request
// and lets the endpoint decide.
//
// Every mutating form carries a one-time token claimed in a
// submit.TokenStore, so a double-clicked or replayed form reaches the
// endpoint at most once.
package web
