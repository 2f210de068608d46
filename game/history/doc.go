// Package history records finished matches. The session coordinator
// appends a Record when a match ends; the HTTP API and the analyze tool
// read them back.
package history
