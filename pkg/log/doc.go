// Package log provides named loggers for the catalogue services on top of
// zerolog.
//
// Every logger is obtained with ForService(name) and tags each line with the
// service name. Console output (the default) renders the name as a
// `[name>]` prefix; JSON output (SetJSON(true)) carries it in the "service"
// field instead.
//
// Basic Usage
//
//	l := log.ForService("searchapi")
//	l.Infof("GET %s", url)
//	l.Debugf("response: %s", body) // only printed when debug is enabled
//
// Structured Fields
//
//	reqLog := log.ForService("api").With("request_id", id)
//	reqLog.Infof("search completed in %s", took)
//
// Selective Debug
//
//	log.SetGlobalDebug(true)        // every service
//	log.EnableDebugFor("searchapi") // only the API client
//
// Testing
//
// Tests can redirect output by calling SetOutput with a bytes.Buffer and
// assert on its contents.
package log
