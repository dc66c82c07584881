package main

// Exit codes shared by all artmd commands.
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (missing config, invalid paths)
	ExitDataError   = 3 // Data error (malformed metadata or bibliography)
	ExitUnresolved  = 4 // Citation key not found in the bibliography
)
