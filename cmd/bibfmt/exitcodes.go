package main

// Exit codes
const (
	ExitSuccess     = 0 // Success
	ExitError       = 1 // General error (invalid arguments, runtime failure)
	ExitConfigError = 2 // Configuration error (unreadable or invalid config, word list or journal table)
	ExitDataError   = 3 // Data error (malformed BibTeX, values that cannot be rendered)
)
