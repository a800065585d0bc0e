package main

//
// Manifest constants for the shell messages.  Interpreter errors
// come formatted from the interp package and are printed as they are
//

const (
	EUNKNOWNCOMMAND  = "Unknown command"
	ENOPARAMETERS    = "does not expect parameters"
	EMISSINGFILENAME = "Missing or invalid file name"
	EFILENOTFOUND    = "File does not exist"
	EINVALIDLINENO   = "Invalid line number"
	EINVALIDRANGE    = "Invalid line range"
	EINVALIDTRACE    = "Invalid trace option"
	ENOPROGRAM       = "No program in memory"
	ENOTSAVED        = "Please save the current program first"
	ENOTOVERWRITTEN  = "File not overwritten"
	ELOADFAILED      = "Unable to load"
	ESAVEFAILED      = "Unable to save"
	EINTERRUPTED     = "Interrupted"
	ECONFIG          = "Configuration error"
)
