package awshttp

import "github.com/rs/zerolog"

// logger is a no-op until the embedding application opts in. It never
// receives credentials or signing intermediates.
var logger = zerolog.Nop()

// SetLogger enables package logging, e.g. with a zerolog console or context
// logger from the host application.
func SetLogger(l zerolog.Logger) {
	logger = l
}
