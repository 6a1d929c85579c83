// Package utils exposes reusable helpers consumed by multiple piu commands.
//
// It houses the ConfigurationLoader and LoggerFactory abstractions that
// integrate Viper, environment variables, and zap logging for the console.
package utils
