// Package logger is a standardized event logging framework for interpreter
// sessions.
package logger
