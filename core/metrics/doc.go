// Package metrics defines the sinks that observe editor commands. Each
// command reports its name, outcome and duration; sinks that also implement
// DocumentRecorder receive the size of the document after the command.
package metrics
