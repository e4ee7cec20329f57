// Package events provides types and interfaces for an event-driven architecture.
//
// The study service and the digest job emit events without knowing who
// consumes them; handlers registered on an emitter decide what to do with
// each one (today, write it to the structured log).
//
// The primary components are:
// - Event: something that happened, with a typed JSON payload
// - EventHandler: Interface for components that can handle events
// - EventEmitter: Interface for components that can emit events
package events
