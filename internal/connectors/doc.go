// Package connectors holds integrations with external APIs. Each
// connector lives in its own subpackage and implements the driven
// ports the core consumes; github is the only connector today.
package connectors
