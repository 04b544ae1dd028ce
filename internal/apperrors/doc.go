// Package apperrors defines the failure taxonomy shared by the capability
// modules and both transports.
//
// Every failure that crosses a component boundary is an *Error with one of
// the Kind values. Transports translate the kind into their own envelope:
// the HTTP adapter uses HTTPStatus, the line-protocol adapter marks the tool
// result as an error, and KindProtocol becomes a JSON-RPC error object.
package apperrors
