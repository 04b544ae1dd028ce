// Package tools defines the capability contract shared by every operation
// family and the Registry that dispatches operation names to them.
//
// Both transports go through the same Registry, so an operation behaves
// identically whether it arrives as a JSON-RPC tools/call or as an HTTP
// request.
package tools
