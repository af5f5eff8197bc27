// Package api exposes the task endpoints over HTTP. It decodes and
// validates requests, invokes the task service, and renders responses in
// the service's JSON envelope, keeping transport concerns out of the
// business layer.
package api
