// Package services provides domain services whose rules span more than one
// aggregate or value object.
//
// The package includes:
//   - TransitionPolicy: which role, and which actor within a role, may move an order along each lifecycle edge
package services
