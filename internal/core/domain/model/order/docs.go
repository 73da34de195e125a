// Package order contains the Order aggregate of the food ordering domain and
// its lifecycle.
//
// The package includes:
//   - Order: the aggregate root, created by checkout and mutated only by status transitions
//   - Item: an order line with quantity and unit price
//   - Status: the closed lifecycle enumeration and its transition table
//   - InvalidTransitionError and ForbiddenRoleError
//   - Created and StatusChanged events
//
// Key business rules:
//   - Orders start PENDING and are never deleted, only driven to DELIVERED or CANCELLED
//   - The total must match the items at creation and is fixed afterwards
//   - No transition leaves a terminal status
package order
