// Package kernel holds the value objects shared by every aggregate of the
// ordering domain:
//   - UUID: identifiers for orders, actors and ratings
//   - Money: exact, non-negative amounts
//   - Location: geographic points used by courier tracking
//   - Role and Actor: who performs a command and in which capacity
//
// All value objects are immutable and their zero values fail Validate.
package kernel
