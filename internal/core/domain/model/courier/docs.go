// Package courier models the simulated movement of a delivery actor between
// the restaurant and the customer while an order is ON_THE_WAY.
//
// Each tick a courier covers a fixed share of the remaining distance and snaps
// to the destination once it is within kernel.ArrivalTolerance. Couriers only
// report positions; they never drive order status.
package courier
