// Package jobs runs the periodic background work of the order service on a
// github.com/robfig/cron/v3 scheduler with a seconds field.
//
// There is one job today. CourierMovementJob ticks every two seconds unless
// COURIER_MOVE_SCHEDULE says otherwise; each tick moves every tracked courier
// 10% of its remaining distance. Reaching the customer only marks the courier
// as arrived. The delivery actor still reports DELIVERED.
//
// Wiring:
//
//	manager := jobs.NewJobManager(moveCouriers, cfg.CourierMoveSchedule, logger)
//	if err := manager.StartAll(); err != nil {
//		return err
//	}
//	defer manager.StopAll(ctx)
//
// A failing tick is logged and the next one tries again.
package jobs
