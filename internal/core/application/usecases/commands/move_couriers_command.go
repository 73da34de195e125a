package commands

import (
	"errors"

	"foodorders/internal/pkg/guard"
)

// MoveCouriersCommand advances every courier still on its way one step
// towards the customer.
//
// Example:
//
//	cmd := NewMoveCouriersCommand()
//	handler := NewMoveCouriersCommandHandler(uowFactory, logger)
//
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    log.Printf("movement tick failed: %v", err)
//	}
type MoveCouriersCommand struct {
	guard guard.ConstructorGuard
}

var (
	ErrMoveCouriersCommandIsNotConstructed = errors.New(
		"MoveCouriersCommand must be created via NewMoveCouriersCommand constructor",
	)
)

func NewMoveCouriersCommand() MoveCouriersCommand {
	return MoveCouriersCommand{
		guard: guard.NewConstructorGuard(),
	}
}

func (c *MoveCouriersCommand) Validate() error {
	return c.guard.Validate(ErrMoveCouriersCommandIsNotConstructed)
}
