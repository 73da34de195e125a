package commands_test

import (
	"testing"

	"foodorders/internal/core/application/usecases/commands"

	"github.com/stretchr/testify/require"
)

func TestNewMoveCouriersCommand(t *testing.T) {
	cmd := commands.NewMoveCouriersCommand()
	require.NoError(t, cmd.Validate())
}

func TestMoveCouriersCommand_NotConstructed(t *testing.T) {
	cmd := commands.MoveCouriersCommand{}
	require.ErrorIs(t, cmd.Validate(), commands.ErrMoveCouriersCommandIsNotConstructed)
}
