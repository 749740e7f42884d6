package system

import (
	"strings"

	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/validation"
)

type ValidateCmd struct{}

func (c *ValidateCmd) Run(ctx *cli.Context) error {
	result := validation.New().Collections(
		ctx.Store.ListCigars(ctx.Ctx),
		ctx.Store.ListJournalEntries(ctx.Ctx),
	)
	ctx.Println(strings.TrimRight(result.FormatReport(), "\n"))
	return result.Err()
}
