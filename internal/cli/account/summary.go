package account

import (
	"github.com/julianstephens/humidor/internal/cli"
	"github.com/julianstephens/humidor/internal/summary"
)

type SummaryCmd struct{}

func (c *SummaryCmd) Run(ctx *cli.Context) error {
	s := summary.Build(ctx.Ctx, ctx.Store)

	badge := ""
	if s.Premium {
		badge = " [premium]"
	}
	ctx.Printf("Humidor%s\n", badge)
	ctx.Printf("  Cigars:          %d\n", s.CigarCount)
	ctx.Printf("  Journal entries: %d\n", s.JournalCount)

	if s.AverageRating != nil {
		ctx.Printf("  Average rating:  %.1f/5 (%d rated)\n", *s.AverageRating, s.RatedCount)
	} else {
		ctx.Println("  Average rating:  -")
	}

	if len(s.Origins) > 0 {
		ctx.Println("  Origins:")
		for _, o := range s.Origins {
			ctx.Printf("    %-20s %d\n", o.Origin, o.Count)
		}
	}

	if e := s.LatestEntry; e != nil {
		ctx.Printf("  Last smoked:     %s on %s\n", e.CigarName, cli.FormatDate(e.Date))
	}

	if s.CigarCount == 0 && s.JournalCount == 0 {
		ctx.Println()
		ctx.Println("Get started with 'humidor cigar add' or 'humidor journal add'.")
	}
	return nil
}
