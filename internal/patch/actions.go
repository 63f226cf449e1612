package patch

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"

	patchpkg "github.com/averros/tidydesk/pkg/patch"
	"github.com/averros/tidydesk/pkg/storage"
)

// PatchAction applies the exact-text replacements from a YAML rule file.
func PatchAction(c *cli.Context) error {
	if c.NArg() == 0 {
		return fmt.Errorf("rule file required\nUsage: tidydesk patch <rules.yaml>")
	}

	rules, err := patchpkg.LoadRules(c.Args().First())
	if err != nil {
		return err
	}

	p := patchpkg.NewPatcher(&storage.Storage{})
	results := p.ApplyAll(rules)

	applied, skipped, failed := 0, 0, 0
	for _, res := range results {
		switch {
		case res.Err != nil:
			failed++
			fmt.Fprintf(os.Stderr, "ERROR %s: %v\n", res.File, res.Err)
		case res.Applied:
			applied++
			fmt.Printf("Patched %s (%d replacement(s))\n", res.File, res.Replaced)
		default:
			skipped++
			fmt.Printf("Skipped %s: target text not found (already patched?)\n", res.File)
		}
	}

	fmt.Printf("\n%d applied, %d skipped, %d failed\n", applied, skipped, failed)
	if failed > 0 {
		return fmt.Errorf("%d patch(es) failed", failed)
	}
	return nil
}
