package organize

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v2"

	"github.com/averros/tidydesk/models"
	"github.com/averros/tidydesk/pkg/classifier"
	"github.com/averros/tidydesk/pkg/organizer"
)

// OrganizeAction buckets the Downloads folder into category subfolders.
// On a terminal it presents the classic menu; with --yes (or when stdout
// is not a terminal) it runs unattended.
func OrganizeAction(c *cli.Context) error {
	cfg, err := models.LoadConfig(c.String("config"))
	if err != nil {
		return err
	}

	dir := cfg.Organize.SourceDir
	if c.IsSet("dir") {
		dir = c.String("dir")
	}

	if c.Bool("dry-run") {
		return runPass(dir, true)
	}
	if c.Bool("yes") || !stdoutIsTerminal() {
		return runPass(dir, false)
	}

	return interactiveMenu(dir)
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

// interactiveMenu mirrors the original prompt loop: preview, organize for
// real (after confirmation), or quit.
func interactiveMenu(dir string) error {
	fmt.Println(strings.Repeat("=", 60))
	fmt.Println("DOWNLOADS FOLDER ORGANIZER")
	fmt.Println(strings.Repeat("=", 60))
	fmt.Printf("\nFolder to organize: %s\n", dir)
	fmt.Println("\nOptions:")
	fmt.Println("1. Dry run (show what would happen without moving files)")
	fmt.Println("2. Organize files for real")
	fmt.Println("3. Quit")

	reader := bufio.NewReader(os.Stdin)
	for {
		fmt.Print("\nChoose an option (1/2/3): ")
		choice, err := reader.ReadString('\n')
		if err != nil {
			return nil
		}

		switch strings.TrimSpace(choice) {
		case "1":
			return runPass(dir, true)
		case "2":
			fmt.Print("\nAre you sure you want to organize the files? (y/n): ")
			confirm, err := reader.ReadString('\n')
			if err != nil {
				return nil
			}
			if strings.TrimSpace(strings.ToLower(confirm)) == "y" {
				return runPass(dir, false)
			}
			fmt.Println("Operation cancelled.")
			return nil
		case "3":
			fmt.Println("Exiting...")
			return nil
		default:
			fmt.Println("Invalid option. Please choose 1, 2 or 3.")
		}
	}
}

// runPass executes one organize pass and prints the per-file actions and
// the summary.
func runPass(dir string, dryRun bool) error {
	fmt.Printf("\n%s\n", strings.Repeat("=", 60))
	fmt.Printf("Organizing files in: %s\n", dir)
	mode := "REAL RUN"
	if dryRun {
		mode = "DRY RUN (no files will be moved)"
	}
	fmt.Printf("Mode: %s\n", mode)
	fmt.Printf("%s\n\n", strings.Repeat("=", 60))

	summary, err := organizer.Organize(dir, dryRun)
	if err != nil {
		// A bad folder is reported, not fatal; nothing was touched.
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return nil
	}

	if len(summary.FoldersMade) > 0 {
		fmt.Printf("Folders created: %s\n\n", strings.Join(summary.FoldersMade, ", "))
	}

	for _, move := range summary.Moves {
		if move.Err != nil {
			fmt.Printf("[%s] %s\n  warning: %v\n", move.Category, move.Name, move.Err)
			continue
		}
		if move.DestName != move.Name {
			fmt.Printf("[%s] %s -> %s\n", move.Category, move.Name, move.DestName)
		} else {
			fmt.Printf("[%s] %s\n", move.Category, move.Name)
		}
	}

	fmt.Printf("\n%s\nSUMMARY:\n%s\n", strings.Repeat("=", 60), strings.Repeat("=", 60))
	for _, cat := range categoriesInOrder(summary.PerCategory) {
		fmt.Printf("  %s: %d file(s)\n", cat, summary.PerCategory[cat])
	}
	fmt.Printf("\nTotal files processed: %d\n", summary.Processed)
	if summary.Failed > 0 {
		fmt.Printf("Failed: %d\n", summary.Failed)
	}

	if dryRun {
		fmt.Println("\nDRY RUN: no files were moved.")
		fmt.Println("Run again with --yes (or option 2) to organize for real.")
	} else {
		fmt.Println("\nOrganization complete!")
	}
	return nil
}

func categoriesInOrder(counts map[string]int) []string {
	ordered := make([]string, 0, len(counts))
	for _, cat := range classifier.ExtensionCategories() {
		if counts[cat] > 0 {
			ordered = append(ordered, cat)
		}
	}
	return ordered
}
