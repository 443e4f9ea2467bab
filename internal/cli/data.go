package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"
)

// Import replaces the active account's collection with the contents of a
// previously exported JSON file.
func (a *App) Import(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: import <file>")
		return errors.New("missing file")
	}

	data, err := os.ReadFile(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := a.jobs.ImportJSON(ctx, data); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Data imported successfully")
	return nil
}

// Export writes the collection to a dated JSON file in the working directory.
func (a *App) Export(ctx context.Context) error {
	data, filename, err := a.jobs.ExportJSON()
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if err := os.WriteFile(filename, data, 0o600); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Exported to " + filename)
	return nil
}

// Clear asks for confirmation and then deletes every record of the active
// account. Confirmation lives here: the store itself does not second-guess.
func (a *App) Clear(ctx context.Context) error {
	answer, err := getSimpleText(a.reader, "Delete all job applications? (y/N)", os.Stdout)
	if err != nil {
		return err
	}
	if strings.ToLower(answer) != "y" {
		printlnFn("Cancelled")
		return nil
	}

	if err := a.jobs.ClearAll(ctx); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("All job applications deleted")
	return nil
}

// Stats prints per-status counts for the active account.
func (a *App) Stats(ctx context.Context) error {
	st, err := a.jobs.Stats()
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Total: %d\nApplied: %d\nInterviewing: %d\nOffers: %d\nRejected: %d",
		st.Total, st.Applied, st.Interviewing, st.Offers, st.Rejected))
	return nil
}
