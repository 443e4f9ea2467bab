package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/dmitrijs2005/jobtrack/internal/jobs"
)

func formatJob(j jobs.Job) string {
	return fmt.Sprintf("%s  %-20s %-20s %-13s %s", j.ID, j.CompanyName, j.JobTitle, j.Status, j.AppliedDate)
}

func statusChoices() string {
	names := make([]string, len(jobs.Statuses))
	for i, s := range jobs.Statuses {
		names[i] = string(s)
	}
	return strings.Join(names, "/")
}

// promptInput collects the editable job fields interactively.
func (a *App) promptInput() (jobs.Input, error) {
	company, err := getSimpleText(a.reader, "Company name", os.Stdout)
	if err != nil {
		return jobs.Input{}, err
	}

	title, err := getSimpleText(a.reader, "Job title", os.Stdout)
	if err != nil {
		return jobs.Input{}, err
	}

	status, err := getSimpleText(a.reader, "Status ("+statusChoices()+", default Applied)", os.Stdout)
	if err != nil {
		return jobs.Input{}, err
	}

	applied, err := getSimpleText(a.reader, "Applied date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return jobs.Input{}, err
	}

	notes, err := GetMultiline(a.reader, "Notes", os.Stdout)
	if err != nil {
		return jobs.Input{}, err
	}

	return jobs.Input{
		CompanyName: company,
		JobTitle:    title,
		Status:      jobs.Status(status),
		AppliedDate: applied,
		Notes:       notes,
	}, nil
}

// Add collects job fields and creates a record owned by the active account.
func (a *App) Add(ctx context.Context) error {
	in, err := a.promptInput()
	if err != nil {
		return err
	}

	job, err := a.jobs.Add(ctx, in)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Added " + formatJob(job))
	return nil
}

// List prints the collection, optionally filtered by status.
func (a *App) List(ctx context.Context, args []string) error {
	var (
		list []jobs.Job
		err  error
	)
	if len(args) > 0 {
		list, err = a.jobs.ListByStatus(jobs.Status(args[0]))
	} else {
		list, err = a.jobs.List()
	}
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	if len(list) == 0 {
		printlnFn("No job applications yet")
		return nil
	}
	for _, j := range list {
		printlnFn(formatJob(j))
	}
	return nil
}

// Show prints a single record in full.
func (a *App) Show(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: show <id>")
		return errors.New("missing id")
	}

	j, err := a.jobs.Get(args[0])
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn(fmt.Sprintf("Company: %s\nTitle:   %s\nStatus:  %s\nApplied: %s\nNotes:   %s",
		j.CompanyName, j.JobTitle, j.Status, j.AppliedDate, j.Notes))
	return nil
}

// Update collects new field values for an existing record.
func (a *App) Update(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: update <id>")
		return errors.New("missing id")
	}

	in, err := a.promptInput()
	if err != nil {
		return err
	}

	job, err := a.jobs.Update(ctx, args[0], in)
	if err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Updated " + formatJob(job))
	return nil
}

// Delete removes a record by id.
func (a *App) Delete(ctx context.Context, args []string) error {
	if len(args) != 1 {
		printlnFn("Usage: delete <id>")
		return errors.New("missing id")
	}

	if err := a.jobs.Delete(ctx, args[0]); err != nil {
		printlnFn(err.Error())
		return err
	}

	printlnFn("Deleted")
	return nil
}
