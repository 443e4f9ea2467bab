// Package jobs owns the per-account collection of job-application records.
package jobs

import (
	"errors"
	"strings"
	"time"
)

// Status classifies where an application stands.
type Status string

const (
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusOffer        Status = "Offer"
	StatusRejected     Status = "Rejected"
)

// Statuses lists every valid status, in pipeline order.
var Statuses = []Status{StatusApplied, StatusInterviewing, StatusOffer, StatusRejected}

func (s Status) Valid() bool {
	switch s {
	case StatusApplied, StatusInterviewing, StatusOffer, StatusRejected:
		return true
	}
	return false
}

// appliedDateLayout is the calendar-date form AppliedDate is stored in.
const appliedDateLayout = "2006-01-02"

var ErrInvalidInput = errors.New("company name, job title and a valid applied date are required")

// Job is one tracked job application. OwnerID ties it to exactly one
// account; the store guarantees no job is ever visible across accounts.
type Job struct {
	ID          string    `json:"id"`
	OwnerID     string    `json:"ownerId"`
	CompanyName string    `json:"companyName"`
	JobTitle    string    `json:"jobTitle"`
	Status      Status    `json:"status"`
	AppliedDate string    `json:"appliedDate"`
	Notes       string    `json:"notes,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt,omitzero"`
}

// Input carries the caller-editable fields of a Job.
type Input struct {
	CompanyName string `json:"companyName"`
	JobTitle    string `json:"jobTitle"`
	Status      Status `json:"status"`
	AppliedDate string `json:"appliedDate"`
	Notes       string `json:"notes"`
}

// sanitize trims display strings and defaults an empty status to Applied.
// It reports whether the result satisfies the Add/Update requirements.
// Importing bypasses this on purpose: the importer neither validates nor
// defaults.
func (in Input) sanitize() (Input, error) {
	in.CompanyName = strings.TrimSpace(in.CompanyName)
	in.JobTitle = strings.TrimSpace(in.JobTitle)
	in.Notes = strings.TrimSpace(in.Notes)
	if in.Status == "" {
		in.Status = StatusApplied
	}

	if in.CompanyName == "" || in.JobTitle == "" || !in.Status.Valid() {
		return Input{}, ErrInvalidInput
	}
	if _, err := time.Parse(appliedDateLayout, in.AppliedDate); err != nil {
		return Input{}, ErrInvalidInput
	}
	return in, nil
}
