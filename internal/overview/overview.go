// Package overview fans the eligibility engine out across program and
// applicant collections for the dashboard, roster, and student views. All
// functions are pure passes over slices; nothing here caches, so every
// mutation is reflected on the next request.
package overview

import (
	"sort"
	"time"

	"github.com/nateekarni/dsu-intensive-global/internal/eligibility"
	"github.com/nateekarni/dsu-intensive-global/internal/model"
)

// Counters are the admin dashboard headline numbers.
type Counters struct {
	OpenPrograms      int `json:"open_programs"`
	TotalApplicants   int `json:"total_applicants"`
	PendingDocReviews int `json:"pending_doc_reviews"`
	PendingInterviews int `json:"pending_interviews"`
}

// CountAll computes the dashboard counters in one pass over each collection.
// An applicant counts toward PendingDocReviews when any upload is still
// pending, and toward PendingInterviews when their program admits by
// interview and no final result exists yet.
func CountAll(programs []model.Program, applicants []model.Applicant) Counters {
	var c Counters

	byID := programsByID(programs)

	for _, p := range programs {
		if p.Status == model.ProgramStatusOpen {
			c.OpenPrograms++
		}
	}

	c.TotalApplicants = len(applicants)

	for i := range applicants {
		a := &applicants[i]
		for _, up := range a.Documents {
			if up.Status == model.DocumentStatusPending {
				c.PendingDocReviews++
				break
			}
		}

		p, ok := byID[a.ProgramID]
		if !ok || p.AdmissionType != model.AdmissionInterview {
			continue
		}
		switch a.Interview.Result {
		case "", model.InterviewResultPending:
			c.PendingInterviews++
		}
	}

	return c
}

const day = 24 * time.Hour

// DaysUntil returns the days from now until deadline, rounding up so "later
// today" still counts as one day left. Past deadlines yield negative counts.
func DaysUntil(deadline, now time.Time) int {
	diff := deadline.Sub(now)
	d := int(diff / day)
	if diff%day > 0 {
		d++
	}
	return d
}

// DeadlineEntry is one open program whose application deadline is near.
type DeadlineEntry struct {
	Program  model.Program `json:"program"`
	DaysLeft int           `json:"days_left"`
}

// DeadlineSoon lists open programs whose deadline falls within the next
// window days, soonest first. Programs sharing a deadline keep their
// original collection order.
func DeadlineSoon(programs []model.Program, now time.Time, window int) []DeadlineEntry {
	entries := make([]DeadlineEntry, 0)
	for _, p := range programs {
		if p.Status != model.ProgramStatusOpen {
			continue
		}
		left := DaysUntil(p.ApplicationDeadline, now)
		if left < 0 || left > window {
			continue
		}
		entries = append(entries, DeadlineEntry{Program: p, DaysLeft: left})
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].DaysLeft < entries[j].DaysLeft
	})
	return entries
}

// RosterRow is one line of the per-program applicant table.
type RosterRow struct {
	Applicant     model.Applicant         `json:"applicant"`
	Complete      bool                    `json:"complete"`
	ApprovedCount int                     `json:"approved_count"`
	TotalRequired int                     `json:"total_required"`
	Stage         string                  `json:"stage"`
	Badge         eligibility.StatusBadge `json:"badge"`
}

// Roster builds the admin table for one program's applicants, one engine
// evaluation per row.
func Roster(program *model.Program, applicants []model.Applicant) []RosterRow {
	required := eligibility.RequiredDocumentIDs(program)
	rows := make([]RosterRow, 0, len(applicants))
	for i := range applicants {
		a := applicants[i]
		stage := eligibility.StageOf(program, &a)
		rows = append(rows, RosterRow{
			Applicant:     a,
			Complete:      stage == eligibility.StageComplete,
			ApprovedCount: eligibility.ApprovedCount(a.Documents),
			TotalRequired: len(required),
			Stage:         stage.String(),
			Badge:         eligibility.DetailLabel(stage),
		})
	}
	return rows
}

// ApplicationSummary is one application inside a student history group.
type ApplicationSummary struct {
	ApplicantID  uint                    `json:"applicant_id"`
	ProgramID    uint                    `json:"program_id"`
	ProgramTitle string                  `json:"program_title"`
	AppliedAt    time.Time               `json:"applied_at"`
	Stage        string                  `json:"stage"`
	Badge        eligibility.StatusBadge `json:"badge"`
}

// StudentGroup collects every application a single student has submitted.
type StudentGroup struct {
	Student         model.StudentBio     `json:"student"`
	UserID          string               `json:"user_id"`
	Applications    []ApplicationSummary `json:"applications"`
	LatestAppliedAt time.Time            `json:"latest_applied_at"`
}

// StudentHistory groups applicants by student account and sorts groups by
// most recent application first. Applications referencing a missing program
// are skipped rather than guessed at.
func StudentHistory(programs []model.Program, applicants []model.Applicant) []StudentGroup {
	byID := programsByID(programs)

	groups := make(map[string]*StudentGroup)
	order := make([]string, 0)

	for i := range applicants {
		a := &applicants[i]
		p, ok := byID[a.ProgramID]
		if !ok {
			continue
		}

		key := a.UserID.String()
		g, exists := groups[key]
		if !exists {
			g = &StudentGroup{
				Student:         a.Student,
				UserID:          key,
				LatestAppliedAt: a.AppliedAt,
			}
			groups[key] = g
			order = append(order, key)
		}

		stage := eligibility.StageOf(p, a)
		g.Applications = append(g.Applications, ApplicationSummary{
			ApplicantID:  a.ID,
			ProgramID:    p.ID,
			ProgramTitle: p.Title,
			AppliedAt:    a.AppliedAt,
			Stage:        stage.String(),
			Badge:        eligibility.ListLabel(stage),
		})
		if a.AppliedAt.After(g.LatestAppliedAt) {
			g.LatestAppliedAt = a.AppliedAt
		}
	}

	out := make([]StudentGroup, 0, len(groups))
	for _, key := range order {
		out = append(out, *groups[key])
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].LatestAppliedAt.After(out[j].LatestAppliedAt)
	})
	return out
}

// RecentApplications returns the latest n applications, newest first.
func RecentApplications(applicants []model.Applicant, n int) []model.Applicant {
	sorted := make([]model.Applicant, len(applicants))
	copy(sorted, applicants)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].AppliedAt.After(sorted[j].AppliedAt)
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}

func programsByID(programs []model.Program) map[uint]*model.Program {
	byID := make(map[uint]*model.Program, len(programs))
	for i := range programs {
		byID[programs[i].ID] = &programs[i]
	}
	return byID
}
