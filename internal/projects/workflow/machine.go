// Package workflow holds the status transition and permission tables that
// drive the approval flow. Everything here is a pure table lookup; the
// service layer owns persistence.
package workflow

import (
	"strings"
	"time"

	"github.com/sify-labs/boq-backend/internal/projects/domain"
)

// nextByFlow maps (flow type, current status) to the next status.
// Statuses not on the active path are a defined no-op, not an error.
var nextByFlow = map[string]map[string]string{
	domain.FlowStandard: {
		domain.StatusDraft:                  domain.StatusPendingFinanceApproval,
		domain.StatusPendingFinanceApproval: domain.StatusApproved,
	},
	domain.FlowCustom: {
		domain.StatusDraft:                  domain.StatusPendingSAReview,
		domain.StatusPendingSAReview:        domain.StatusPendingPMReview,
		domain.StatusPendingPMReview:        domain.StatusPendingSAFinal,
		domain.StatusPendingSAFinal:         domain.StatusPendingFinanceApproval,
		domain.StatusPendingFinanceApproval: domain.StatusApproved,
	},
}

// permissions maps persona -> statuses it may act on.
var permissions = map[string][]string{
	domain.PersonaAccountManager:    {domain.StatusDraft, domain.StatusPendingSAFinal},
	domain.PersonaSolutionArchitect: {domain.StatusPendingSAReview, domain.StatusPendingSAFinal},
	domain.PersonaProductManager:    {domain.StatusPendingPMReview},
	domain.PersonaFinanceAdmin:      {domain.StatusPendingFinanceApproval},
}

// Next returns the status following current for the given flow type.
// Off-path statuses return unchanged.
func Next(current, flowType string) string {
	if table, ok := nextByFlow[flowType]; ok {
		if next, ok := table[current]; ok {
			return next
		}
	}
	return current
}

// CanAct reports whether the persona may act on a project in the given
// status. Every other pair is view-only.
func CanAct(persona, status string) bool {
	for _, s := range permissions[persona] {
		if s == status {
			return true
		}
	}
	return false
}

// Approve applies an approval by persona to the project: permission check,
// approval stamp, comment log entry, then the table transition. The caller
// persists the mutated project.
func Approve(p *domain.Project, persona, comments string, now time.Time) error {
	if p.Status == domain.StatusApproved {
		return domain.ErrAlreadyApproved
	}
	if !CanAct(persona, p.Status) {
		return domain.ErrNotPermitted
	}

	if p.Approvals == nil {
		p.Approvals = make(map[string]domain.Approval)
	}
	p.Approvals[persona] = domain.Approval{
		Approved:  true,
		Approver:  persona,
		Timestamp: now,
		Comments:  comments,
	}
	p.Comments = append(p.Comments, domain.Comment{
		Type:      domain.CommentApproval,
		Persona:   persona,
		Status:    p.Status,
		Text:      comments,
		Timestamp: now,
	})

	p.Status = Next(p.Status, p.FlowType)
	p.UpdatedAt = now
	if p.Status == domain.StatusApproved {
		completed := now
		p.CompletedAt = &completed
	}
	return nil
}

// Reject resets the project to Draft from any reviewable state. The comment
// is mandatory; the rejecting persona only needs to be a reviewer, not the
// one whose turn it is.
func Reject(p *domain.Project, persona, comments string, now time.Time) error {
	if strings.TrimSpace(comments) == "" {
		return domain.ErrCommentRequired
	}
	if !domain.ValidPersona(persona) {
		return domain.ErrInvalidPersona
	}
	if p.Status == domain.StatusApproved {
		return domain.ErrAlreadyApproved
	}

	p.Comments = append(p.Comments, domain.Comment{
		Type:      domain.CommentRejection,
		Persona:   persona,
		Status:    p.Status,
		Text:      comments,
		Timestamp: now,
	})
	p.Status = domain.StatusDraft
	p.UpdatedAt = now

	// A rejection voids earlier sign-offs; the next pass re-collects them.
	p.Approvals = nil
	return nil
}

// Submit moves a Draft project onto its review path. Only the Account
// Manager owns the Draft state.
func Submit(p *domain.Project, persona string, now time.Time) error {
	if p.Status != domain.StatusDraft {
		return domain.ErrInvalidStatus
	}
	if !CanAct(persona, p.Status) {
		return domain.ErrNotPermitted
	}
	p.Status = Next(p.Status, p.FlowType)
	p.UpdatedAt = now
	return nil
}
