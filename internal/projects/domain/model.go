package domain

import (
	"time"

	"github.com/sify-labs/boq-backend/internal/boq"
)

// Workflow statuses. Transitions happen only through the workflow package.
const (
	StatusDraft                  = "Draft"
	StatusPendingSAReview        = "PendingSAReview"
	StatusPendingPMReview        = "PendingPMReview"
	StatusPendingSAFinal         = "PendingSAFinal"
	StatusPendingFinanceApproval = "PendingFinanceApproval"
	StatusApproved               = "Approved"
)

// Flow types. Fixed at project creation; custom takes the full SA/PM review
// path, standard goes straight to finance.
const (
	FlowStandard = "standard"
	FlowCustom   = "custom"
)

// Reviewer personas.
const (
	PersonaAccountManager    = "Account Manager"
	PersonaSolutionArchitect = "Solution Architect"
	PersonaProductManager    = "Product Manager"
	PersonaFinanceAdmin      = "Finance Admin"
)

// Comment types in the project log.
const (
	CommentApproval  = "approval"
	CommentRejection = "rejection"
	CommentNote      = "note"
)

// Approval records one reviewer role's sign-off.
type Approval struct {
	Approved  bool      `json:"approved"`
	Approver  string    `json:"approver"`
	Timestamp time.Time `json:"timestamp"`
	Comments  string    `json:"comments,omitempty"`
}

// Comment is one entry of the ordered project comment log.
type Comment struct {
	Type      string    `json:"type"` // approval, rejection, note
	Persona   string    `json:"persona"`
	Status    string    `json:"status"` // project status when written
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}

// Project is one customer engagement moving through the approval workflow.
type Project struct {
	ID           string `json:"id"`
	PublicID     string `json:"public_id"`
	CustomerName string `json:"customer_name"`
	ProjectName  string `json:"project_name"`
	FlowType     string `json:"flow_type"`
	Status       string `json:"status"`
	ContractTerm int    `json:"contract_term_months"`

	MatchedItems   []boq.LineItem `json:"matched_items,omitempty"`
	UnmatchedItems []boq.LineItem `json:"unmatched_items,omitempty"`
	BoQItems       []boq.LineItem `json:"boq_items"`

	Approvals map[string]Approval `json:"approvals,omitempty"`
	Comments  []Comment           `json:"comments,omitempty"`

	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// ValidStatus reports whether s is one of the workflow statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusDraft, StatusPendingSAReview, StatusPendingPMReview,
		StatusPendingSAFinal, StatusPendingFinanceApproval, StatusApproved:
		return true
	}
	return false
}

// ValidFlowType reports whether f is a known flow type.
func ValidFlowType(f string) bool {
	return f == FlowStandard || f == FlowCustom
}

// ValidPersona reports whether p is one of the workflow personas.
func ValidPersona(p string) bool {
	switch p {
	case PersonaAccountManager, PersonaSolutionArchitect,
		PersonaProductManager, PersonaFinanceAdmin:
		return true
	}
	return false
}

// CreateProjectRequest carries the data needed to open a Draft project.
type CreateProjectRequest struct {
	CustomerName string
	ProjectName  string
	FlowType     string
	ContractTerm int
}
