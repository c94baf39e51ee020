package service

import (
	"context"
	"log"
	"strings"
	"time"

	"github.com/sify-labs/boq-backend/internal/boq"
	"github.com/sify-labs/boq-backend/internal/projects/domain"
	"github.com/sify-labs/boq-backend/internal/projects/repository"
	"github.com/sify-labs/boq-backend/internal/projects/workflow"
	"github.com/sify-labs/boq-backend/internal/scenarios"
	"github.com/sify-labs/boq-backend/internal/session"
)

// ProjectService owns every project mutation: BoQ edits, workflow actions,
// scenario matching. Repositories persist whatever the service hands them and
// never compute transitions themselves.
type ProjectService struct {
	live     *repository.LiveRepository
	archive  *repository.ArchiveRepository // nil when Postgres is disabled
	sessions session.Store
	rates    boq.RateCard
}

func NewProjectService(live *repository.LiveRepository, archive *repository.ArchiveRepository, sessions session.Store, rates boq.RateCard) *ProjectService {
	return &ProjectService{
		live:     live,
		archive:  archive,
		sessions: sessions,
		rates:    rates,
	}
}

// essentialItems are auto-added to every new project; every engagement ships
// with an internet link and a backup line.
func (s *ProjectService) essentialItems() []boq.LineItem {
	return []boq.LineItem{
		{
			Category:       boq.CategoryInternet,
			SKU:            "INET-SHR-100",
			Quantity:       1,
			InternetConfig: &boq.InternetConfig{BandwidthMbps: 100, LinkType: "shared"},
		},
		{
			Category:     boq.CategoryBackup,
			SKU:          "BKP-STD",
			Quantity:     1,
			BackupConfig: &boq.BackupConfig{SizeGB: 500, RetentionDays: 14, Frequency: "daily"},
		},
	}
}

// Create opens a Draft project with the essential services pre-added.
func (s *ProjectService) Create(ctx context.Context, req *domain.CreateProjectRequest) (*domain.Project, error) {
	if strings.TrimSpace(req.CustomerName) == "" || strings.TrimSpace(req.ProjectName) == "" {
		return nil, domain.ErrInvalidStatus
	}
	if !domain.ValidFlowType(req.FlowType) {
		return nil, domain.ErrInvalidFlowType
	}

	p := &domain.Project{
		CustomerName: strings.TrimSpace(req.CustomerName),
		ProjectName:  strings.TrimSpace(req.ProjectName),
		FlowType:     req.FlowType,
		Status:       domain.StatusDraft,
		ContractTerm: req.ContractTerm,
	}

	store := boq.NewStore(s.rates, nil)
	for _, item := range s.essentialItems() {
		if _, err := store.Add(item); err != nil {
			return nil, err
		}
	}
	p.BoQItems = store.Items()

	if err := s.live.Create(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *ProjectService) Get(ctx context.Context, publicID string) (*domain.Project, error) {
	return s.live.Get(ctx, publicID)
}

func (s *ProjectService) List(ctx context.Context) ([]domain.Project, error) {
	return s.live.List(ctx)
}

// Delete discards a live project. Approved projects keep their archive row;
// only the working copy goes away.
func (s *ProjectService) Delete(ctx context.Context, publicID string) error {
	if _, err := s.live.Get(ctx, publicID); err != nil {
		return err
	}
	return s.live.Delete(ctx, publicID)
}

// UpdateMeta edits customer-facing fields. FlowType is fixed at creation and
// not touched here.
func (s *ProjectService) UpdateMeta(ctx context.Context, publicID, customerName, projectName string, contractTerm *int) (*domain.Project, error) {
	p, err := s.live.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(customerName) != "" {
		p.CustomerName = strings.TrimSpace(customerName)
	}
	if strings.TrimSpace(projectName) != "" {
		p.ProjectName = strings.TrimSpace(projectName)
	}
	if contractTerm != nil {
		p.ContractTerm = *contractTerm
	}
	if err := s.live.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// AddItem appends a line item to the project's BoQ and persists.
func (s *ProjectService) AddItem(ctx context.Context, publicID string, item boq.LineItem) (*domain.Project, boq.LineItem, error) {
	p, err := s.editableProject(ctx, publicID)
	if err != nil {
		return nil, boq.LineItem{}, err
	}

	store := boq.NewStore(s.rates, p.BoQItems)
	idx, err := store.Add(item)
	if err != nil {
		return nil, boq.LineItem{}, err
	}
	p.BoQItems = store.Items()

	if err := s.live.Update(ctx, p); err != nil {
		return nil, boq.LineItem{}, err
	}
	return p, p.BoQItems[idx], nil
}

// EditItem replaces the item at index, re-deriving code and prices.
func (s *ProjectService) EditItem(ctx context.Context, publicID string, index int, item boq.LineItem, keepUnit bool) (*domain.Project, boq.LineItem, error) {
	p, err := s.editableProject(ctx, publicID)
	if err != nil {
		return nil, boq.LineItem{}, err
	}

	store := boq.NewStore(s.rates, p.BoQItems)
	saved, err := store.Edit(index, item, keepUnit)
	if err != nil {
		return nil, boq.LineItem{}, err
	}
	p.BoQItems = store.Items()

	if err := s.live.Update(ctx, p); err != nil {
		return nil, boq.LineItem{}, err
	}
	return p, saved, nil
}

// RemoveItem supersedes the item at index in place.
func (s *ProjectService) RemoveItem(ctx context.Context, publicID string, index int) (*domain.Project, error) {
	p, err := s.editableProject(ctx, publicID)
	if err != nil {
		return nil, err
	}

	store := boq.NewStore(s.rates, p.BoQItems)
	if err := store.Remove(index); err != nil {
		return nil, err
	}
	p.BoQItems = store.Items()

	if err := s.live.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// MatchScenario runs the simulated requirement-sheet upload for the project
// and stores the matched/unmatched split. Matched items are appended to the
// BoQ; unmatched rows wait for manual pricing.
func (s *ProjectService) MatchScenario(ctx context.Context, publicID, scenarioID string) (*domain.Project, *scenarios.MatchResult, error) {
	p, err := s.editableProject(ctx, publicID)
	if err != nil {
		return nil, nil, err
	}

	sc, err := scenarios.Get(scenarioID)
	if err != nil {
		return nil, nil, err
	}

	res := scenarios.Match(sc, s.rates)
	p.MatchedItems = res.Matched
	p.UnmatchedItems = res.Unmatched

	store := boq.NewStore(s.rates, p.BoQItems)
	for _, item := range res.Matched {
		if _, err := store.Add(item); err != nil {
			return nil, nil, err
		}
	}
	p.BoQItems = store.Items()

	if err := s.live.Update(ctx, p); err != nil {
		return nil, nil, err
	}

	if n, err := s.sessions.IncrUploadCount(ctx); err == nil {
		log.Printf("[match] project=%s scenario=%s uploads=%d matched=%d unmatched=%d",
			publicID, scenarioID, n, len(res.Matched), len(res.Unmatched))
	}
	return p, &res, nil
}

// Submit moves a Draft onto its review path.
func (s *ProjectService) Submit(ctx context.Context, publicID, persona string) (*domain.Project, error) {
	p, err := s.live.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Submit(p, persona, time.Now()); err != nil {
		return nil, err
	}
	if err := s.live.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Approve applies the persona's approval and, when the project reaches
// Approved, archives a snapshot.
func (s *ProjectService) Approve(ctx context.Context, publicID, persona, comments string) (*domain.Project, error) {
	p, err := s.live.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Approve(p, persona, comments, time.Now()); err != nil {
		return nil, err
	}
	if err := s.live.Update(ctx, p); err != nil {
		return nil, err
	}

	if p.Status == domain.StatusApproved && s.archive != nil {
		total := boq.NewStore(s.rates, p.BoQItems).Totals()
		if err := s.archive.Archive(ctx, p, total); err != nil && err != domain.ErrAlreadyApproved {
			// The live update already happened; losing the archive row is
			// logged, not rolled back.
			log.Printf("[archive] project=%s archive failed: %v", publicID, err)
		}
	}
	return p, nil
}

// Reject resets the project to Draft with a mandatory comment.
func (s *ProjectService) Reject(ctx context.Context, publicID, persona, comments string) (*domain.Project, error) {
	p, err := s.live.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if err := workflow.Reject(p, persona, comments, time.Now()); err != nil {
		return nil, err
	}
	if err := s.live.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// CanAct reports whether persona may act on the project right now.
func (s *ProjectService) CanAct(persona string, p *domain.Project) bool {
	return workflow.CanAct(persona, p.Status)
}

// Totals sums the active BoQ line totals for the project.
func (s *ProjectService) Totals(p *domain.Project) int64 {
	return boq.NewStore(s.rates, p.BoQItems).Totals()
}

// editableProject loads a project and checks it is still in Draft; BoQ edits
// during review would bypass the sign-offs already collected.
func (s *ProjectService) editableProject(ctx context.Context, publicID string) (*domain.Project, error) {
	p, err := s.live.Get(ctx, publicID)
	if err != nil {
		return nil, err
	}
	if p.Status != domain.StatusDraft {
		return nil, domain.ErrInvalidStatus
	}
	return p, nil
}
