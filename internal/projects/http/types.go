package http

import (
	"github.com/sify-labs/boq-backend/internal/projects/repository"
	"github.com/sify-labs/boq-backend/internal/projects/service"
)

// Handler bundles the dependencies for project HTTP endpoints.
type Handler struct {
	svc     *service.ProjectService
	archive *repository.ArchiveRepository // nil when Postgres is disabled
}

func New(svc *service.ProjectService, archive *repository.ArchiveRepository) *Handler {
	return &Handler{svc: svc, archive: archive}
}
