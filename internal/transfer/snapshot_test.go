package transfer

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sify-labs/boq-backend/internal/projects/domain"
)

// fakeSource records whether ReplaceAll ran so tests can assert invalid
// payloads never touch state.
type fakeSource struct {
	projects []domain.Project
	replaced bool
}

func (f *fakeSource) List(ctx context.Context) ([]domain.Project, error) {
	return f.projects, nil
}

func (f *fakeSource) ReplaceAll(ctx context.Context, projects []domain.Project) error {
	f.projects = projects
	f.replaced = true
	return nil
}

func TestExport(t *testing.T) {
	src := &fakeSource{projects: []domain.Project{
		{PublicID: "boq_aaa11111", ProjectName: "One"},
		{PublicID: "boq_bbb22222", ProjectName: "Two"},
	}}

	snap, err := Export(context.Background(), src)
	require.NoError(t, err)
	assert.Equal(t, SnapshotVersion, snap.Version)
	assert.Len(t, snap.Projects, 2)
	assert.False(t, snap.ExportDate.IsZero())
}

func TestImport_RoundTrip(t *testing.T) {
	src := &fakeSource{}
	payload := []byte(`{
		"projects": [
			{"public_id": "boq_ccc33333", "project_name": "Restored", "status": "Draft"}
		],
		"export_date": "2026-08-01T00:00:00Z",
		"version": "1.0"
	}`)

	n, err := Import(context.Background(), src, payload)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	require.True(t, src.replaced)
	assert.Equal(t, "boq_ccc33333", src.projects[0].PublicID)
}

func TestImport_RejectsInvalidPayloads(t *testing.T) {
	payloads := [][]byte{
		[]byte(`not json`),
		[]byte(`[]`),
		[]byte(`{"version": "1.0"}`),
		[]byte(`{"projects": "not-an-array"}`),
		[]byte(`{"projects": {"nested": true}}`),
		// null decodes into a nil slice without error, but it is not an
		// array; accepting it would wipe the live set.
		[]byte(`{"projects": null}`),
	}

	for _, payload := range payloads {
		src := &fakeSource{projects: []domain.Project{{PublicID: "boq_keep1234"}}}
		_, err := Import(context.Background(), src, payload)
		assert.ErrorIs(t, err, ErrInvalidSnapshot, "payload %s", payload)
		assert.False(t, src.replaced, "payload %s must not touch state", payload)
	}
}

func TestImport_EmptyProjectsArrayIsValid(t *testing.T) {
	src := &fakeSource{projects: []domain.Project{{PublicID: "boq_old12345"}}}

	n, err := Import(context.Background(), src, []byte(`{"projects": []}`))
	require.NoError(t, err)
	assert.Equal(t, 0, n)
	assert.True(t, src.replaced)
	assert.Empty(t, src.projects)
}
