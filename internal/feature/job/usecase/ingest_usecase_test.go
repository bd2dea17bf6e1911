package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobnaut/internal/feature/job/domain/entity"
)

type mockJobSource struct {
	SearchFunc func(ctx context.Context, query string, page int) ([]entity.NewJob, error)
	calls      []string
}

func (m *mockJobSource) Search(ctx context.Context, query string, page int) ([]entity.NewJob, error) {
	m.calls = append(m.calls, query)
	return m.SearchFunc(ctx, query, page)
}

type mockJobWriter struct {
	known   map[string]bool
	created []entity.NewJob
	fail    map[string]error
}

func (m *mockJobWriter) CreateJob(_ context.Context, in entity.NewJob) (*entity.Job, error) {
	if err, ok := m.fail[in.SourceID]; ok {
		return nil, err
	}
	m.created = append(m.created, in)
	return &entity.Job{ID: uint(len(m.created)), Title: in.Title}, nil
}

func (m *mockJobWriter) KnownSourceIDs(_ context.Context, _ string, ids []string) (map[string]bool, error) {
	out := map[string]bool{}
	for _, id := range ids {
		if m.known[id] {
			out[id] = true
		}
	}
	return out, nil
}

type mockRateLimiter struct {
	waits int
	err   error
}

func (m *mockRateLimiter) Wait(context.Context) error {
	m.waits++
	return m.err
}

func posting(id, title, desc string) entity.NewJob {
	return entity.NewJob{Title: title, Description: desc, Source: entity.SourceJSearch, SourceID: id}
}

func TestIngestUsecase_Run(t *testing.T) {
	t.Parallel()

	source := &mockJobSource{SearchFunc: func(_ context.Context, query string, _ int) ([]entity.NewJob, error) {
		switch query {
		case "go":
			return []entity.NewJob{
				posting("a", "Go Developer", "Golang and PostgreSQL"),
				posting("b", "Old posting", ""),
				posting("c", "Dup", ""),
			}, nil
		case "broken":
			return nil, errors.New("upstream down")
		default:
			return []entity.NewJob{posting("a", "Go Developer", "seen again")}, nil
		}
	}}
	writer := &mockJobWriter{
		known: map[string]bool{"b": true},
		fail:  map[string]error{"c": ErrDuplicateJob},
	}
	rl := &mockRateLimiter{}

	rep, err := NewIngestUsecase(source, writer, rl, 1).Run(context.Background(), []string{"go", "broken", "golang"})
	require.NoError(t, err)

	assert.Equal(t, IngestReport{Fetched: 4, Created: 1, Skipped: 3, Failed: 1}, rep)
	assert.Equal(t, 3, rl.waits)
	require.Len(t, writer.created, 1)
	assert.Equal(t, []string{"Go", "PostgreSQL"}, writer.created[0].Skills)
}

func TestIngestUsecase_Run_StopsPagingOnEmptyPage(t *testing.T) {
	t.Parallel()

	source := &mockJobSource{SearchFunc: func(_ context.Context, _ string, page int) ([]entity.NewJob, error) {
		if page == 1 {
			return []entity.NewJob{posting("p1", "Rust dev", "")}, nil
		}
		return []entity.NewJob{}, nil
	}}
	writer := &mockJobWriter{}

	rep, err := NewIngestUsecase(source, writer, &mockRateLimiter{}, 5).Run(context.Background(), []string{"rust"})
	require.NoError(t, err)

	assert.Equal(t, 1, rep.Created)
	assert.Len(t, source.calls, 2)
}

func TestIngestUsecase_Run_RateLimiterCanceled(t *testing.T) {
	t.Parallel()

	source := &mockJobSource{SearchFunc: func(context.Context, string, int) ([]entity.NewJob, error) {
		t.Fatal("source must not be called")
		return nil, nil
	}}
	rl := &mockRateLimiter{err: context.Canceled}

	_, err := NewIngestUsecase(source, &mockJobWriter{}, rl, 1).Run(context.Background(), []string{"go"})
	assert.ErrorIs(t, err, context.Canceled)
}
