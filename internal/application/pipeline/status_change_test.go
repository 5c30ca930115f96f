package pipeline_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/jhoicas/crm-api/internal/application/pipeline"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	catalog "github.com/jhoicas/crm-api/internal/domain/pipeline"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── Helpers ──────────────────────────────────────────────────────────────────

type publishedEvent struct {
	key     string
	payload any
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

func (p *fakePublisher) Publish(_ context.Context, key string, payload any) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, publishedEvent{key: key, payload: payload})
	return nil
}

func seedLead(t *testing.T, store *memory.Store, status string) *entity.Lead {
	t.Helper()
	now := time.Now().Add(-time.Hour)
	l := &entity.Lead{
		ID: "lead-1", Name: "Ana Pérez", Phone: "+573001234567",
		Source: entity.LeadSourceWebsite, Status: status, CreatedAt: now, UpdatedAt: now,
	}
	require.NoError(t, store.Leads().Create(context.Background(), l))
	return l
}

func newUseCase(store *memory.Store, pub pipeline.EventPublisher) *pipeline.StatusChangeUseCase {
	return pipeline.NewStatusChangeUseCase(store.Leads(), store, pub, nil)
}

func activitiesOf(t *testing.T, store *memory.Store, leadID string) []*entity.Activity {
	t.Helper()
	list, err := store.Activities().ListByLead(context.Background(), leadID)
	require.NoError(t, err)
	return list
}

// ── ChangeStatus ─────────────────────────────────────────────────────────────

func TestChangeStatus_RegistraUnaActividad(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusNew)
	pub := &fakePublisher{}
	uc := newUseCase(store, pub)

	res, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", catalog.StatusQualified)
	require.NoError(t, err)

	assert.True(t, res.Changed)
	assert.Equal(t, catalog.StatusQualified, res.Lead.Status)
	assert.Equal(t, "Calificado", res.Lead.StatusLabel)
	require.NotNil(t, res.Activity)
	assert.Equal(t, entity.ActivityTypeStatusChange, res.Activity.Type)
	assert.Contains(t, res.Activity.Description, "Nuevo")
	assert.Contains(t, res.Activity.Description, "Calificado")

	stored, err := store.Leads().GetByID(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusQualified, stored.Status)

	acts := activitiesOf(t, store, "lead-1")
	require.Len(t, acts, 1)
	assert.Equal(t, "user-1", acts[0].UserID)

	require.Len(t, pub.events, 1)
	assert.Equal(t, pipeline.RoutingKeyStatusChanged, pub.events[0].key)
	ev := pub.events[0].payload.(pipeline.StatusChangedEvent)
	assert.Equal(t, catalog.StatusNew, ev.From)
	assert.Equal(t, catalog.StatusQualified, ev.To)
	assert.Equal(t, acts[0].ID, ev.ActivityID)
}

func TestChangeStatus_MismoEstadoEsNoOp(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusProposal)
	pub := &fakePublisher{}
	uc := newUseCase(store, pub)

	res, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", catalog.StatusProposal)
	require.NoError(t, err)

	assert.False(t, res.Changed)
	assert.Nil(t, res.Activity)
	assert.Equal(t, 0, store.Calls("leads.UpdateStatus"), "no debe persistir nada")
	assert.Empty(t, activitiesOf(t, store, "lead-1"))
	assert.Empty(t, pub.events)
}

func TestChangeStatus_EstadoDesconocidoSeRechaza(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusNew)
	uc := newUseCase(store, nil)

	for _, bad := range []string{"archived", "", "WON"} {
		_, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", bad)
		assert.ErrorIs(t, err, domain.ErrUnknownStatus, bad)
	}
	assert.Equal(t, 0, store.Calls("leads.GetByIDForUpdate"))
	assert.Equal(t, 0, store.Calls("leads.UpdateStatus"))
	assert.Empty(t, activitiesOf(t, store, "lead-1"))
}

func TestChangeStatus_LeadInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := newUseCase(store, nil)

	_, err := uc.ChangeStatus(context.Background(), "user-1", "no-existe", catalog.StatusWon)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestChangeStatus_FalloAlPersistirNoDejaActividad(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusContacted)
	boom := errors.New("conexión perdida")
	store.Fail("leads.UpdateStatus", boom)
	uc := newUseCase(store, &fakePublisher{})

	_, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", catalog.StatusWon)
	assert.ErrorIs(t, err, boom)

	store.Reset()
	assert.Empty(t, activitiesOf(t, store, "lead-1"))
	stored, _ := store.Leads().GetByID(context.Background(), "lead-1")
	assert.Equal(t, catalog.StatusContacted, stored.Status)
}

func TestChangeStatus_FalloEnActividadRevierteElEstado(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusContacted)
	store.Fail("activities.Create", errors.New("disk full"))
	uc := newUseCase(store, nil)

	_, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", catalog.StatusProposal)
	require.Error(t, err)

	store.Reset()
	stored, _ := store.Leads().GetByID(context.Background(), "lead-1")
	assert.Equal(t, catalog.StatusContacted, stored.Status, "la transacción se revierte completa")
}

func TestChangeStatus_FalloAlPublicarNoRevierte(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusNegotiation)
	uc := newUseCase(store, &fakePublisher{err: errors.New("broker caído")})

	res, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", catalog.StatusLost)
	require.NoError(t, err)
	assert.True(t, res.Changed)
	assert.Len(t, activitiesOf(t, store, "lead-1"), 1)
}

func TestChangeStatus_SalirDeEtapaFinalPermitido(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusWon)
	uc := newUseCase(store, nil)

	res, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", catalog.StatusContacted)
	require.NoError(t, err)
	assert.True(t, res.Changed)
}

func TestChangeStatus_CadaCambioAgregaActividad(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusNew)
	uc := newUseCase(store, nil)
	ctx := context.Background()

	for _, s := range []string{catalog.StatusContacted, catalog.StatusQualified, catalog.StatusContacted} {
		_, err := uc.ChangeStatus(ctx, "user-1", "lead-1", s)
		require.NoError(t, err)
	}
	assert.Len(t, activitiesOf(t, store, "lead-1"), 3)
}

func TestChangeStatus_LeeElLeadConBloqueo(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusNew)
	uc := newUseCase(store, nil)

	_, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", catalog.StatusContacted)
	require.NoError(t, err)
	assert.Equal(t, 1, store.Calls("leads.GetByIDForUpdate"))
	assert.Equal(t, 0, store.Calls("leads.GetByID"))
}

func TestChangeStatus_ConcurrentesQuedanEncadenados(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusNew)
	uc := newUseCase(store, nil)

	var wg sync.WaitGroup
	for _, to := range []string{catalog.StatusWon, catalog.StatusLost} {
		wg.Add(1)
		go func(to string) {
			defer wg.Done()
			_, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", to)
			assert.NoError(t, err)
		}(to)
	}
	wg.Wait()

	acts := activitiesOf(t, store, "lead-1")
	require.Len(t, acts, 2)
	descs := []string{acts[0].Description, acts[1].Description}

	stored, err := store.Leads().GetByID(context.Background(), "lead-1")
	require.NoError(t, err)
	first := catalog.StatusWon
	if stored.Status == catalog.StatusWon {
		first = catalog.StatusLost
	}
	// Solo una transición sale de "new"; la otra parte del estado que dejó la primera.
	assert.ElementsMatch(t, []string{
		catalog.TransitionDescription(catalog.StatusNew, first),
		catalog.TransitionDescription(first, stored.Status),
	}, descs)
}

func TestChangeStatus_MismoEstadoConcurrenteCambiaUnaVez(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusNew)
	uc := newUseCase(store, nil)

	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		changed int
	)
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", catalog.StatusWon)
			if assert.NoError(t, err) && res.Changed {
				mu.Lock()
				changed++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, changed)
	assert.Len(t, activitiesOf(t, store, "lead-1"), 1)
}

func TestChangeStatus_UpdatedAtCoincideConLoGuardado(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusNew)
	uc := newUseCase(store, nil)

	res, err := uc.ChangeStatus(context.Background(), "user-1", "lead-1", catalog.StatusProposal)
	require.NoError(t, err)

	stored, err := store.Leads().GetByID(context.Background(), "lead-1")
	require.NoError(t, err)
	assert.True(t, stored.UpdatedAt.Equal(res.Lead.UpdatedAt))
	assert.Equal(t, stored.UpdatedAt, stored.UpdatedAt.Truncate(time.Microsecond))
}

// ── Progress ─────────────────────────────────────────────────────────────────

func TestProgress(t *testing.T) {
	store := memory.NewStore()
	seedLead(t, store, catalog.StatusQualified)
	uc := newUseCase(store, nil)

	res, err := uc.Progress(context.Background(), "lead-1")
	require.NoError(t, err)
	require.NotNil(t, res)
	require.Len(t, res.Steps, 7)

	states := make([]string, len(res.Steps))
	for i, s := range res.Steps {
		states[i] = s.State
	}
	assert.Equal(t, []string{"completed", "completed", "active", "pending", "pending", "pending", "pending"}, states)

	missing, err := uc.Progress(context.Background(), "otro")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestStages(t *testing.T) {
	uc := newUseCase(memory.NewStore(), nil)
	res := uc.Stages()
	require.Len(t, res.Stages, 7)
	assert.Equal(t, catalog.StatusNew, res.Stages[0].Value)
	assert.Equal(t, catalog.StatusLost, res.Stages[6].Value)
}
