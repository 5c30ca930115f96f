package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/crm-api/internal/application/dto"
	"github.com/jhoicas/crm-api/internal/domain"
	"github.com/jhoicas/crm-api/internal/domain/entity"
	"github.com/jhoicas/crm-api/internal/domain/pipeline"
	"github.com/jhoicas/crm-api/internal/infrastructure/memory"
	"github.com/jhoicas/crm-api/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLeadUseCase_CreateEntraEnPrimeraEtapa(t *testing.T) {
	store := memory.NewStore()
	uc := NewLeadUseCase(store.Leads())

	res, err := uc.Create(context.Background(), "user-1", dto.CreateLeadRequest{
		Name: "Pedro Ruiz", Phone: "300 123 4567", Source: entity.LeadSourceWebsite,
	})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StatusNew, res.Status)
	assert.Equal(t, "Nuevo", res.StatusLabel)
	assert.Equal(t, "3001234567", res.Phone)
}

func TestLeadUseCase_CreateRechazaEstadoDesconocido(t *testing.T) {
	store := memory.NewStore()
	uc := NewLeadUseCase(store.Leads())

	_, err := uc.Create(context.Background(), "user-1", dto.CreateLeadRequest{Name: "Pedro", Status: "archived"})
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs, "status")
	assert.Equal(t, 0, store.Calls("leads.Create"))
}

func TestLeadUseCase_ListFiltros(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := NewLeadUseCase(store.Leads())
	for _, in := range []dto.CreateLeadRequest{
		{Name: "Ana Torres", Source: entity.LeadSourceWebsite},
		{Name: "Beto Torres", Source: entity.LeadSourceReferral, Status: pipeline.StatusQualified},
		{Name: "Carla Díaz", Source: entity.LeadSourceWebsite, Status: pipeline.StatusQualified},
	} {
		_, err := uc.Create(ctx, "user-1", in)
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, dto.LeadListRequest{Status: pipeline.StatusQualified})
	require.NoError(t, err)
	assert.Len(t, res.Items, 2)

	res, err = uc.List(ctx, dto.LeadListRequest{PageRequest: dto.PageRequest{Search: "torres"}, Source: entity.LeadSourceReferral})
	require.NoError(t, err)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "Beto Torres", res.Items[0].Name)

	_, err = uc.List(ctx, dto.LeadListRequest{Status: "archived"})
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
}

func TestLeadUseCase_UpdateNoCambiaEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	uc := NewLeadUseCase(store.Leads())
	created, err := uc.Create(ctx, "user-1", dto.CreateLeadRequest{Name: "Ana", Status: pipeline.StatusProposal})
	require.NoError(t, err)

	res, err := uc.Update(ctx, created.ID, dto.UpdateLeadRequest{Message: strPtr("llamar el lunes")})
	require.NoError(t, err)
	assert.Equal(t, pipeline.StatusProposal, res.Status)
	assert.Equal(t, "llamar el lunes", res.Message)

	require.NoError(t, uc.Delete(ctx, created.ID))
	got, err := uc.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Nil(t, got)
}

// ── Actividades, notas y tareas ──────────────────────────────────────────────

func seedLeadWithUser(t *testing.T, store *memory.Store) string {
	t.Helper()
	ctx := context.Background()
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u-ana", Email: "ana@crm.test", Name: "Ana", Role: entity.RoleSales, Status: "active"}))
	require.NoError(t, store.Users().Create(ctx, &entity.User{ID: "u-beto", Email: "beto@crm.test", Name: "Beto", Role: entity.RoleSales, Status: "active"}))
	now := time.Now()
	require.NoError(t, store.Leads().Create(ctx, &entity.Lead{ID: "lead-1", Name: "Lead", Status: pipeline.StatusNew, CreatedAt: now, UpdatedAt: now}))
	return "lead-1"
}

func TestActivityUseCase_LeadInexistente(t *testing.T) {
	store := memory.NewStore()
	uc := NewActivityUseCase(store.Activities(), store.Leads())

	_, err := uc.Create(context.Background(), "u", "nope", dto.CreateActivityRequest{Type: entity.ActivityTypeCall, Title: "Llamada"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
	_, err = uc.ListByLead(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestActivityUseCase_CRUD(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	leadID := seedLeadWithUser(t, store)
	uc := NewActivityUseCase(store.Activities(), store.Leads())

	a, err := uc.Create(ctx, "u-ana", leadID, dto.CreateActivityRequest{Type: entity.ActivityTypeMeeting, Title: " Demo "})
	require.NoError(t, err)
	assert.Equal(t, "Demo", a.Title)

	upd, err := uc.Update(ctx, a.ID, dto.UpdateActivityRequest{Description: strPtr("resultado positivo")})
	require.NoError(t, err)
	assert.Equal(t, "resultado positivo", upd.Description)

	list, err := uc.ListByLead(ctx, leadID)
	require.NoError(t, err)
	assert.Len(t, list, 1)

	require.NoError(t, uc.Delete(ctx, a.ID))
	list, err = uc.ListByLead(ctx, leadID)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestNoteUseCase_PrivadasSoloParaSuAutor(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	leadID := seedLeadWithUser(t, store)
	uc := NewNoteUseCase(store.Notes(), store.Leads(), store.Users())

	pub, err := uc.Create(ctx, "u-ana", leadID, dto.CreateNoteRequest{Content: "visible"})
	require.NoError(t, err)
	assert.Equal(t, "Ana", pub.Author)
	_, err = uc.Create(ctx, "u-ana", leadID, dto.CreateNoteRequest{Content: "secreto", IsPrivate: true})
	require.NoError(t, err)

	mine, err := uc.ListByLead(ctx, "u-ana", leadID)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	others, err := uc.ListByLead(ctx, "u-beto", leadID)
	require.NoError(t, err)
	require.Len(t, others, 1)
	assert.Equal(t, "visible", others[0].Content)
	assert.NotNil(t, others[0].MediaURLs)

	var secretID string
	for _, n := range mine {
		if n.IsPrivate {
			secretID = n.ID
		}
	}
	edited, err := uc.Update(ctx, "u-beto", secretID, dto.UpdateNoteRequest{Content: strPtr("hackeado")})
	require.NoError(t, err)
	assert.Nil(t, edited)
	assert.ErrorIs(t, uc.Delete(ctx, "u-beto", secretID), domain.ErrNotFound)

	edited, err = uc.Update(ctx, "u-ana", secretID, dto.UpdateNoteRequest{Content: strPtr("secreto 2")})
	require.NoError(t, err)
	require.NotNil(t, edited)
	assert.Equal(t, "secreto 2", edited.Content)
	require.NoError(t, uc.Delete(ctx, "u-ana", secretID))
}

func TestTaskUseCase_CompletedAtSigueAlEstado(t *testing.T) {
	ctx := context.Background()
	store := memory.NewStore()
	leadID := seedLeadWithUser(t, store)
	uc := NewTaskUseCase(store.Tasks(), store.Leads())
	fixed := time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC)
	uc.now = func() time.Time { return fixed }

	task, err := uc.Create(ctx, "u-ana", leadID, dto.CreateTaskRequest{Title: "Enviar propuesta"})
	require.NoError(t, err)
	assert.Equal(t, entity.TaskPriorityMedium, task.Priority)
	assert.Equal(t, entity.TaskStatusPending, task.Status)
	assert.Nil(t, task.CompletedAt)

	done, err := uc.Complete(ctx, task.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.TaskStatusCompleted, done.Status)
	require.NotNil(t, done.CompletedAt)
	assert.True(t, done.CompletedAt.Equal(fixed))

	reopened, err := uc.Update(ctx, task.ID, dto.UpdateTaskRequest{Status: strPtr(entity.TaskStatusInProgress)})
	require.NoError(t, err)
	assert.Nil(t, reopened.CompletedAt)

	missing, err := uc.Complete(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestLeadUseCase_UpdateConCadenaVaciaBorraContacto(t *testing.T) {
	store := memory.NewStore()
	uc := NewLeadUseCase(store.Leads())

	l, err := uc.Create(context.Background(), "user-1", dto.CreateLeadRequest{Name: "Pedro Ruiz", Email: "pedro@example.com", Phone: "3001234567"})
	require.NoError(t, err)

	empty := ""
	res, err := uc.Update(context.Background(), l.ID, dto.UpdateLeadRequest{Email: &empty, Phone: &empty})
	require.NoError(t, err)
	assert.Empty(t, res.Email)
	assert.Empty(t, res.Phone)

	bad := "123"
	_, err = uc.Update(context.Background(), l.ID, dto.UpdateLeadRequest{Phone: &bad})
	var verrs validate.Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["phone"], "teléfono inválido")
}
