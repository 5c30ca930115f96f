package memory

import (
	"context"
	"testing"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/crm-api/internal/domain/entity"
)

// volatileString devuelve un string que comparte memoria con buf, como los params de fasthttp.
func volatileString(buf []byte) string {
	return unsafe.String(&buf[0], len(buf))
}

func TestStore_NoRetieneMemoriaDelLlamador(t *testing.T) {
	ctx := context.Background()
	store := NewStore()
	leads := store.Leads()

	leadID := uuid.NewString()
	buf := []byte(leadID)
	now := time.Now()
	require.NoError(t, leads.Create(ctx, &entity.Lead{
		ID: volatileString(buf), Name: "Pedro", Status: "new", CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, store.Activities().Create(ctx, &entity.Activity{
		ID: uuid.NewString(), LeadID: volatileString(buf), Type: entity.ActivityTypeCall, Title: "Llamada", CreatedAt: now,
	}))
	require.NoError(t, leads.UpdateStatus(ctx, volatileString(buf), "won", now))

	// El buffer se reutiliza para otra petición.
	otherID := uuid.NewString()
	copy(buf, otherID)

	got, err := leads.GetByID(ctx, leadID)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, leadID, got.ID)
	assert.Equal(t, "won", got.Status)

	ghost, err := leads.GetByID(ctx, otherID)
	require.NoError(t, err)
	assert.Nil(t, ghost)

	acts, err := store.Activities().ListByLead(ctx, leadID)
	require.NoError(t, err)
	require.Len(t, acts, 1)
	assert.Equal(t, leadID, acts[0].LeadID)
}
