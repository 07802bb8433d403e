package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"workforce-backend/models"
)

func TestResolveCollaboratorRateFallback(t *testing.T) {
	db := setupTestDB(t)

	assignment := models.Assignment{Title: "Rigger", BaseHourlyCost: 11.5}
	require.NoError(t, db.Create(&assignment).Error)

	// No override: base hourly cost applies.
	rate, err := ResolveCollaboratorRate(db, 1, assignment)
	require.NoError(t, err)
	assert.InDelta(t, 11.5, rate, 1e-9)

	require.NoError(t, db.Create(&models.CollaboratorRate{
		CollaboratorID: 1, AssignmentID: assignment.Id, HourlyCost: 15,
	}).Error)

	rate, err = ResolveCollaboratorRate(db, 1, assignment)
	require.NoError(t, err)
	assert.InDelta(t, 15.0, rate, 1e-9)

	// The override is scoped to its collaborator.
	rate, err = ResolveCollaboratorRate(db, 2, assignment)
	require.NoError(t, err)
	assert.InDelta(t, 11.5, rate, 1e-9)
}

func TestResolveCompanyRateFallback(t *testing.T) {
	db := setupTestDB(t)

	// No pricing entry means nothing is billed.
	rate, err := ResolveCompanyRate(db, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 0.0, rate, 1e-9)

	require.NoError(t, db.Create(&models.ClientRate{
		ClientID: 1, AssignmentID: 1, HourlyPrice: 27.5,
	}).Error)

	rate, err = ResolveCompanyRate(db, 1, 1)
	require.NoError(t, err)
	assert.InDelta(t, 27.5, rate, 1e-9)
}
