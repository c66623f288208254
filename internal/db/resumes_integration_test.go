//go:build integration

package db

import (
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-builder/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DB {
	dbURL := os.Getenv("TEST_DATABASE_URL")
	if dbURL == "" {
		t.Skip("TEST_DATABASE_URL not set, skipping integration test")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	db, err := Connect(ctx, dbURL)
	if err != nil {
		t.Skipf("Skipping integration test: failed to connect to DB: %v", err)
	}
	require.NoError(t, db.Migrate(ctx))
	return db
}

func testOwner() string {
	return "owner-" + uuid.NewString() + "@example.com"
}

func TestIntegration_MigrateIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()

	assert.NoError(t, db.Migrate(context.Background()))
}

func TestIntegration_ResumeCRUD(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	owner := testOwner()

	doc := types.Resume{LastName: "Lovelace", FirstName: "Ada", Photo: "data:image/png;base64,AAAA"}
	id, err := db.SaveResume(ctx, owner, nil, doc)
	require.NoError(t, err)
	defer db.DeleteResume(ctx, owner, id)

	record, err := db.GetResume(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, owner, record.OwnerEmail)
	assert.Equal(t, "Lovelace Ada", record.Title)
	assert.False(t, record.ShareEnabled)
	assert.Nil(t, record.ShareToken)

	var stored types.Resume
	require.NoError(t, json.Unmarshal(record.Document, &stored))
	assert.Equal(t, "data:image/png;base64,AAAA", stored.Photo, "saved documents keep the photo")

	doc.Position = "Analyst"
	sameID, err := db.SaveResume(ctx, owner, &id, doc)
	require.NoError(t, err)
	assert.Equal(t, id, sameID)

	summaries, err := db.ListResumes(ctx, owner)
	require.NoError(t, err)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Lovelace Ada - Analyst", summaries[0].Title)
	assert.True(t, !summaries[0].UpdatedAt.Before(summaries[0].CreatedAt))

	require.NoError(t, db.DeleteResume(ctx, owner, id))
	record, err = db.GetResume(ctx, id)
	require.NoError(t, err)
	assert.Nil(t, record)
}

func TestIntegration_OwnerScoping(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	owner := testOwner()
	intruder := testOwner()

	id, err := db.SaveResume(ctx, owner, nil, types.Resume{FirstName: "Ada"})
	require.NoError(t, err)
	defer db.DeleteResume(ctx, owner, id)

	_, err = db.SaveResume(ctx, intruder, &id, types.Resume{FirstName: "Mallory"})
	var notFound *NotFoundError
	require.True(t, errors.As(err, &notFound))

	err = db.DeleteResume(ctx, intruder, id)
	require.True(t, errors.As(err, &notFound))

	_, err = db.SetShare(ctx, intruder, id, true)
	require.True(t, errors.As(err, &notFound))

	summaries, err := db.ListResumes(ctx, intruder)
	require.NoError(t, err)
	assert.Empty(t, summaries)
}

func TestIntegration_Sharing(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()
	owner := testOwner()

	id, err := db.SaveResume(ctx, owner, nil, types.Resume{FirstName: "Ada"})
	require.NoError(t, err)
	defer db.DeleteResume(ctx, owner, id)

	token, err := db.SetShare(ctx, owner, id, true)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	shared, err := db.GetSharedResume(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, shared)
	assert.Equal(t, id, shared.ID)

	off, err := db.SetShare(ctx, owner, id, false)
	require.NoError(t, err)
	assert.Empty(t, off)

	shared, err = db.GetSharedResume(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, shared, "disabled links resolve to nothing")

	again, err := db.SetShare(ctx, owner, id, true)
	require.NoError(t, err)
	assert.Equal(t, token, again, "re-enabling keeps the link")
}

func TestIntegration_MissingResume(t *testing.T) {
	db := setupTestDB(t)
	defer db.Close()
	ctx := context.Background()

	record, err := db.GetResume(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, record)

	shared, err := db.GetSharedResume(ctx, "unknown-token")
	require.NoError(t, err)
	assert.Nil(t, shared)

	err = db.DeleteResume(ctx, testOwner(), uuid.New())
	var notFound *NotFoundError
	assert.True(t, errors.As(err, &notFound))
}
