package services

import (
	"context"
	"testing"

	"github.com/dmitrijs2005/bookshelf/internal/common"
	"github.com/dmitrijs2005/bookshelf/internal/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBookService_OwnershipIsolation(t *testing.T) {
	db, m := openStore(t)
	us := newUserService(t, db, m)
	bs := NewBookService(db, m)
	ctx := context.Background()

	a, err := us.Register(ctx, "alice", "secret123")
	require.NoError(t, err)
	b, err := us.Register(ctx, "bob", "secret123")
	require.NoError(t, err)

	book, err := bs.Create(ctx, a, "1984", "Orwell")
	require.NoError(t, err)
	assert.Equal(t, a.ID, book.OwnerID)

	list, err := bs.List(ctx, b)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = bs.Update(ctx, b, book.ID, "Hijacked", "Mallory")
	require.ErrorIs(t, err, common.ErrorNotFound)
	require.ErrorIs(t, bs.Delete(ctx, b, book.ID), common.ErrorNotFound)

	// a foreign book and a missing book look the same
	_, err = bs.Update(ctx, b, book.ID+1000, "x", "y")
	require.ErrorIs(t, err, common.ErrorNotFound)

	updated, err := bs.Update(ctx, a, book.ID, "Animal Farm", "Orwell")
	require.NoError(t, err)
	assert.Equal(t, &models.Book{ID: book.ID, Title: "Animal Farm", Author: "Orwell", OwnerID: a.ID}, updated)

	list, err = bs.List(ctx, a)
	require.NoError(t, err)
	assert.Equal(t, []*models.Book{updated}, list)

	require.NoError(t, bs.Delete(ctx, a, book.ID))
	list, err = bs.List(ctx, a)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestBookService_ListCreationOrder(t *testing.T) {
	db, m := openStore(t)
	bs := NewBookService(db, m)
	ctx := context.Background()

	owner, err := newUserService(t, db, m).Register(ctx, "alice", "secret123")
	require.NoError(t, err)

	var titles []string
	for _, title := range []string{"C", "A", "B"} {
		_, err := bs.Create(ctx, owner, title, "Anon")
		require.NoError(t, err)
		titles = append(titles, title)
	}

	list, err := bs.List(ctx, owner)
	require.NoError(t, err)
	var got []string
	for _, b := range list {
		got = append(got, b.Title)
	}
	assert.Equal(t, titles, got)
}

func TestBookService_Validation(t *testing.T) {
	bs := NewBookService(nil, &fakeRepoManager{})
	owner := &models.User{ID: 1}
	ctx := context.Background()

	_, err := bs.Create(ctx, owner, " ", "Orwell")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = bs.Create(ctx, owner, "1984", "")
	require.ErrorIs(t, err, common.ErrorValidation)

	_, err = bs.Update(ctx, owner, 0, "1984", "Orwell")
	require.ErrorIs(t, err, common.ErrorValidation)

	require.ErrorIs(t, bs.Delete(ctx, owner, -3), common.ErrorValidation)
}
