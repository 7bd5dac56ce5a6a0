package mongo

import (
	"context"
	"errors"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"

	"github.com/ferreteria-epa/backoffice/internal/core/domain"
)

func TestAccountDirectory_FindByEmail(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("found", func(mt *mtest.T) {
		id := primitive.NewObjectID()
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "backoffice.employees", mtest.FirstBatch, bson.D{
			{Key: "_id", Value: id},
			{Key: "name", Value: "Ana"},
			{Key: "email", Value: "ana@ferre.com"},
			{Key: "password", Value: "$2a$10$hash"},
		}))

		acc, err := NewEmployeeDirectory(mt.DB).FindByEmail(context.Background(), "ana@ferre.com")
		if err != nil {
			mt.Fatalf("find failed: %v", err)
		}
		if acc.ID != id.Hex() || acc.Email != "ana@ferre.com" || acc.PasswordHash != "$2a$10$hash" {
			mt.Fatalf("unexpected account: %+v", acc)
		}
	})

	mt.Run("not found", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "backoffice.customers", mtest.FirstBatch))

		_, err := NewCustomerDirectory(mt.DB).FindByEmail(context.Background(), "ghost@mail.com")
		if !errors.Is(err, domain.ErrPrincipalNotFound) {
			mt.Fatalf("expected ErrPrincipalNotFound, got %v", err)
		}
	})

	mt.Run("server error", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    2,
			Message: "bad query",
		}))

		_, err := NewCustomerDirectory(mt.DB).FindByEmail(context.Background(), "x@mail.com")
		if err == nil || errors.Is(err, domain.ErrPrincipalNotFound) {
			mt.Fatalf("expected infrastructure error, got %v", err)
		}
	})
}

func TestAccountDirectory_Create(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("success", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())

		acc, err := NewCustomerDirectory(mt.DB).Create(context.Background(), &domain.Account{
			Name:         "Luis",
			Email:        "luis@mail.com",
			PasswordHash: "$2a$10$hash",
			CreatedAt:    time.Now().UTC(),
		})
		if err != nil {
			mt.Fatalf("create failed: %v", err)
		}
		if acc.ID == "" || acc.ID == primitive.NilObjectID.Hex() {
			mt.Fatalf("expected generated id, got %q", acc.ID)
		}
	})

	mt.Run("duplicate email", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateWriteErrorsResponse(mtest.WriteError{
			Index:   0,
			Code:    11000,
			Message: "E11000 duplicate key error",
		}))

		_, err := NewEmployeeDirectory(mt.DB).Create(context.Background(), &domain.Account{Email: "ana@ferre.com"})
		if !errors.Is(err, domain.ErrEmailTaken) {
			mt.Fatalf("expected ErrEmailTaken, got %v", err)
		}
	})
}

func TestAccountDirectory_List(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("two accounts", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCursorResponse(0, "backoffice.customers", mtest.FirstBatch,
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "a@mail.com"}},
			bson.D{{Key: "_id", Value: primitive.NewObjectID()}, {Key: "email", Value: "b@mail.com"}},
		))

		accounts, err := NewCustomerDirectory(mt.DB).List(context.Background())
		if err != nil {
			mt.Fatalf("list failed: %v", err)
		}
		if len(accounts) != 2 || accounts[0].Email != "a@mail.com" {
			mt.Fatalf("unexpected accounts: %+v", accounts)
		}
	})
}
