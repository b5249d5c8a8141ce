package uow

import (
	"context"
	"fmt"

	"accountms/internal/core/domain/user"
)

type FakeUnitOfWorkContext struct {
	UserRepository *user.FakeUserRepository
	WasCommitted   bool
	WasRolledBack  bool
}

func (c *FakeUnitOfWorkContext) Commit(ctx context.Context) error {
	c.WasCommitted = true
	return nil
}

func (c *FakeUnitOfWorkContext) Rollback(ctx context.Context) error {
	if !c.WasCommitted {
		c.WasRolledBack = true
	}
	return nil
}

func (c *FakeUnitOfWorkContext) Users() user.UserRepository {
	return c.UserRepository
}

type FakeUnitOfWork struct {
	Context     *FakeUnitOfWorkContext
	ReturnError bool
}

func NewFakeUnitOfWork() *FakeUnitOfWork {
	return &FakeUnitOfWork{
		Context: &FakeUnitOfWorkContext{UserRepository: user.NewFakeUserRepository()},
	}
}

func (u *FakeUnitOfWork) Begin(ctx context.Context) (Context, error) {
	if u.ReturnError {
		return nil, fmt.Errorf("could not begin unit of work")
	}
	return u.Context, nil
}

func (u *FakeUnitOfWork) Users() *user.FakeUserRepository {
	return u.Context.UserRepository
}
