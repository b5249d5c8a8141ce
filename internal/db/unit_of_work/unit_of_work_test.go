package uow

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	c "accountms/internal/core/domain/common"
	"accountms/internal/core/domain/user"
	"accountms/internal/db"
	dbuser "accountms/internal/db/user"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/stretchr/testify/suite"
)

var NOW time.Time = time.Date(2023, 6, 6, 15, 30, 30, 0, time.UTC)

type testSuite struct {
	suite.Suite
	pool *pgxpool.Pool
	uow  *PgxUnitOfWork
	repo *dbuser.PgxUserRepository
}

func (suite *testSuite) SetupSuite() {
	if db.TestDatabaseURL() == "" {
		suite.T().Skip("TEST_POSTGRESQL_URL is not set.")
	}
	suite.pool = db.CreateTestPool()
	suite.uow = NewPgxUnitOfWork(suite.pool)
	suite.repo = dbuser.NewPgxRepository(suite.pool)
}

func (suite *testSuite) TearDownSuite() {
	if suite.pool != nil {
		suite.pool.Close()
	}
}

func (suite *testSuite) TearDownTest() {
	db.TruncateTables(suite.pool)
}

func TestPgxUnitOfWork(t *testing.T) {
	suite.Run(t, new(testSuite))
}

func (s *testSuite) TestRollbackDiscardsCreatedUser() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().NoError(err)

	_, err = uow.Users().Create(ctx, user.CreateUserInput{
		Username:     "test-user",
		Email:        c.Email("test@test.test"),
		PasswordHash: user.PasswordHash("test"),
		Role:         user.RoleUser,
		CreatedAt:    NOW,
		IsActive:     true,
	})
	s.Require().NoError(err)
	s.Require().NoError(uow.Rollback(ctx))

	users, err := s.repo.List(ctx)
	s.Require().NoError(err)
	s.Require().Len(users, 0)
}

func (s *testSuite) TestCommitPersistsCreatedUser() {
	ctx := context.Background()
	uow, err := s.uow.Begin(ctx)
	s.Require().NoError(err)
	defer uow.Rollback(ctx)

	created, err := uow.Users().Create(ctx, user.CreateUserInput{
		Username:     "test-user",
		Email:        c.Email("test@test.test"),
		PasswordHash: user.PasswordHash("test"),
		Role:         user.RoleUser,
		CreatedAt:    NOW,
		IsActive:     true,
	})
	s.Require().NoError(err)
	s.Require().NoError(uow.Commit(ctx))

	u, err := s.repo.GetByID(ctx, created.ID)
	s.Require().NoError(err)
	s.Require().Equal(created.Username, u.Username)
}

func (s *testSuite) TestConcurrentResetTokenConsumptionHasOneWinner() {
	ctx := context.Background()
	created := s.createUserWithResetToken()

	var wg sync.WaitGroup
	wg.Add(2)
	errs := make([]error, 2)
	for i := 0; i < 2; i++ {
		go func(i int) {
			defer wg.Done()
			errs[i] = s.repo.ConsumePasswordResetToken(ctx, user.ConsumePasswordResetTokenInput{
				UserID:          created.ID,
				NewPasswordHash: user.PasswordHash("new-hash"),
			})
		}(i)
	}
	wg.Wait()

	succeeded := 0
	for _, err := range errs {
		if err == nil {
			succeeded++
			continue
		}
		s.Require().True(errors.Is(err, user.ErrResetTokenAlreadyUsed))
	}
	s.Require().Equal(1, succeeded)
}

func (s *testSuite) createUserWithResetToken() user.User {
	s.T().Helper()

	ctx := context.Background()
	created, err := s.repo.Create(ctx, user.CreateUserInput{
		Username:     "test-user",
		Email:        c.Email("test@test.test"),
		PasswordHash: user.PasswordHash("test"),
		Role:         user.RoleUser,
		CreatedAt:    NOW,
		IsActive:     true,
	})
	s.Require().NoError(err)
	s.Require().NoError(s.repo.SetPasswordResetToken(ctx, user.SetPasswordResetTokenInput{
		UserID:    created.ID,
		Token:     user.PasswordResetToken("test-reset-token"),
		ExpiresAt: NOW.Add(time.Hour),
	}))
	return created
}
