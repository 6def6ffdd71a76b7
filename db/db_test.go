package db

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"

	"github.com/fabiorvs/controleConta/models"
)

// StorageTestSuite provides a test suite for database operations.
type StorageTestSuite struct {
	suite.Suite
	storage *Storage
}

// SetupTest runs before each test.
func (suite *StorageTestSuite) SetupTest() {
	storage, err := NewStorage(":memory:")
	require.NoError(suite.T(), err, "failed to create test database")
	suite.storage = storage
}

// TearDownTest runs after each test.
func (suite *StorageTestSuite) TearDownTest() {
	if suite.storage != nil {
		suite.storage.Close()
	}
}

func (suite *StorageTestSuite) createUser(username, email string) *models.User {
	user, err := suite.storage.CreateUser(username, email, "$2a$10$fakehashfakehashfakehash", 100)
	require.NoError(suite.T(), err, "failed to create user %s", username)
	return user
}

func (suite *StorageTestSuite) TestCreateAndGetUser() {
	user := suite.createUser("ana", "a@x.com")
	assert.NotZero(suite.T(), user.ID)
	assert.Equal(suite.T(), "ana", user.Username)
	assert.Equal(suite.T(), "a@x.com", user.Email)
	assert.Equal(suite.T(), 100.0, user.InitialBalance)
	assert.False(suite.T(), user.CreatedAt.IsZero())
	assert.Nil(suite.T(), user.LastLogin)

	byUsername, err := suite.storage.GetUserByLogin("ana")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), byUsername)
	assert.Equal(suite.T(), user.ID, byUsername.ID)

	byEmail, err := suite.storage.GetUserByLogin("a@x.com")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), byEmail)
	assert.Equal(suite.T(), user.ID, byEmail.ID)

	missing, err := suite.storage.GetUserByLogin("nobody")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), missing)
}

func (suite *StorageTestSuite) TestDuplicateUser() {
	suite.createUser("ana", "a@x.com")

	_, err := suite.storage.CreateUser("ana", "other@x.com", "hash", 0)
	assert.ErrorIs(suite.T(), err, ErrDuplicate, "duplicate username must be rejected")

	_, err = suite.storage.CreateUser("other", "a@x.com", "hash", 0)
	assert.ErrorIs(suite.T(), err, ErrDuplicate, "duplicate email must be rejected")
}

func (suite *StorageTestSuite) TestUpdateLastLogin() {
	user := suite.createUser("ana", "a@x.com")

	at := time.Now().Truncate(time.Second)
	require.NoError(suite.T(), suite.storage.UpdateLastLogin(user.ID, at))

	fetched, err := suite.storage.GetUserByID(user.ID)
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), fetched.LastLogin)
	assert.WithinDuration(suite.T(), at, *fetched.LastLogin, time.Second)
}

func (suite *StorageTestSuite) TestUpdateInitialBalance() {
	user := suite.createUser("ana", "a@x.com")
	require.NoError(suite.T(), suite.storage.UpdateInitialBalance(user.ID, 250.75))

	fetched, err := suite.storage.GetUserByID(user.ID)
	require.NoError(suite.T(), err)
	assert.Equal(suite.T(), 250.75, fetched.InitialBalance)
}

func (suite *StorageTestSuite) TestTransactionsOrderedAndScoped() {
	ana := suite.createUser("ana", "a@x.com")
	bob := suite.createUser("bob", "b@x.com")

	now := time.Now()
	for i, tx := range []models.Transaction{
		{UserID: ana.ID, Type: models.TypeIncome, Amount: 100.50, Date: now.Add(-2 * time.Hour)},
		{UserID: ana.ID, Type: models.TypeExpense, Amount: 200.75, Comment: "rent", Date: now.Add(-1 * time.Hour)},
		{UserID: ana.ID, Type: models.TypeIncome, Amount: 300.00, Category: "salary", Date: now},
	} {
		tx := tx
		require.NoError(suite.T(), suite.storage.CreateTransaction(&tx), "transaction %d", i)
		assert.NotZero(suite.T(), tx.ID)
	}

	transactions, err := suite.storage.GetTransactions(ana.ID)
	require.NoError(suite.T(), err)
	require.Len(suite.T(), transactions, 3)

	// Most recent first.
	assert.Equal(suite.T(), 300.00, transactions[0].Amount)
	assert.Equal(suite.T(), 200.75, transactions[1].Amount)
	assert.Equal(suite.T(), 100.50, transactions[2].Amount)
	assert.Equal(suite.T(), "rent", transactions[1].Comment)
	assert.Equal(suite.T(), "salary", transactions[0].Category)

	// The other user sees none of them; an empty list is not an error.
	theirs, err := suite.storage.GetTransactions(bob.ID)
	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), theirs)
	assert.Empty(suite.T(), theirs)
}

func (suite *StorageTestSuite) TestDeleteTransactionScopedToOwner() {
	ana := suite.createUser("ana", "a@x.com")
	bob := suite.createUser("bob", "b@x.com")

	tx := models.Transaction{UserID: ana.ID, Type: models.TypeExpense, Amount: 42}
	require.NoError(suite.T(), suite.storage.CreateTransaction(&tx))

	// Another user cannot delete it.
	deleted, err := suite.storage.DeleteTransaction(tx.ID, bob.ID)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)

	remaining, err := suite.storage.GetTransactions(ana.ID)
	require.NoError(suite.T(), err)
	assert.Len(suite.T(), remaining, 1, "transaction must survive a foreign delete")

	// The owner can.
	deleted, err = suite.storage.DeleteTransaction(tx.ID, ana.ID)
	require.NoError(suite.T(), err)
	assert.True(suite.T(), deleted)

	remaining, err = suite.storage.GetTransactions(ana.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), remaining)

	// Deleting again is not an error.
	deleted, err = suite.storage.DeleteTransaction(tx.ID, ana.ID)
	require.NoError(suite.T(), err)
	assert.False(suite.T(), deleted)
}

func (suite *StorageTestSuite) TestRefreshTokenLifecycle() {
	user := suite.createUser("ana", "a@x.com")

	expiresAt := time.Now().Add(24 * time.Hour)
	require.NoError(suite.T(), suite.storage.CreateRefreshToken(user.ID, "token-1", expiresAt))

	err := suite.storage.CreateRefreshToken(user.ID, "token-1", expiresAt)
	assert.ErrorIs(suite.T(), err, ErrDuplicate, "token strings are unique")

	stored, err := suite.storage.GetRefreshToken("token-1")
	require.NoError(suite.T(), err)
	require.NotNil(suite.T(), stored)
	assert.Equal(suite.T(), user.ID, stored.UserID)
	assert.WithinDuration(suite.T(), expiresAt, stored.ExpiresAt, time.Second)

	missing, err := suite.storage.GetRefreshToken("never-issued")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), missing)

	require.NoError(suite.T(), suite.storage.DeleteRefreshToken("token-1"))
	gone, err := suite.storage.GetRefreshToken("token-1")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), gone)

	// Idempotent.
	require.NoError(suite.T(), suite.storage.DeleteRefreshToken("token-1"))
}

func (suite *StorageTestSuite) TestDeleteExpiredRefreshTokens() {
	user := suite.createUser("ana", "a@x.com")

	now := time.Now()
	require.NoError(suite.T(), suite.storage.CreateRefreshToken(user.ID, "expired", now.Add(-time.Hour)))
	require.NoError(suite.T(), suite.storage.CreateRefreshToken(user.ID, "valid", now.Add(time.Hour)))

	n, err := suite.storage.DeleteExpiredRefreshTokens(now)
	require.NoError(suite.T(), err)
	assert.EqualValues(suite.T(), 1, n)

	expired, err := suite.storage.GetRefreshToken("expired")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), expired)

	valid, err := suite.storage.GetRefreshToken("valid")
	require.NoError(suite.T(), err)
	assert.NotNil(suite.T(), valid)
}

func (suite *StorageTestSuite) TestCascadeDeleteWithUser() {
	user := suite.createUser("ana", "a@x.com")

	tx := models.Transaction{UserID: user.ID, Type: models.TypeIncome, Amount: 10}
	require.NoError(suite.T(), suite.storage.CreateTransaction(&tx))
	require.NoError(suite.T(), suite.storage.CreateRefreshToken(user.ID, "token", time.Now().Add(time.Hour)))

	_, err := suite.storage.DB.Exec("DELETE FROM users WHERE id = ?", user.ID)
	require.NoError(suite.T(), err)

	transactions, err := suite.storage.GetTransactions(user.ID)
	require.NoError(suite.T(), err)
	assert.Empty(suite.T(), transactions)

	token, err := suite.storage.GetRefreshToken("token")
	require.NoError(suite.T(), err)
	assert.Nil(suite.T(), token)
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageTestSuite))
}
