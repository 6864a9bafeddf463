package service_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"goodVibes/internal/auth"
	"goodVibes/internal/repository/inmemory"
	"goodVibes/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockTokenStore - мок хранилища токенов
type MockTokenStore struct {
	mock.Mock
}

var _ service.TokenStore = (*MockTokenStore)(nil)

func (m *MockTokenStore) Create(ctx context.Context, username string) (string, error) {
	args := m.Called(ctx, username)
	return args.String(0), args.Error(1)
}

func (m *MockTokenStore) Lookup(ctx context.Context, token string) (string, bool, error) {
	args := m.Called(ctx, token)
	return args.String(0), args.Bool(1), args.Error(2)
}

func (m *MockTokenStore) Delete(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func TestAuthService_LoginFlow(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	store := inmemory.New()
	calendars := service.NewCalendarService(store, nil)
	svc := service.NewAuthService(map[string]string{testUser: hash}, auth.NewMemoryStore(time.Hour), calendars)

	token, err := svc.Login(ctx, testUser, "s3cret")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	created, err := store.ListCalendars(ctx, testUser)
	require.NoError(t, err)
	assert.Len(t, created, 2, "при первом входе создаются стандартные календари")

	user, err := svc.Authenticate(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, testUser, user.Username)

	require.NoError(t, svc.Logout(ctx, token))
	_, err = svc.Authenticate(ctx, token)
	assertCode(t, err, service.CodeUnauthorized)
}

// TestAuthService_Login тестирует отказы при входе
func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	hash, err := auth.HashPassword("s3cret")
	require.NoError(t, err)

	tests := []struct {
		name        string
		username    string
		password    string
		setupMock   func(*MockTokenStore)
		errorCode   string
		expectError bool
	}{
		{
			name:     "success",
			username: testUser,
			password: "s3cret",
			setupMock: func(m *MockTokenStore) {
				m.On("Create", mock.Anything, testUser).Return("tok", nil)
			},
		},
		{
			name:        "wrong password",
			username:    testUser,
			password:    "nope",
			setupMock:   func(*MockTokenStore) {},
			expectError: true,
			errorCode:   service.CodeUnauthorized,
		},
		{
			name:        "unknown user",
			username:    "ghost",
			password:    "s3cret",
			setupMock:   func(*MockTokenStore) {},
			expectError: true,
			errorCode:   service.CodeUnauthorized,
		},
		{
			name:     "token store failure",
			username: testUser,
			password: "s3cret",
			setupMock: func(m *MockTokenStore) {
				m.On("Create", mock.Anything, testUser).Return("", errors.New("redis down"))
			},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(MockTokenStore)
			tt.setupMock(tokens)
			svc := service.NewAuthService(map[string]string{testUser: hash}, tokens, nil)

			token, err := svc.Login(ctx, tt.username, tt.password)
			if tt.expectError {
				require.Error(t, err)
				assert.Empty(t, token)
				if tt.errorCode != "" {
					assertCode(t, err, tt.errorCode)
				}
			} else {
				require.NoError(t, err)
				assert.Equal(t, "tok", token)
			}
			tokens.AssertExpectations(t)
		})
	}
}

func TestAuthService_Authenticate(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name      string
		token     string
		setupMock func(*MockTokenStore)
		errorCode string
	}{
		{name: "empty token", token: "", setupMock: func(*MockTokenStore) {}, errorCode: service.CodeUnauthorized},
		{
			name:  "expired token",
			token: "old",
			setupMock: func(m *MockTokenStore) {
				m.On("Lookup", mock.Anything, "old").Return("", false, nil)
			},
			errorCode: service.CodeUnauthorized,
		},
		{
			name:  "user removed from config",
			token: "orphan",
			setupMock: func(m *MockTokenStore) {
				m.On("Lookup", mock.Anything, "orphan").Return("bob", true, nil)
			},
			errorCode: service.CodeUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens := new(MockTokenStore)
			tt.setupMock(tokens)
			svc := service.NewAuthService(map[string]string{testUser: "hash"}, tokens, nil)

			_, err := svc.Authenticate(ctx, tt.token)
			assertCode(t, err, tt.errorCode)
			tokens.AssertExpectations(t)
		})
	}

	t.Run("store failure is not unauthorized", func(t *testing.T) {
		tokens := new(MockTokenStore)
		tokens.On("Lookup", mock.Anything, "tok").Return("", false, errors.New("redis down"))
		svc := service.NewAuthService(map[string]string{testUser: "hash"}, tokens, nil)

		_, err := svc.Authenticate(ctx, "tok")
		require.Error(t, err)
		assert.False(t, service.IsCode(err, service.CodeUnauthorized))
	})
}
