package user_test

import (
	"context"
	"testing"
	"time"

	jwtlib "github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"foodgram/domain"
	"foodgram/entities"
	"foodgram/pkg/jwt"
	"foodgram/pkg/user"
)

// ---- mock UserRepository ---------------------------------------------------

type mockUserRepository struct {
	createUser        func(ctx context.Context, u *entities.User) error
	getUserByID       func(ctx context.Context, id string) (*entities.User, error)
	getUserByEmail    func(ctx context.Context, email string) (*entities.User, error)
	getUserByUsername func(ctx context.Context, username string) (*entities.User, error)
	updateUser        func(ctx context.Context, u *entities.User) error

	createSubscription   func(ctx context.Context, userID, authorID string) error
	deleteSubscription   func(ctx context.Context, userID, authorID string) error
	isSubscribed         func(ctx context.Context, userID, authorID string) (bool, error)
	getSubscriptions     func(ctx context.Context, userID string, page, limit int) ([]*entities.Subscription, int64, error)
	countRecipesByAuthor func(ctx context.Context, authorID string) (int64, error)
	getRecipesByAuthor   func(ctx context.Context, authorID string) ([]*entities.Recipe, error)
}

func (m *mockUserRepository) CreateUser(ctx context.Context, u *entities.User) error {
	return m.createUser(ctx, u)
}

func (m *mockUserRepository) GetUserByID(ctx context.Context, id string) (*entities.User, error) {
	return m.getUserByID(ctx, id)
}

func (m *mockUserRepository) GetUserByEmail(ctx context.Context, email string) (*entities.User, error) {
	return m.getUserByEmail(ctx, email)
}

func (m *mockUserRepository) GetUserByUsername(ctx context.Context, username string) (*entities.User, error) {
	return m.getUserByUsername(ctx, username)
}

func (m *mockUserRepository) UpdateUser(ctx context.Context, u *entities.User) error {
	return m.updateUser(ctx, u)
}

func (m *mockUserRepository) CreateSubscription(ctx context.Context, userID, authorID string) error {
	return m.createSubscription(ctx, userID, authorID)
}

func (m *mockUserRepository) DeleteSubscription(ctx context.Context, userID, authorID string) error {
	return m.deleteSubscription(ctx, userID, authorID)
}

func (m *mockUserRepository) IsSubscribed(ctx context.Context, userID, authorID string) (bool, error) {
	return m.isSubscribed(ctx, userID, authorID)
}

func (m *mockUserRepository) GetSubscriptions(ctx context.Context, userID string, page, limit int) ([]*entities.Subscription, int64, error) {
	return m.getSubscriptions(ctx, userID, page, limit)
}

func (m *mockUserRepository) CountRecipesByAuthor(ctx context.Context, authorID string) (int64, error) {
	return m.countRecipesByAuthor(ctx, authorID)
}

func (m *mockUserRepository) GetRecipesByAuthor(ctx context.Context, authorID string) ([]*entities.Recipe, error) {
	return m.getRecipesByAuthor(ctx, authorID)
}

var _ user.UserRepository = (*mockUserRepository)(nil)

// ---- mock JWTService -------------------------------------------------------

type mockJWTService struct{}

func (m *mockJWTService) GenerateTokenUser(string, string) string { return "token" }

func (m *mockJWTService) ValidateTokenUser(string) (*jwtlib.Token, error) { panic("not used") }

func (m *mockJWTService) GetUserIDByToken(string) (string, string, error) { panic("not used") }

func (m *mockJWTService) GenerateTokenForgetPassword(map[string]any, time.Duration) (string, error) {
	return "forget-token", nil
}

func (m *mockJWTService) ValidateTokenForgetPassword(string) (jwtlib.MapClaims, error) {
	panic("not used")
}

var _ jwt.JWTService = (*mockJWTService)(nil)

// ---- register / login ------------------------------------------------------

func registerRequest() domain.RegisterRequest {
	return domain.RegisterRequest{
		Email:     "cook@example.com",
		Username:  "cook",
		FirstName: "Ann",
		LastName:  "Cook",
		Password:  "hunter22",
	}
}

func TestRegister_HashesPassword(t *testing.T) {
	var created *entities.User
	repo := &mockUserRepository{
		getUserByEmail: func(context.Context, string) (*entities.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		getUserByUsername: func(context.Context, string) (*entities.User, error) {
			return nil, gorm.ErrRecordNotFound
		},
		createUser: func(_ context.Context, u *entities.User) error {
			created = u
			return nil
		},
	}
	svc := user.NewUserService(repo, &mockJWTService{})

	res, err := svc.Register(context.Background(), registerRequest())
	require.NoError(t, err)

	require.NotNil(t, created)
	assert.NotEqual(t, "hunter22", created.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(created.Password), []byte("hunter22")))
	assert.Equal(t, "cook@example.com", res.Email)
}

func TestRegister_DuplicateEmail(t *testing.T) {
	repo := &mockUserRepository{
		getUserByEmail: func(context.Context, string) (*entities.User, error) {
			return &entities.User{ID: uuid.New()}, nil
		},
	}
	svc := user.NewUserService(repo, &mockJWTService{})

	_, err := svc.Register(context.Background(), registerRequest())
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_WrongPassword(t *testing.T) {
	hashed, err := bcrypt.GenerateFromPassword([]byte("correct"), bcrypt.DefaultCost)
	require.NoError(t, err)

	repo := &mockUserRepository{
		getUserByEmail: func(context.Context, string) (*entities.User, error) {
			return &entities.User{ID: uuid.New(), Password: string(hashed)}, nil
		},
	}
	svc := user.NewUserService(repo, &mockJWTService{})

	_, err = svc.Login(context.Background(), domain.LoginRequest{
		Email:    "cook@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, domain.ErrWrongCredentials)
}

// ---- subscriptions ---------------------------------------------------------

func TestSubscribe_RejectsSelf(t *testing.T) {
	id := uuid.NewString()
	repo := &mockUserRepository{
		getUserByID: func(context.Context, string) (*entities.User, error) {
			panic("lookup must not be reached")
		},
	}
	svc := user.NewUserService(repo, &mockJWTService{})

	_, err := svc.Subscribe(context.Background(), id, id)
	assert.ErrorIs(t, err, domain.ErrSelfSubscription)
}

func TestSubscribe_Duplicate(t *testing.T) {
	author := &entities.User{ID: uuid.New(), Username: "author"}
	repo := &mockUserRepository{
		getUserByID: func(context.Context, string) (*entities.User, error) {
			return author, nil
		},
		createSubscription: func(context.Context, string, string) error {
			return domain.ErrAlreadySubscribed
		},
	}
	svc := user.NewUserService(repo, &mockJWTService{})

	_, err := svc.Subscribe(context.Background(), uuid.NewString(), author.ID.String())
	assert.ErrorIs(t, err, domain.ErrAlreadySubscribed)
}

func TestUnsubscribe_MissingSubscription(t *testing.T) {
	author := &entities.User{ID: uuid.New()}
	repo := &mockUserRepository{
		getUserByID: func(context.Context, string) (*entities.User, error) {
			return author, nil
		},
		deleteSubscription: func(context.Context, string, string) error {
			return domain.ErrSubscriptionNotFound
		},
	}
	svc := user.NewUserService(repo, &mockJWTService{})

	err := svc.Unsubscribe(context.Background(), uuid.NewString(), author.ID.String())
	assert.ErrorIs(t, err, domain.ErrSubscriptionNotFound)
}
