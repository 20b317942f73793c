package account_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/Dev-MiMi/expensetracker/internal/account"
	"github.com/Dev-MiMi/expensetracker/internal/validation"
)

func TestService_Create(t *testing.T) {
	ownerID := uuid.New()

	type testCase struct {
		name      string
		params    account.CreateParams
		setupMock func(m *account.MockRepository)
		wantErr   error
		wantField string
	}

	tests := []testCase{
		{
			name: "Success",
			params: account.CreateParams{
				Name:     "Main checking",
				Number:   "PT50-0001",
				Type:     account.TypeCurrent,
				Currency: "eur",
				Balance:  decimal.RequireFromString("50.00"),
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, a *account.Account) error {
						a.ID = uuid.New()
						return nil
					})
			},
		},
		{
			name: "MissingName",
			params: account.CreateParams{
				Name:     "  ",
				Type:     account.TypeCash,
				Currency: "EUR",
			},
			wantField: "name",
		},
		{
			name: "BadCurrency",
			params: account.CreateParams{
				Name:     "Wallet",
				Type:     account.TypeCash,
				Currency: "EURO",
			},
			wantField: "currency",
		},
		{
			name: "BadType",
			params: account.CreateParams{
				Name:     "Wallet",
				Type:     account.Type("Piggy bank"),
				Currency: "EUR",
			},
			wantField: "account_type",
		},
		{
			name: "DuplicateName",
			params: account.CreateParams{
				Name:     "Main checking",
				Type:     account.TypeCurrent,
				Currency: "EUR",
			},
			setupMock: func(m *account.MockRepository) {
				m.EXPECT().
					CreateAccount(gomock.Any(), gomock.Any()).
					Return(account.ErrNameTaken)
			},
			wantErr: account.ErrNameTaken,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()

			repo := account.NewMockRepository(ctrl)
			if tt.setupMock != nil {
				tt.setupMock(repo)
			}

			svc := account.NewService(repo)
			got, err := svc.Create(context.Background(), ownerID, tt.params)

			if tt.wantField != "" {
				var vErr *validation.Error
				require.ErrorAs(t, err, &vErr)
				assert.Equal(t, tt.wantField, vErr.Field)
				assert.Nil(t, got)

				return
			}

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)

				return
			}

			require.NoError(t, err)
			require.NotNil(t, got)
			assert.Equal(t, ownerID, got.OwnerID)
			assert.Equal(t, "EUR", got.Currency)
			assert.True(t, got.IsActive)
			assert.NotEmpty(t, got.ID)
		})
	}
}

func TestService_Update(t *testing.T) {
	ownerID := uuid.New()
	id := uuid.New()

	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		GetAccount(gomock.Any(), ownerID, id).
		Return(&account.Account{
			ID:       id,
			OwnerID:  ownerID,
			Name:     "Old name",
			Type:     account.TypeCash,
			Currency: "EUR",
			Balance:  decimal.RequireFromString("10.00"),
			IsActive: true,
		}, nil)
	repo.EXPECT().
		UpdateAccount(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, a *account.Account) error {
			assert.Equal(t, "New name", a.Name)
			assert.False(t, a.IsActive)
			// Balance must ride along untouched.
			assert.True(t, a.Balance.Equal(decimal.RequireFromString("10.00")))
			return nil
		})

	svc := account.NewService(repo)

	name := "New name"
	active := false

	got, err := svc.Update(context.Background(), ownerID, id, account.UpdateParams{
		Name:     &name,
		IsActive: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, "New name", got.Name)
}

func TestService_Update_NotFound(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		GetAccount(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, account.ErrNotFound)

	svc := account.NewService(repo)

	_, err := svc.Update(context.Background(), uuid.New(), uuid.New(), account.UpdateParams{})
	assert.ErrorIs(t, err, account.ErrNotFound)
}

func TestService_Delete_InUse(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	repo := account.NewMockRepository(ctrl)
	repo.EXPECT().
		DeleteAccount(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(account.ErrInUse)

	svc := account.NewService(repo)

	err := svc.Delete(context.Background(), uuid.New(), uuid.New())
	assert.ErrorIs(t, err, account.ErrInUse)
}
