package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/campus-labs/uni-enroll-api/internal/models"
	appErrors "github.com/campus-labs/uni-enroll-api/pkg/errors"
	"github.com/campus-labs/uni-enroll-api/pkg/ident"
)

func TestStudentServiceRegister(t *testing.T) {
	roster, st := newTestRoster()
	gen := ident.New(&seqSource{values: []int{41}})
	svc := NewStudentService(roster, gen, NewValidator(), zap.NewNop())

	student, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Alice Zhang",
		Email:    "alice@university.com",
		Password: "Abcde123",
	})
	require.NoError(t, err)

	assert.Equal(t, "000042", student.ID)
	assert.Equal(t, "alice@university.com", student.Email)
	assert.Empty(t, student.Enrollments)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(student.PasswordHash), []byte("Abcde123")))
	assert.Equal(t, 1, roster.Len())
	assert.Len(t, st.students, 1)
}

func TestStudentServiceRegisterDuplicateEmail(t *testing.T) {
	roster, _ := newTestRoster(testStudent("123456"))
	svc := NewStudentService(roster, nil, NewValidator(), zap.NewNop())

	_, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Alice Clone",
		Email:    "alice@university.com",
		Password: "Abcde123",
	})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrDuplicateEmail))
	assert.Equal(t, 1, roster.Len())
}

func TestStudentServiceRegisterInvalidEmail(t *testing.T) {
	roster, _ := newTestRoster()
	svc := NewStudentService(roster, nil, NewValidator(), zap.NewNop())

	for _, email := range []string{"alice@gmail.com", "alice@university.org", "@university.com", "alice"} {
		_, err := svc.Register(context.Background(), models.RegisterRequest{
			Name:     "Alice Zhang",
			Email:    email,
			Password: "Abcde123",
		})
		require.Error(t, err, "email %q should be rejected", email)
		assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	}
	assert.Equal(t, 0, roster.Len())
}

func TestStudentServiceRegisterInvalidPassword(t *testing.T) {
	roster, _ := newTestRoster()
	svc := NewStudentService(roster, nil, NewValidator(), zap.NewNop())

	for _, password := range []string{"abcde123", "Abcd123", "Abcdefgh", "Abcde12", "1bcde123"} {
		_, err := svc.Register(context.Background(), models.RegisterRequest{
			Name:     "Alice Zhang",
			Email:    "alice@university.com",
			Password: password,
		})
		require.Error(t, err, "password %q should be rejected", password)
		assert.True(t, appErrors.Is(err, appErrors.ErrValidation))
	}
	assert.Equal(t, 0, roster.Len())
}

func TestStudentServiceGet(t *testing.T) {
	roster, _ := newTestRoster(testStudent("123456"))
	svc := NewStudentService(roster, nil, NewValidator(), zap.NewNop())

	student, err := svc.Get(context.Background(), "123456")
	require.NoError(t, err)
	assert.Equal(t, "Alice Zhang", student.Name)

	_, err = svc.Get(context.Background(), "654321")
	assert.True(t, appErrors.Is(err, appErrors.ErrNotFound))
}

func TestStudentServiceChangePassword(t *testing.T) {
	roster, _ := newTestRoster()
	svc := NewStudentService(roster, nil, NewValidator(), zap.NewNop())

	student, err := svc.Register(context.Background(), models.RegisterRequest{
		Name:     "Alice Zhang",
		Email:    "alice@university.com",
		Password: "Abcde123",
	})
	require.NoError(t, err)

	require.NoError(t, svc.ChangePassword(context.Background(), student.ID, models.ChangePasswordRequest{NewPassword: "Fghij456"}))

	updated, ok := roster.Find(student.ID)
	require.True(t, ok)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("Fghij456")))
	assert.Error(t, bcrypt.CompareHashAndPassword([]byte(updated.PasswordHash), []byte("Abcde123")))
}

func TestStudentServiceChangePasswordInvalidFormat(t *testing.T) {
	roster, _ := newTestRoster(testStudent("123456"))
	svc := NewStudentService(roster, nil, NewValidator(), zap.NewNop())

	err := svc.ChangePassword(context.Background(), "123456", models.ChangePasswordRequest{NewPassword: "weak"})
	require.Error(t, err)
	assert.True(t, appErrors.Is(err, appErrors.ErrValidation))

	unchanged, ok := roster.Find("123456")
	require.True(t, ok)
	assert.Equal(t, testStudent("123456").PasswordHash, unchanged.PasswordHash)
}
