package command

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"testing"

	"github.com/tastebook/tastebook/internal/user/domain"
	"github.com/tastebook/tastebook/pkg/apperrors"
	"github.com/tastebook/tastebook/pkg/auth"
	"github.com/tastebook/tastebook/pkg/imagestore"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1}
}

func (f *fakeUserRepo) Create(user *domain.User) error {
	user.ID = f.nextID
	f.nextID++
	f.users[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	user, ok := f.users[id]
	if !ok {
		return nil, apperrors.NotFoundf("user %d", id)
	}
	return user, nil
}

func (f *fakeUserRepo) FindByIDs(ids []uint) ([]domain.User, error) {
	var out []domain.User
	for _, id := range ids {
		if user, ok := f.users[id]; ok {
			out = append(out, *user)
		}
	}
	return out, nil
}

func (f *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Email == email {
			return user, nil
		}
	}
	return nil, apperrors.NotFoundf("user with email %q", email)
}

func (f *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, user := range f.users {
		if user.Username == username {
			return user, nil
		}
	}
	return nil, apperrors.NotFoundf("user %q", username)
}

func (f *fakeUserRepo) FindAll(limit, offset int) ([]domain.User, error) {
	var out []domain.User
	for _, user := range f.users {
		out = append(out, *user)
	}
	return out, nil
}

func (f *fakeUserRepo) Update(user *domain.User) error {
	f.users[user.ID] = user
	return nil
}

func validRegisterCommand() RegisterUserCommand {
	return RegisterUserCommand{
		Username:  "chef",
		Email:     "chef@example.com",
		Password:  "kitchen-pass",
		FirstName: "Gordon",
		LastName:  "Crumb",
	}
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(validRegisterCommand())
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if user.ID == 0 {
		t.Error("user should get an ID on create")
	}
	if user.Password == "kitchen-pass" {
		t.Error("password must be stored hashed")
	}
	if !auth.CheckPassword("kitchen-pass", user.Password) {
		t.Error("stored hash should verify the original password")
	}
}

func TestRegisterUserValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*RegisterUserCommand)
	}{
		{"missing username", func(c *RegisterUserCommand) { c.Username = "" }},
		{"missing email", func(c *RegisterUserCommand) { c.Email = "" }},
		{"missing password", func(c *RegisterUserCommand) { c.Password = "" }},
		{"short password", func(c *RegisterUserCommand) { c.Password = "abc" }},
		{"missing first name", func(c *RegisterUserCommand) { c.FirstName = "" }},
		{"missing last name", func(c *RegisterUserCommand) { c.LastName = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakeUserRepo()
			cmd := validRegisterCommand()
			tt.mutate(&cmd)

			_, err := NewRegisterUserHandler(repo).Handle(cmd)
			if !apperrors.IsValidation(err) {
				t.Fatalf("expected validation error, got %v", err)
			}
			if len(repo.users) != 0 {
				t.Error("nothing should be persisted on validation failure")
			}
		})
	}
}

func TestRegisterUserDuplicates(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)
	if _, err := handler.Handle(validRegisterCommand()); err != nil {
		t.Fatalf("first register: %v", err)
	}

	dup := validRegisterCommand()
	dup.Email = "other@example.com"
	if _, err := handler.Handle(dup); !apperrors.IsConflict(err) {
		t.Errorf("duplicate username should conflict, got %v", err)
	}

	dup = validRegisterCommand()
	dup.Username = "other"
	if _, err := handler.Handle(dup); !apperrors.IsConflict(err) {
		t.Errorf("duplicate email should conflict, got %v", err)
	}
}

func TestLoginUser(t *testing.T) {
	repo := newFakeUserRepo()
	registered, err := NewRegisterUserHandler(repo).Handle(validRegisterCommand())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	handler := NewLoginUserHandler(repo)
	resp, err := handler.Handle(LoginUserCommand{Email: "chef@example.com", Password: "kitchen-pass"})
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if resp.Token == "" {
		t.Error("login should issue a token")
	}

	claims, err := auth.ValidateToken(resp.Token)
	if err != nil {
		t.Fatalf("issued token does not validate: %v", err)
	}
	if claims.UserID != registered.ID {
		t.Errorf("token UserID = %d, want %d", claims.UserID, registered.ID)
	}
}

func TestLoginUserBadCredentials(t *testing.T) {
	repo := newFakeUserRepo()
	if _, err := NewRegisterUserHandler(repo).Handle(validRegisterCommand()); err != nil {
		t.Fatalf("register: %v", err)
	}
	handler := NewLoginUserHandler(repo)

	if _, err := handler.Handle(LoginUserCommand{Email: "chef@example.com", Password: "wrong"}); err == nil {
		t.Error("wrong password should not log in")
	}
	if _, err := handler.Handle(LoginUserCommand{Email: "nobody@example.com", Password: "kitchen-pass"}); err == nil {
		t.Error("unknown email should not log in")
	}
	if _, err := handler.Handle(LoginUserCommand{}); err == nil {
		t.Error("empty credentials should not log in")
	}
}

func TestSetPassword(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(validRegisterCommand())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	handler := NewSetPasswordHandler(repo)

	err = handler.Handle(SetPasswordCommand{
		UserID:          user.ID,
		CurrentPassword: "kitchen-pass",
		NewPassword:     "new-kitchen-pass",
	})
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}

	stored := repo.users[user.ID]
	if !auth.CheckPassword("new-kitchen-pass", stored.Password) {
		t.Error("new password should verify after change")
	}
	if auth.CheckPassword("kitchen-pass", stored.Password) {
		t.Error("old password should no longer verify")
	}
}

func TestSetPasswordRejections(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(validRegisterCommand())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	handler := NewSetPasswordHandler(repo)

	err = handler.Handle(SetPasswordCommand{UserID: user.ID, CurrentPassword: "kitchen-pass", NewPassword: "abc"})
	if !apperrors.IsValidation(err) {
		t.Errorf("short new password: expected validation error, got %v", err)
	}

	err = handler.Handle(SetPasswordCommand{UserID: user.ID, CurrentPassword: "wrong", NewPassword: "new-kitchen-pass"})
	if !apperrors.IsValidation(err) {
		t.Errorf("wrong current password: expected validation error, got %v", err)
	}
}

func avatarPayload() string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString([]byte("avatar bytes"))
}

func TestSetAvatarReplacesOldFile(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(validRegisterCommand())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	root := t.TempDir()
	images := imagestore.New(root)
	handler := NewSetAvatarHandler(repo, images)

	first, err := handler.Handle(SetAvatarCommand{UserID: user.ID, Avatar: avatarPayload()})
	if err != nil {
		t.Fatalf("first upload: %v", err)
	}
	if repo.users[user.ID].Avatar != first {
		t.Errorf("stored avatar path = %q, want %q", repo.users[user.ID].Avatar, first)
	}

	second, err := handler.Handle(SetAvatarCommand{UserID: user.ID, Avatar: avatarPayload()})
	if err != nil {
		t.Fatalf("second upload: %v", err)
	}
	if _, err := os.Stat(filepath.Join(root, first)); !os.IsNotExist(err) {
		t.Error("previous avatar file should be removed after replacement")
	}
	if _, err := os.Stat(filepath.Join(root, second)); err != nil {
		t.Errorf("new avatar file should exist: %v", err)
	}
}

func TestSetAvatarRejectsBadPayload(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(validRegisterCommand())
	if err != nil {
		t.Fatalf("register: %v", err)
	}
	handler := NewSetAvatarHandler(repo, imagestore.New(t.TempDir()))

	if _, err := handler.Handle(SetAvatarCommand{UserID: user.ID, Avatar: ""}); !apperrors.IsValidation(err) {
		t.Errorf("empty payload: expected validation error, got %v", err)
	}
	if _, err := handler.Handle(SetAvatarCommand{UserID: user.ID, Avatar: "data:image/tiff;base64,AAAA"}); !apperrors.IsValidation(err) {
		t.Errorf("unsupported type: expected validation error, got %v", err)
	}
}

func TestDeleteAvatar(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(validRegisterCommand())
	if err != nil {
		t.Fatalf("register: %v", err)
	}

	root := t.TempDir()
	images := imagestore.New(root)
	path, err := NewSetAvatarHandler(repo, images).Handle(SetAvatarCommand{UserID: user.ID, Avatar: avatarPayload()})
	if err != nil {
		t.Fatalf("upload: %v", err)
	}

	if err := NewDeleteAvatarHandler(repo, images).Handle(DeleteAvatarCommand{UserID: user.ID}); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if repo.users[user.ID].Avatar != "" {
		t.Error("avatar path should be cleared")
	}
	if _, err := os.Stat(filepath.Join(root, path)); !os.IsNotExist(err) {
		t.Error("avatar file should be removed from disk")
	}
}
