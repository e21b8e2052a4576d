package auth

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"ThesisTrack/internal/authz"
	"ThesisTrack/internal/config"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Identity provider error taxonomy, surfaced verbatim to the client.
var (
	ErrInvalidEmail      = errors.New("invalid-email")
	ErrUserNotFound      = errors.New("user-not-found")
	ErrWrongPassword     = errors.New("wrong-password")
	ErrInvalidCredential = errors.New("invalid-credential")
)

// UserStore is the subset of the repository the service needs; kept as an
// interface so tests can substitute an in-memory double.
type UserStore interface {
	FindByID(ctx context.Context, uid string) (*User, error)
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByRole(ctx context.Context, role authz.Role) ([]*User, error)
	FindByGroup(ctx context.Context, groupID string) ([]*User, error)
	ListAll(ctx context.Context) ([]*User, error)
	CreateUser(ctx context.Context, user *User) error
	UpdateUser(ctx context.Context, user *User) error
	DeleteUser(ctx context.Context, uid string) error
	MaxSequentialID(ctx context.Context, field string) (int, error)
}

type AuthService struct {
	EmailService *config.EmailService
}

func NewAuthService(emailService *config.EmailService) *AuthService {
	return &AuthService{EmailService: emailService}
}

func (a *AuthService) SendResetPasswordEmail(email, token string) error {
	subject := "Password Reset"
	body := fmt.Sprintf("Click the link to reset your password: https://yourdomain.com/resetPassword?token=%s", token)

	return a.EmailService.SendEmail(email, subject, body)
}

type UserService struct {
	repo        UserStore
	authService *AuthService
	sessions    *SessionBroker
}

func NewUserService(repo *UserRepository, authService *AuthService, sessions *SessionBroker) *UserService {
	return &UserService{repo: repo, authService: authService, sessions: sessions}
}

// NewUserServiceWithStore wires an arbitrary store; used by tests.
func NewUserServiceWithStore(repo UserStore, authService *AuthService, sessions *SessionBroker) *UserService {
	return &UserService{repo: repo, authService: authService, sessions: sessions}
}

func validEmail(email string) bool {
	at := strings.Index(email, "@")
	return at > 0 && at < len(email)-1
}

// RegisterUser creates the profile document and signs the new identity in.
// Teachers and advisers get sequential numeric ids scanned from the current
// maximum; role is fixed at creation.
func (s *UserService) RegisterUser(ctx context.Context, req RegisterRequest) (string, error) {
	if !validEmail(req.Email) {
		return "", ErrInvalidEmail
	}
	role := authz.Role(req.Role)
	if !authz.Valid(role) {
		return "", errors.New("unknown role: " + req.Role)
	}

	existing, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", err
	}
	if existing != nil {
		return "", errors.New("Email already registered")
	}

	hashPassword, err := HashPassword(req.Password)
	if err != nil {
		return "", err
	}

	user := &User{
		ID:           primitive.NewObjectID(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hashPassword,
		Role:         role,
		CreatedAt:    time.Now(),
	}

	switch role {
	case authz.RoleTeacher:
		max, err := s.repo.MaxSequentialID(ctx, "teacher_id")
		if err != nil {
			return "", err
		}
		user.TeacherID = strconv.Itoa(max + 1)
	case authz.RoleAdviser:
		max, err := s.repo.MaxSequentialID(ctx, "adviser_id")
		if err != nil {
			return "", err
		}
		user.AdviserID = strconv.Itoa(max + 1)
	}

	if err := s.repo.CreateUser(ctx, user); err != nil {
		return "", err
	}

	token, err := GenerateJWT(user.ID.Hex(), user.Name, user.Email, user.Role, SessionDuration)
	if err != nil {
		return "", errors.New("Token not generated")
	}
	s.sessions.Emit(user.ID.Hex())
	return token, nil
}

// AuthenticateUser checks credentials and opens a session. Failures map onto
// the identity provider error taxonomy.
func (s *UserService) AuthenticateUser(ctx context.Context, cred Credential) (string, error) {
	if !validEmail(cred.Email) {
		return "", ErrInvalidEmail
	}
	user, err := s.repo.FindByEmail(ctx, cred.Email)
	if err != nil {
		return "", ErrInvalidCredential
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	if !CheckPasswordHash(cred.Password, user.PasswordHash) {
		return "", ErrWrongPassword
	}

	token, err := GenerateJWT(user.ID.Hex(), user.Name, user.Email, user.Role, SessionDuration)
	if err != nil {
		return "", errors.New("Token not generated")
	}
	s.sessions.Emit(user.ID.Hex())
	return token, nil
}

// SignOut pushes the no-identity transition to the gate.
func (s *UserService) SignOut() {
	s.sessions.Emit("")
}

// Reauthenticate re-checks the current password for sensitive actions.
func (s *UserService) Reauthenticate(ctx context.Context, uid, currentPassword string) error {
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || user == nil {
		return ErrUserNotFound
	}
	if !CheckPasswordHash(currentPassword, user.PasswordHash) {
		return ErrWrongPassword
	}
	return nil
}

// UpdatePassword requires re-authentication with the current password.
func (s *UserService) UpdatePassword(ctx context.Context, uid string, req ChangePasswordRequest) error {
	if err := s.Reauthenticate(ctx, uid, req.CurrentPassword); err != nil {
		return err
	}
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil || user == nil {
		return ErrUserNotFound
	}
	hashPassword, err := HashPassword(req.NewPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashPassword
	return s.repo.UpdateUser(ctx, user)
}

func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil || user == nil {
		return ErrUserNotFound
	}
	resetToken, _ := GenerateJWT(user.ID.Hex(), user.Name, user.Email, user.Role, time.Minute*15)
	user.ResetToken = resetToken
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return err
	}

	if err := s.authService.SendResetPasswordEmail(email, resetToken); err != nil {
		log.Println("Email sending error:", err)
		return errors.New("Failed to send reset password email")
	}
	return nil
}

func (s *UserService) ResetPassword(ctx context.Context, token, newPassword string) error {
	claims, err := ValidateJWT(token)
	if err != nil {
		return errors.New("Invalid Token")
	}

	user, err := s.repo.FindByEmail(ctx, claims.Email)
	if err != nil || user == nil {
		return ErrUserNotFound
	}
	if user.ResetToken != token {
		return errors.New("Invalid Token")
	}
	hashPassword, err := HashPassword(newPassword)
	if err != nil {
		return err
	}
	user.PasswordHash = hashPassword
	user.ResetToken = ""
	return s.repo.UpdateUser(ctx, user)
}

func (s *UserService) GetProfile(ctx context.Context, uid string) (*User, error) {
	return s.repo.FindByID(ctx, uid)
}

// UpdateProfile edits the mutable profile fields only; role stays fixed.
func (s *UserService) UpdateProfile(ctx context.Context, uid string, req UpdateProfileRequest) (*User, error) {
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	if req.Name != "" {
		user.Name = req.Name
	}
	if req.PhotoURL != "" {
		user.PhotoURL = req.PhotoURL
	}
	user.Notes = req.Notes
	if err := s.repo.UpdateUser(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// AssignGroup places the chosen students into a fresh group. The group id is
// sequential, scanned from the current maximum like teacher/adviser ids. All
// members are validated before the first write, so a bad selection never
// leaves a half-assigned group; a store failure mid-write still can, and the
// teacher re-runs the grouping in that case.
func (s *UserService) AssignGroup(ctx context.Context, studentIDs []string) (string, error) {
	if len(studentIDs) == 0 {
		return "", errors.New("no students selected")
	}
	max, err := s.repo.MaxSequentialID(ctx, "group_id")
	if err != nil {
		return "", err
	}
	groupID := strconv.Itoa(max + 1)

	members := make([]*User, 0, len(studentIDs))
	for _, uid := range studentIDs {
		user, err := s.repo.FindByID(ctx, uid)
		if err != nil {
			return "", err
		}
		if user == nil || user.Role != authz.RoleStudent {
			return "", errors.New("only students can be grouped")
		}
		members = append(members, user)
	}

	for _, user := range members {
		user.GroupID = groupID
		if err := s.repo.UpdateUser(ctx, user); err != nil {
			return "", err
		}
	}
	return groupID, nil
}

// SetFeedback records adviser feedback on a student profile.
func (s *UserService) SetFeedback(ctx context.Context, req FeedbackRequest) error {
	user, err := s.repo.FindByID(ctx, req.StudentID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	user.Feedback = req.Feedback
	return s.repo.UpdateUser(ctx, user)
}

func (s *UserService) ListUsers(ctx context.Context) ([]*User, error) {
	return s.repo.ListAll(ctx)
}

func (s *UserService) ListByRole(ctx context.Context, role authz.Role) ([]*User, error) {
	return s.repo.FindByRole(ctx, role)
}

func (s *UserService) GroupMembers(ctx context.Context, groupID string) ([]*User, error) {
	return s.repo.FindByGroup(ctx, groupID)
}

// AttachFile stores the manuscript record on the uploader's profile.
func (s *UserService) AttachFile(ctx context.Context, uid string, record FileRecord) error {
	user, err := s.repo.FindByID(ctx, uid)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}
	user.File = &record
	return s.repo.UpdateUser(ctx, user)
}

// DeleteUser is the admin-only deletion procedure. It reports failure in the
// result payload instead of erroring, matching the remote procedure contract.
func (s *UserService) DeleteUser(ctx context.Context, uid string) DeleteUserResult {
	if uid == "" {
		return DeleteUserResult{Success: false, Message: "uid is required"}
	}
	if err := s.repo.DeleteUser(ctx, uid); err != nil {
		log.Println("deleteUser failed for", uid, ":", err)
		return DeleteUserResult{Success: false, Message: err.Error()}
	}
	return DeleteUserResult{Success: true, Message: "user deleted"}
}
