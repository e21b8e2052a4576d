package auth

import (
	"time"

	"ThesisTrack/internal/authz"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FileRecord points at the manuscript a student group last uploaded.
type FileRecord struct {
	FileURL    string    `bson:"file_url" json:"fileURL"`
	FileName   string    `bson:"file_name" json:"fileName"`
	UploadedAt time.Time `bson:"uploaded_at" json:"uploadedAt"`
}

// User is the profile document keyed by identity id. Role is immutable after
// creation; TeacherID/AdviserID are sequential numeric strings assigned at
// registration; GroupID is shared by the students a teacher groups together.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name         string             `bson:"name" json:"name"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"password_hash" json:"-"`
	Role         authz.Role         `bson:"role" json:"role"`
	GroupID      string             `bson:"group_id,omitempty" json:"groupID,omitempty"`
	TeacherID    string             `bson:"teacher_id,omitempty" json:"teacherID,omitempty"`
	AdviserID    string             `bson:"adviser_id,omitempty" json:"adviserID,omitempty"`
	PhotoURL     string             `bson:"photo_url,omitempty" json:"photoURL,omitempty"`
	Feedback     string             `bson:"feedback,omitempty" json:"feedback,omitempty"`
	Notes        string             `bson:"notes,omitempty" json:"notes,omitempty"`
	File         *FileRecord        `bson:"file,omitempty" json:"file,omitempty"`
	ResetToken   string             `bson:"reset_token,omitempty" json:"-"`
	CreatedAt    time.Time          `bson:"created_at" json:"createdAt"`
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type Credential struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

type ResetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"newPassword"`
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
}

type UpdateProfileRequest struct {
	Name     string `json:"name"`
	PhotoURL string `json:"photoURL"`
	Notes    string `json:"notes"`
}

type AssignGroupRequest struct {
	StudentIDs []string `json:"studentIDs"`
}

type FeedbackRequest struct {
	StudentID string `json:"studentID"`
	Feedback  string `json:"feedback"`
}

type DeleteUserRequest struct {
	UID string `json:"uid"`
}

// DeleteUserResult mirrors the remote procedure contract: failures come back
// as success=false, never as a transport error.
type DeleteUserResult struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}
