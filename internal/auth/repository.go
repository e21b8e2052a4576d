package auth

import (
	"context"
	"errors"
	"strconv"

	"ThesisTrack/internal/authz"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

type UserRepository struct {
	collection *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{collection: db.Collection("users")}
}

func (r *UserRepository) FindByID(ctx context.Context, uid string) (*User, error) {
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return nil, nil
	}
	var user User
	err = r.collection.FindOne(ctx, bson.M{"_id": oid}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	err := r.collection.FindOne(ctx, bson.M{"email": email}).Decode(&user)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// FindRole backs the authorization gate's profile lookup.
func (r *UserRepository) FindRole(ctx context.Context, uid string) (authz.Role, bool, error) {
	user, err := r.FindByID(ctx, uid)
	if err != nil {
		return authz.RoleNone, false, err
	}
	if user == nil {
		return authz.RoleNone, false, nil
	}
	return user.Role, true, nil
}

func (r *UserRepository) FindByRole(ctx context.Context, role authz.Role) ([]*User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"role": role})
	if err != nil {
		return nil, err
	}
	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) FindByGroup(ctx context.Context, groupID string) ([]*User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{"group_id": groupID})
	if err != nil {
		return nil, err
	}
	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// FindByRolesAndGroups selects notification recipients. Empty slices mean
// "no filter" for that dimension.
func (r *UserRepository) FindByRolesAndGroups(ctx context.Context, roles []string, groupIDs []string) ([]*User, error) {
	filter := bson.M{}
	if len(roles) > 0 {
		filter["role"] = bson.M{"$in": roles}
	}
	if len(groupIDs) > 0 {
		filter["group_id"] = bson.M{"$in": groupIDs}
	}
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) ListAll(ctx context.Context) ([]*User, error) {
	cursor, err := r.collection.Find(ctx, bson.M{})
	if err != nil {
		return nil, err
	}
	var users []*User
	if err := cursor.All(ctx, &users); err != nil {
		return nil, err
	}
	return users, nil
}

func (r *UserRepository) CreateUser(ctx context.Context, user *User) error {
	_, err := r.collection.InsertOne(ctx, user)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return errors.New("Email already registered")
		}
		return err
	}
	return nil
}

func (r *UserRepository) UpdateUser(ctx context.Context, user *User) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": user.ID}, user)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

func (r *UserRepository) DeleteUser(ctx context.Context, uid string) error {
	oid, err := primitive.ObjectIDFromHex(uid)
	if err != nil {
		return errors.New("invalid user id")
	}
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return errors.New("user not found")
	}
	return nil
}

// MaxSequentialID scans the numeric ids already assigned in the given field
// ("teacher_id", "adviser_id" or "group_id") and returns the highest. New ids
// are handed out as max+1 at creation time.
func (r *UserRepository) MaxSequentialID(ctx context.Context, field string) (int, error) {
	cursor, err := r.collection.Find(ctx, bson.M{field: bson.M{"$exists": true, "$ne": ""}})
	if err != nil {
		return 0, err
	}
	var users []bson.M
	if err := cursor.All(ctx, &users); err != nil {
		return 0, err
	}
	max := 0
	for _, doc := range users {
		raw, _ := doc[field].(string)
		n, err := strconv.Atoi(raw)
		if err != nil {
			continue
		}
		if n > max {
			max = n
		}
	}
	return max, nil
}
