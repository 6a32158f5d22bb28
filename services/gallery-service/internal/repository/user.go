package repository

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/vasapolrittideah/art-gallery-api/services/gallery-service/internal/model"
)

// UserRepository defines the interface for user-related database operations.
type UserRepository interface {
	CreateUser(ctx context.Context, user *model.User) (*model.User, error)
	GetUser(ctx context.Context, id string) (*model.User, error)
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateUser(ctx context.Context, id string, params UpdateUserParams) (*model.User, error)
	DeleteUser(ctx context.Context, id string) (*model.User, error)
	ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error)
	CountUsers(ctx context.Context, params FilterUsersParams) (int64, error)

	// ToggleActive flips is_active of an artist account in a single update.
	ToggleActive(ctx context.Context, id string) (*model.User, error)

	// VerifyEmail marks the account holding an unexpired token as verified and unsets the token.
	VerifyEmail(ctx context.Context, token string, now time.Time) (*model.User, error)

	// SetResetCode stores a password reset code, replacing any previous one.
	SetResetCode(ctx context.Context, id, code string, expiresAt time.Time) error

	// ClearResetCode unsets the password reset code and its expiry.
	ClearResetCode(ctx context.Context, id string) error

	// ConsumeResetCode replaces the password hash of the account matching email and an
	// unexpired code, and unsets the code in the same update.
	ConsumeResetCode(ctx context.Context, email, code, passwordHash string, now time.Time) (*model.User, error)

	// ClearExpiredSecrets unsets verification tokens and reset codes that expired before now.
	ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error)
}

// UpdateUserParams defines the optional parameters for updating a user.
// Only the fields that are not nil will be updated.
type UpdateUserParams struct {
	Username     *string
	PasswordHash *string
	Bio          *string
	ProfileImage *string
	ContactInfo  *model.ContactInfo
	IsActive     *bool
}

// FilterUsersParams defines the parameters for filtering and paginating users.
type FilterUsersParams struct {
	Role     *model.Role
	IsActive *bool
	Limit    uint64
	Offset   uint64
	SortBy   *string
	SortDesc bool
}

const userCollection = "users"

type userMongoRepository struct {
	db *mongo.Database
}

func NewUserMongoRepository(ctx context.Context, logger *zerolog.Logger, db *mongo.Database) UserRepository {
	collection := db.Collection(userCollection)

	indexes := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true),
		},
		{
			Keys:    bson.D{{Key: "email_verification_token", Value: 1}},
			Options: options.Index().SetSparse(true),
		},
		{
			Keys: bson.D{{Key: "role", Value: 1}},
		},
	}

	_, err := collection.Indexes().CreateMany(ctx, indexes)
	if err != nil {
		logger.Fatal().Err(err).Msg("failed to create user indexes")
	}

	return &userMongoRepository{db: db}
}

func (r *userMongoRepository) CreateUser(ctx context.Context, user *model.User) (*model.User, error) {
	now := time.Now()
	user.CreatedAt = now
	user.UpdatedAt = now

	result, err := r.db.Collection(userCollection).InsertOne(ctx, user)
	if err != nil {
		return nil, err
	}

	if objectID, ok := result.InsertedID.(bson.ObjectID); ok {
		user.ID = objectID
	} else {
		return nil, errors.New("failed to convert inserted ID to ObjectID")
	}

	return user, nil
}

func (r *userMongoRepository) GetUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	return r.findOne(ctx, bson.M{"_id": objectID})
}

func (r *userMongoRepository) GetUserByEmail(ctx context.Context, email string) (*model.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *userMongoRepository) UpdateUser(
	ctx context.Context,
	id string,
	params UpdateUserParams,
) (*model.User, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	// Build update query
	updateMap := bson.M{}
	if params.Username != nil {
		updateMap["username"] = *params.Username
	}
	if params.PasswordHash != nil {
		updateMap["password_hash"] = *params.PasswordHash
	}
	if params.Bio != nil {
		updateMap["bio"] = *params.Bio
	}
	if params.ProfileImage != nil {
		updateMap["profile_image"] = *params.ProfileImage
	}
	if params.ContactInfo != nil {
		updateMap["contact_info"] = params.ContactInfo
	}
	if params.IsActive != nil {
		updateMap["is_active"] = *params.IsActive
	}

	if len(updateMap) == 0 {
		return nil, ErrNoFieldsToUpdate
	}

	updateMap["updated_at"] = time.Now()

	return r.findOneAndUpdate(ctx, bson.M{"_id": objectID}, bson.M{"$set": updateMap})
}

func (r *userMongoRepository) DeleteUser(ctx context.Context, id string) (*model.User, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	result := r.db.Collection(userCollection).FindOneAndDelete(ctx, bson.M{"_id": objectID})
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) ListUsers(ctx context.Context, params FilterUsersParams) ([]*model.User, error) {
	sortBy := "created_at"
	if params.SortBy != nil {
		sortBy = *params.SortBy
	}

	cursor, err := r.db.Collection(userCollection).Find(
		ctx,
		userFilter(params),
		findOptions(params.Limit, params.Offset, sortBy, params.SortDesc),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]*model.User, 0)
	for cursor.Next(ctx) {
		var user model.User
		if err := cursor.Decode(&user); err != nil {
			return nil, err
		}
		users = append(users, &user)
	}

	if err := cursor.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *userMongoRepository) CountUsers(ctx context.Context, params FilterUsersParams) (int64, error) {
	return r.db.Collection(userCollection).CountDocuments(ctx, userFilter(params))
}

func (r *userMongoRepository) ToggleActive(ctx context.Context, id string) (*model.User, error) {
	objectID, err := parseObjectID(id)
	if err != nil {
		return nil, err
	}

	filter, update := toggleActiveQuery(objectID, time.Now())
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *userMongoRepository) VerifyEmail(ctx context.Context, token string, now time.Time) (*model.User, error) {
	filter, update := verifyEmailQuery(token, now)
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *userMongoRepository) SetResetCode(ctx context.Context, id, code string, expiresAt time.Time) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$set": bson.M{
			"reset_password_code":            code,
			"reset_password_code_expires_at": expiresAt,
			"updated_at":                     time.Now(),
		},
	}

	return r.updateOne(ctx, bson.M{"_id": objectID}, update)
}

func (r *userMongoRepository) ClearResetCode(ctx context.Context, id string) error {
	objectID, err := parseObjectID(id)
	if err != nil {
		return err
	}

	update := bson.M{
		"$unset": unsetResetCode(),
		"$set":   bson.M{"updated_at": time.Now()},
	}

	return r.updateOne(ctx, bson.M{"_id": objectID}, update)
}

func (r *userMongoRepository) ConsumeResetCode(
	ctx context.Context,
	email, code, passwordHash string,
	now time.Time,
) (*model.User, error) {
	filter, update := consumeResetCodeQuery(email, code, passwordHash, now)
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *userMongoRepository) ClearExpiredSecrets(ctx context.Context, now time.Time) (int64, error) {
	collection := r.db.Collection(userCollection)

	filter, update := expiredVerificationQuery(now)
	verification, err := collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return 0, err
	}

	filter, update = expiredResetCodeQuery(now)
	reset, err := collection.UpdateMany(ctx, filter, update)
	if err != nil {
		return verification.ModifiedCount, err
	}

	return verification.ModifiedCount + reset.ModifiedCount, nil
}

func (r *userMongoRepository) findOne(ctx context.Context, filter any) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOne(ctx, filter)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) findOneAndUpdate(ctx context.Context, filter, update any) (*model.User, error) {
	result := r.db.Collection(userCollection).FindOneAndUpdate(
		ctx,
		filter,
		update,
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	)
	if result.Err() != nil {
		return nil, result.Err()
	}

	var user model.User
	if err := result.Decode(&user); err != nil {
		return nil, err
	}

	return &user, nil
}

func (r *userMongoRepository) updateOne(ctx context.Context, filter, update any) error {
	result, err := r.db.Collection(userCollection).UpdateOne(ctx, filter, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return mongo.ErrNoDocuments
	}

	return nil
}

func userFilter(params FilterUsersParams) bson.M {
	filter := bson.M{}
	if params.Role != nil {
		filter["role"] = *params.Role
	}
	if params.IsActive != nil {
		filter["is_active"] = *params.IsActive
	}
	return filter
}

func unsetVerification() bson.M {
	return bson.M{
		"email_verification_token":      "",
		"email_verification_expires_at": "",
	}
}

func unsetResetCode() bson.M {
	return bson.M{
		"reset_password_code":            "",
		"reset_password_code_expires_at": "",
	}
}

// verifyEmailQuery matches an unexpired verification token and consumes it in the same update.
func verifyEmailQuery(token string, now time.Time) (filter, update bson.M) {
	filter = bson.M{
		"email_verification_token":      token,
		"email_verification_expires_at": bson.M{"$gt": now},
	}
	update = bson.M{
		"$set": bson.M{
			"is_email_verified": true,
			"updated_at":        now,
		},
		"$unset": unsetVerification(),
	}
	return filter, update
}

// consumeResetCodeQuery matches email plus an unexpired code, replaces the hash and unsets the code.
func consumeResetCodeQuery(email, code, passwordHash string, now time.Time) (filter, update bson.M) {
	filter = bson.M{
		"email":                          email,
		"reset_password_code":            code,
		"reset_password_code_expires_at": bson.M{"$gt": now},
	}
	update = bson.M{
		"$set": bson.M{
			"password_hash": passwordHash,
			"updated_at":    now,
		},
		"$unset": unsetResetCode(),
	}
	return filter, update
}

// toggleActiveQuery flips is_active server side so concurrent toggles cannot lose an update.
func toggleActiveQuery(id bson.ObjectID, now time.Time) (bson.M, mongo.Pipeline) {
	filter := bson.M{"_id": id, "role": model.RoleArtist}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "is_active", Value: bson.D{{Key: "$not", Value: bson.A{"$is_active"}}}},
			{Key: "updated_at", Value: now},
		}}},
	}
	return filter, update
}

func expiredVerificationQuery(now time.Time) (filter, update bson.M) {
	return bson.M{"email_verification_expires_at": bson.M{"$lte": now}},
		bson.M{"$unset": unsetVerification()}
}

func expiredResetCodeQuery(now time.Time) (filter, update bson.M) {
	return bson.M{"reset_password_code_expires_at": bson.M{"$lte": now}},
		bson.M{"$unset": unsetResetCode()}
}
