// MongoDB-backed implementation of the store interfaces.
// File: store/mongo.go
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"sports-scheduler/logger"
	"sports-scheduler/models"
)

// Open connects to MongoDB and verifies the connection with a ping.
// The returned client must be disconnected by the caller at shutdown.
func Open(ctx context.Context, uri string) (*mongo.Client, error) {
	opts := options.Client().ApplyURI(uri)
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, err
	}
	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(ctx)
		return nil, err
	}
	return client, nil
}

// NewMongoStores wires the three collection stores over one database.
func NewMongoStores(db *mongo.Database) *Stores {
	s := &Stores{
		Users:    &mongoUserStore{col: db.Collection("users")},
		Sports:   &mongoSportStore{col: db.Collection("sports")},
		Sessions: &mongoSessionStore{col: db.Collection("sessions")},
	}
	if err := ensureIndexes(context.Background(), db); err != nil {
		logger.Warn.Printf("EnsureIndexes: %v", err)
	}
	return s
}

func ensureIndexes(ctx context.Context, db *mongo.Database) error {
	_, err := db.Collection("users").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "email", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("users_email_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("users indexes: %w", err)
	}

	_, err = db.Collection("sports").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "name", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("sports_name_unique"),
		},
	})
	if err != nil {
		return fmt.Errorf("sports indexes: %w", err)
	}

	_, err = db.Collection("sessions").Indexes().CreateMany(ctx, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "creator_id", Value: 1}},
			Options: options.Index().SetName("sessions_creator"),
		},
		{
			Keys:    bson.D{{Key: "date", Value: 1}},
			Options: options.Index().SetName("sessions_date"),
		},
	})
	if err != nil {
		return fmt.Errorf("sessions indexes: %w", err)
	}
	return nil
}

// ----------------------- users -----------------------

type mongoUserStore struct {
	col *mongo.Collection
}

func (s *mongoUserStore) Insert(ctx context.Context, u *models.User) error {
	u.CreatedAt = time.Now().UTC()
	res, err := s.col.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}
	u.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoUserStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by id: %w", err)
	}
	return &u, nil
}

func (s *mongoUserStore) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := s.col.FindOne(ctx, bson.M{"email": email}).Decode(&u); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user by email: %w", err)
	}
	return &u, nil
}

func (s *mongoUserStore) GetByIDs(ctx context.Context, ids []primitive.ObjectID) ([]models.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	cur, err := s.col.Find(ctx, bson.M{"_id": bson.M{"$in": ids}})
	if err != nil {
		return nil, fmt.Errorf("find users by ids: %w", err)
	}
	defer cur.Close(ctx)

	var result []models.User
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode users: %w", err)
	}
	return result, nil
}

// ----------------------- sports -----------------------

type mongoSportStore struct {
	col *mongo.Collection
}

func (s *mongoSportStore) Insert(ctx context.Context, sp *models.Sport) error {
	sp.CreatedAt = time.Now().UTC()
	res, err := s.col.InsertOne(ctx, sp)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert sport: %w", err)
	}
	sp.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoSportStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Sport, error) {
	var sp models.Sport
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find sport by id: %w", err)
	}
	return &sp, nil
}

func (s *mongoSportStore) GetByName(ctx context.Context, name string) (*models.Sport, error) {
	var sp models.Sport
	if err := s.col.FindOne(ctx, bson.M{"name": name}).Decode(&sp); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find sport by name: %w", err)
	}
	return &sp, nil
}

func (s *mongoSportStore) List(ctx context.Context, createdBy *primitive.ObjectID) ([]models.Sport, error) {
	filter := bson.M{}
	if createdBy != nil {
		filter["created_by"] = *createdBy
	}
	findOpts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	cur, err := s.col.Find(ctx, filter, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list sports: %w", err)
	}
	defer cur.Close(ctx)

	var result []models.Sport
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode sports: %w", err)
	}
	return result, nil
}

// ----------------------- sessions -----------------------

type mongoSessionStore struct {
	col *mongo.Collection
}

func (s *mongoSessionStore) Insert(ctx context.Context, sess *models.Session) error {
	sess.CreatedAt = time.Now().UTC()
	res, err := s.col.InsertOne(ctx, sess)
	if err != nil {
		return fmt.Errorf("insert session: %w", err)
	}
	sess.ID = res.InsertedID.(primitive.ObjectID)
	return nil
}

func (s *mongoSessionStore) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Session, error) {
	var sess models.Session
	if err := s.col.FindOne(ctx, bson.M{"_id": id}).Decode(&sess); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get session: %w", err)
	}
	return &sess, nil
}

func (s *mongoSessionStore) List(ctx context.Context) ([]models.Session, error) {
	findOpts := options.Find().SetSort(bson.D{{Key: "date", Value: 1}, {Key: "time", Value: 1}})
	cur, err := s.col.Find(ctx, bson.D{}, findOpts)
	if err != nil {
		return nil, fmt.Errorf("list sessions: %w", err)
	}
	defer cur.Close(ctx)

	var result []models.Session
	if err := cur.All(ctx, &result); err != nil {
		return nil, fmt.Errorf("decode sessions: %w", err)
	}
	return result, nil
}

// hasCapacity is the shared capacity guard used inside update filters.
// Expressed with $expr so the size check and the write land in one
// atomic document update.
var hasCapacity = bson.M{"$lt": bson.A{bson.M{"$size": "$players"}, "$slots"}}

func (s *mongoSessionStore) AddPendingPlayer(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":             sessionID,
		"cancelled":       false,
		"creator_id":      bson.M{"$ne": userID},
		"players":         bson.M{"$ne": userID},
		"pending_players": bson.M{"$ne": userID},
		"$expr":           hasCapacity,
	}
	update := bson.M{"$addToSet": bson.M{"pending_players": userID}}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("add pending player: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *mongoSessionStore) ApprovePlayer(ctx context.Context, sessionID, userID primitive.ObjectID) (bool, error) {
	filter := bson.M{
		"_id":       sessionID,
		"cancelled": false,
		"players":   bson.M{"$ne": userID},
		"$expr":     hasCapacity,
	}
	update := bson.M{
		"$pull":     bson.M{"pending_players": userID},
		"$addToSet": bson.M{"players": userID},
	}

	res, err := s.col.UpdateOne(ctx, filter, update)
	if err != nil {
		return false, fmt.Errorf("approve player: %w", err)
	}
	return res.MatchedCount > 0, nil
}

func (s *mongoSessionStore) PullPendingPlayer(ctx context.Context, sessionID, userID primitive.ObjectID) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$pull": bson.M{"pending_players": userID}},
	)
	if err != nil {
		return fmt.Errorf("pull pending player: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *mongoSessionStore) RemoveParticipant(ctx context.Context, sessionID, userID primitive.ObjectID) (*models.Session, error) {
	update := bson.M{"$pull": bson.M{
		"players":         userID,
		"pending_players": userID,
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.Before)

	var before models.Session
	err := s.col.FindOneAndUpdate(ctx, bson.M{"_id": sessionID}, update, opts).Decode(&before)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("remove participant: %w", err)
	}
	return &before, nil
}

func (s *mongoSessionStore) Cancel(ctx context.Context, sessionID primitive.ObjectID, reason string) error {
	res, err := s.col.UpdateOne(ctx,
		bson.M{"_id": sessionID},
		bson.M{"$set": bson.M{"cancelled": true, "cancel_reason": reason}},
	)
	if err != nil {
		return fmt.Errorf("cancel session: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}
