package repositories

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"cityscope-backend/internal/models"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// ErrCommentNotFound is returned when no comment matches the given ID.
var ErrCommentNotFound = fmt.Errorf("comment not found")

// CommentRepository defines the interface for comment aggregate operations
type CommentRepository interface {
	CreateComment(ctx context.Context, comment *models.Comment) error
	GetCommentByID(ctx context.Context, id string) (*models.Comment, error)
	GetCommentsByCity(ctx context.Context, cityName string) ([]models.Comment, error)
	ReplaceComment(ctx context.Context, comment *models.Comment) error
	DeleteComment(ctx context.Context, id string) error
	CountCommentsByCity(ctx context.Context, cityName string) (int64, error)
	GetFirstImageByCity(ctx context.Context, cityName string) (string, error)
}

// MongoCommentRepository implements CommentRepository for MongoDB
type MongoCommentRepository struct {
	collection *mongo.Collection
}

// NewMongoCommentRepository creates a new MongoCommentRepository
func NewMongoCommentRepository(db *mongo.Database) *MongoCommentRepository {
	return &MongoCommentRepository{collection: db.Collection("city_comments")}
}

// CreateComment inserts a new comment document. The ID is server-assigned and
// createdAt == updatedAt until the first edit.
func (r *MongoCommentRepository) CreateComment(ctx context.Context, comment *models.Comment) error {
	now := time.Now().UTC()
	comment.ID = uuid.New().String()
	comment.CreatedAt = now
	comment.UpdatedAt = now
	if comment.LikedByUsernames == nil {
		comment.LikedByUsernames = []string{}
	}
	if comment.Replies == nil {
		comment.Replies = []models.Reply{}
	}
	_, err := r.collection.InsertOne(ctx, comment)
	return err
}

// GetCommentByID retrieves a single comment document
func (r *MongoCommentRepository) GetCommentByID(ctx context.Context, id string) (*models.Comment, error) {
	var comment models.Comment
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return &comment, nil
}

// GetCommentsByCity retrieves a city's full thread in creation order. An empty
// thread returns an empty slice, not an error; anchors stay stable because the
// order never depends on likes or recency.
func (r *MongoCommentRepository) GetCommentsByCity(ctx context.Context, cityName string) ([]models.Comment, error) {
	filter := bson.M{"city_name": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(cityName) + "$",
		Options: "i",
	}}
	findOptions := options.Find().SetSort(bson.D{{Key: "created_at", Value: 1}})
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	comments := []models.Comment{}
	if err = cursor.All(ctx, &comments); err != nil {
		return nil, err
	}
	return comments, nil
}

// ReplaceComment writes back the whole aggregate after a mutation
func (r *MongoCommentRepository) ReplaceComment(ctx context.Context, comment *models.Comment) error {
	res, err := r.collection.ReplaceOne(ctx, bson.M{"_id": comment.ID}, comment)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// DeleteComment removes a comment and, with it, every embedded reply
func (r *MongoCommentRepository) DeleteComment(ctx context.Context, id string) error {
	res, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrCommentNotFound
	}
	return nil
}

// CountCommentsByCity returns the thread length for a city
func (r *MongoCommentRepository) CountCommentsByCity(ctx context.Context, cityName string) (int64, error) {
	filter := bson.M{"city_name": primitive.Regex{
		Pattern: "^" + regexp.QuoteMeta(cityName) + "$",
		Options: "i",
	}}
	return r.collection.CountDocuments(ctx, filter)
}

// GetFirstImageByCity returns the oldest attached image URL in a city's
// thread, or "" when no comment carries one.
func (r *MongoCommentRepository) GetFirstImageByCity(ctx context.Context, cityName string) (string, error) {
	filter := bson.M{
		"city_name": primitive.Regex{
			Pattern: "^" + regexp.QuoteMeta(cityName) + "$",
			Options: "i",
		},
		"image_url": bson.M{"$exists": true, "$ne": ""},
	}
	findOptions := options.FindOne().SetSort(bson.D{{Key: "created_at", Value: 1}})

	var comment models.Comment
	err := r.collection.FindOne(ctx, filter, findOptions).Decode(&comment)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return "", nil
		}
		return "", err
	}
	return comment.ImageURL, nil
}
