package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	noteserrors "futsal/internal/notes/errors"
	"futsal/pkg/config"
	"futsal/pkg/model"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const CollectionName = "notes"

type mongoNoteRepository struct {
	cfg        *config.Config
	collection *mongo.Collection
}

type NoteRepository interface {
	FindByOwner(ctx context.Context, ownerID string) (*model.Note, error)
	Create(ctx context.Context, note *model.Note) error
	UpdateContent(ctx context.Context, ownerID, content string) (*model.Note, error)
}

func NewMongoNoteRepository(cfg *config.Config) NoteRepository {
	db := cfg.Client.Mongo.Database(cfg.MongoDatabaseName)
	return &mongoNoteRepository{
		cfg:        cfg,
		collection: db.Collection(CollectionName),
	}
}

func (r *mongoNoteRepository) withTimeout(ctx context.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	deadline, hasDeadline := ctx.Deadline()
	if hasDeadline && time.Until(deadline) < timeout {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, timeout)
}

func (r *mongoNoteRepository) FindByOwner(ctx context.Context, ownerID string) (*model.Note, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.ReadTimeout)
	defer cancel()

	var note model.Note
	if err := r.collection.FindOne(ctx, bson.M{"owner_id": ownerID}).Decode(&note); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", noteserrors.ErrNotFound, ownerID)
		}
		return nil, fmt.Errorf("failed to find note: %w", err)
	}
	return &note, nil
}

func (r *mongoNoteRepository) Create(ctx context.Context, note *model.Note) error {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	if note.ID == "" {
		note.ID = uuid.New().String()
	}
	now := time.Now().UTC().Truncate(time.Millisecond)
	note.CreatedAt = now
	note.UpdatedAt = now

	if _, err := r.collection.InsertOne(ctx, note); err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return fmt.Errorf("%w: %v", noteserrors.ErrDuplicate, err)
		}
		return fmt.Errorf("failed to create note: %w", err)
	}
	return nil
}

func (r *mongoNoteRepository) UpdateContent(ctx context.Context, ownerID, content string) (*model.Note, error) {
	ctx, cancel := r.withTimeout(ctx, r.cfg.WriteTimeout)
	defer cancel()

	update := bson.M{"$set": bson.M{
		"content":    content,
		"updated_at": time.Now().UTC().Truncate(time.Millisecond),
	}}
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var note model.Note
	err := r.collection.FindOneAndUpdate(ctx, bson.M{"owner_id": ownerID}, update, opts).Decode(&note)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", noteserrors.ErrNotFound, ownerID)
		}
		return nil, fmt.Errorf("failed to update note: %w", err)
	}
	return &note, nil
}
